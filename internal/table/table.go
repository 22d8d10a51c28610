// Package table holds the feature table built from an alignment: one row per
// record and an ordered, fixed set of columns (a label column, numeric columns
// and an optional class column).
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	// ErrNoRecords is returned when a table is built from zero records.
	ErrNoRecords = errors.New("table: no records")

	// ErrLabelToken is returned when a label has too few tokens to hold the class.
	ErrLabelToken = errors.New("table: class token index out of range for label")

	// ErrInconsistentLength marks a record that encoded to more values than the
	// table has numeric columns. It is only ever recorded as a diagnostic.
	ErrInconsistentLength = errors.New("table: encoded length exceeds column count")

	// ErrSchema is returned for an invalid column layout or out of range access.
	ErrSchema = errors.New("table: invalid schema")
)

// Kind is the role of a column.
type Kind int

const (
	// Label columns hold each record's label verbatim.
	Label Kind = iota

	// Numeric columns hold encoded values.
	Numeric

	// Class columns hold a nominal class value.
	Class
)

func (k Kind) String() string {
	switch k {
	case Label:
		return "label"
	case Numeric:
		return "numeric"
	case Class:
		return "class"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Attribute is one column of a Table.
type Attribute struct {
	Name string
	Kind Kind
}

// Row is a single record's values. Values lines up with Table.NumericColumns.
type Row struct {
	Label  string
	Values []float64
	Class  string
}

// Table is an ordered set of rows over a fixed column layout.
type Table struct {
	attrs []Attribute
	rows  []Row

	// feature-table column index of each numeric attribute, in column order
	numeric []int

	// feature-table column index -> position in Row.Values
	position map[int]int

	labelIndex int
	classIndex int
	classes    []string
	classOf    map[string]int

	// Diagnostics collects locally recovered problems, e.g. dropped values.
	Diagnostics []error
}

// New creates an empty table over attrs. At most one Label and one Class
// column are allowed.
func New(attrs []Attribute) (*Table, error) {
	t := &Table{
		attrs:      append([]Attribute(nil), attrs...),
		position:   make(map[int]int),
		labelIndex: -1,
		classIndex: -1,
		classOf:    make(map[string]int),
	}

	for i, a := range attrs {
		switch a.Kind {
		case Label:
			if t.labelIndex >= 0 {
				return nil, fmt.Errorf("second label column %q: %w", a.Name, ErrSchema)
			}
			t.labelIndex = i
		case Class:
			if t.classIndex >= 0 {
				return nil, fmt.Errorf("second class column %q: %w", a.Name, ErrSchema)
			}
			t.classIndex = i
		case Numeric:
			t.position[i] = len(t.numeric)
			t.numeric = append(t.numeric, i)
		default:
			return nil, fmt.Errorf("column %q has kind %v: %w", a.Name, a.Kind, ErrSchema)
		}
	}
	return t, nil
}

// Append adds a row. Values beyond the numeric column count are dropped and
// reported in the returned count; missing trailing values stay zero. The class
// value joins the class domain on first occurrence.
func (t *Table) Append(label string, values []float64, class string) (dropped int) {
	row := Row{Label: label, Values: make([]float64, len(t.numeric))}
	for i, v := range values {
		if i >= len(row.Values) {
			dropped = len(values) - i
			break
		}
		row.Values[i] = v
	}

	if t.classIndex >= 0 {
		row.Class = class
		if _, ok := t.classOf[class]; !ok {
			t.classOf[class] = len(t.classes)
			t.classes = append(t.classes, class)
		}
	}

	t.rows = append(t.rows, row)
	return dropped
}

// NumRows is the row count.
func (t *Table) NumRows() int { return len(t.rows) }

// NumColumns is the total column count, including label and class.
func (t *Table) NumColumns() int { return len(t.attrs) }

// Attribute returns column i.
func (t *Table) Attribute(i int) Attribute { return t.attrs[i] }

// Attributes returns a copy of the column layout.
func (t *Table) Attributes() []Attribute { return append([]Attribute(nil), t.attrs...) }

// NumericColumns lists the table column index of every numeric column, in order.
func (t *Table) NumericColumns() []int { return append([]int(nil), t.numeric...) }

// LabelIndex is the label column's index, or -1.
func (t *Table) LabelIndex() int { return t.labelIndex }

// ClassIndex is the class column's index, or -1.
func (t *Table) ClassIndex() int { return t.classIndex }

// Classes is the class domain in order of first occurrence.
func (t *Table) Classes() []string { return append([]string(nil), t.classes...) }

// Row returns row i. The Values slice is shared with the table.
func (t *Table) Row(i int) Row { return t.rows[i] }

// ClassOf is the index of row i's class in Classes, or -1 without a class column.
func (t *Table) ClassOf(i int) int {
	if t.classIndex < 0 {
		return -1
	}
	return t.classOf[t.rows[i].Class]
}

// Value returns the numeric value of row i at table column col.
func (t *Table) Value(i, col int) (float64, error) {
	pos, ok := t.position[col]
	if !ok {
		return 0, fmt.Errorf("column %d is not numeric: %w", col, ErrSchema)
	}
	return t.rows[i].Values[pos], nil
}

// WriteCSV writes the table with a header row of column names.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(t.attrs))
	for i, a := range t.attrs {
		header[i] = a.Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(t.attrs))
	for _, row := range t.rows {
		for i, a := range t.attrs {
			switch a.Kind {
			case Label:
				record[i] = row.Label
			case Class:
				record[i] = row.Class
			case Numeric:
				record[i] = strconv.FormatFloat(row.Values[t.position[i]], 'g', -1, 64)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Select returns a new table holding only the given numeric columns, in the
// given order, followed by the class column when t has one. Labels are kept on
// the rows but there is no label column. Column i of the result (for i <
// len(cols)) is t's column cols[i].
func (t *Table) Select(cols []int) (*Table, error) {
	attrs := make([]Attribute, 0, len(cols)+1)
	positions := make([]int, len(cols))
	for i, col := range cols {
		pos, ok := t.position[col]
		if !ok {
			return nil, fmt.Errorf("select column %d: not numeric: %w", col, ErrSchema)
		}
		positions[i] = pos
		attrs = append(attrs, t.attrs[col])
	}
	if t.classIndex >= 0 {
		attrs = append(attrs, t.attrs[t.classIndex])
	}

	sub, err := New(attrs)
	if err != nil {
		return nil, err
	}
	for _, row := range t.rows {
		values := make([]float64, len(positions))
		for i, pos := range positions {
			values[i] = row.Values[pos]
		}
		sub.Append(row.Label, values, row.Class)
	}
	return sub, nil
}
