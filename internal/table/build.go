package table

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/helengibson/graphTPP-sub002/internal/alignment"
	"github.com/helengibson/graphTPP-sub002/internal/encode"
	"github.com/helengibson/graphTPP-sub002/internal/property"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

const (
	// LabelColumn names the label column.
	LabelColumn = "label"

	// ClassColumn names the class column.
	ClassColumn = "class"
)

// BuildOptions control how class values are derived from labels.
type BuildOptions struct {
	// ClassDelimiter splits labels into tokens. Empty means no class column.
	ClassDelimiter string

	// ClassPiece is the 0-based token index holding the class.
	ClassPiece int
}

// Build encodes every record with p and gap and collects the results into a
// table. The first record's encoded length fixes the numeric column count.
//
// Rows are built best-effort: values past the column count are dropped with
// a diagnostic (see Table.Diagnostics) and the row keeps what fit. Unknown
// residues and missing class tokens abort the build.
func Build(records []alignment.Record, p *property.Property, gap encode.GapStrategy, opts BuildOptions) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if opts.ClassDelimiter != "" && opts.ClassPiece < 0 {
		return nil, fmt.Errorf("class piece %d: %w", opts.ClassPiece, ErrLabelToken)
	}

	first, err := encode.Encode(records[0].Sequence, p, gap)
	if err != nil {
		return nil, fmt.Errorf("record 1 (%s): %w", records[0].Label, err)
	}

	attrs := []Attribute{{Name: LabelColumn, Kind: Label}}
	for _, name := range encode.Columns(p, len(first)/p.Width()) {
		attrs = append(attrs, Attribute{Name: name, Kind: Numeric})
	}
	if opts.ClassDelimiter != "" {
		attrs = append(attrs, Attribute{Name: ClassColumn, Kind: Class})
	}

	t, err := New(attrs)
	if err != nil {
		return nil, err
	}

	for i, rec := range records {
		values := first
		if i > 0 {
			if values, err = encode.Encode(rec.Sequence, p, gap); err != nil {
				return nil, fmt.Errorf("record %d (%s): %w", i+1, rec.Label, err)
			}
		}

		class := ""
		if opts.ClassDelimiter != "" {
			if class, err = classToken(rec.Label, opts); err != nil {
				return nil, fmt.Errorf("record %d: %w", i+1, err)
			}
		}

		if dropped := t.Append(rec.Label, values, class); dropped > 0 {
			diag := fmt.Errorf(
				"record %d (%s): %d of %d values past column %d dropped: %w",
				i+1, rec.Label, dropped, len(values), len(t.numeric), ErrInconsistentLength,
			)
			stderr.Println(diag)
			t.Diagnostics = append(t.Diagnostics, diag)
		}
	}

	return t, nil
}

// classToken splits label on the delimiter and returns the requested piece.
func classToken(label string, opts BuildOptions) (string, error) {
	tokens := strings.Split(label, opts.ClassDelimiter)
	if opts.ClassPiece >= len(tokens) {
		return "", fmt.Errorf("label %q has %d tokens split on %q, need index %d: %w",
			label, len(tokens), opts.ClassDelimiter, opts.ClassPiece, ErrLabelToken)
	}
	return tokens[opts.ClassPiece], nil
}
