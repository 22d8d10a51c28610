// Package alignment reads aligned sequence files into label + sequence records.
package alignment

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrNoRecords is returned when a file parses but holds no sequences.
	ErrNoRecords = errors.New("alignment: no records")

	// ErrUnequalLength is returned by CheckLengths when records differ in length.
	ErrUnequalLength = errors.New("alignment: records differ in length")

	// ErrFormat is returned for a file that is neither FASTA nor CLUSTAL.
	ErrFormat = errors.New("alignment: unrecognized format")
)

// Record is one aligned sequence and its label.
type Record struct {
	Label    string
	Sequence string
}

// unwantedChars strips whitespace, digits and anything else that isn't a
// residue or gap from sequence lines
var unwantedChars = regexp.MustCompile(`[^A-Za-z\-\.\*]`)

// Read parses an alignment file (by its path on the local FS), choosing the
// reader from the extension or, failing that, the first character.
func Read(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open alignment: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".fa", ".fasta", ".faa", ".afa", ".mfa":
		return ReadFasta(br)
	case ".aln", ".clustal", ".clw":
		return ReadClustal(br)
	}

	head, err := br.Peek(1)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if head[0] == '>' {
		return ReadFasta(br)
	}
	if peek, _ := br.Peek(7); strings.EqualFold(string(peek), "CLUSTAL") {
		return ReadClustal(br)
	}
	return nil, fmt.Errorf("failed to parse %s: %w", path, ErrFormat)
}

// ReadFasta parses a multi-FASTA alignment. The label is the full header line
// without its leading '>'.
func ReadFasta(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var records []Record
	var seq strings.Builder
	label, inRecord := "", false
	flush := func() {
		if inRecord {
			records = append(records, Record{Label: label, Sequence: seq.String()})
		}
		seq.Reset()
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, ">") {
			flush()
			label, inRecord = strings.TrimSpace(line[1:]), true
			continue
		}
		if inRecord {
			seq.WriteString(unwantedChars.ReplaceAllString(line, ""))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read FASTA: %w", err)
	}
	flush()

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// ReadClustal parses a CLUSTAL alignment: a header line, then interleaved
// blocks of "label sequence [count]" lines. Conservation lines are skipped.
func ReadClustal(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var order []string
	seqs := make(map[string]*strings.Builder)
	header := false

	for scanner.Scan() {
		line := scanner.Text()
		if !header {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !strings.HasPrefix(strings.ToUpper(line), "CLUSTAL") {
				return nil, fmt.Errorf("missing CLUSTAL header: %w", ErrFormat)
			}
			header = true
			continue
		}

		// conservation lines start with whitespace
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		label := fields[0]
		sb, ok := seqs[label]
		if !ok {
			sb = &strings.Builder{}
			seqs[label] = sb
			order = append(order, label)
		}
		sb.WriteString(unwantedChars.ReplaceAllString(fields[1], ""))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read CLUSTAL: %w", err)
	}

	if len(order) == 0 {
		return nil, ErrNoRecords
	}
	records := make([]Record, len(order))
	for i, label := range order {
		records[i] = Record{Label: label, Sequence: seqs[label].String()}
	}
	return records, nil
}

// CheckLengths verifies every record has the first record's sequence length.
func CheckLengths(records []Record) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	want := len(records[0].Sequence)
	for i, r := range records[1:] {
		if len(r.Sequence) != want {
			return fmt.Errorf("record %d (%s) has length %d, want %d: %w", i+2, r.Label, len(r.Sequence), want, ErrUnequalLength)
		}
	}
	return nil
}
