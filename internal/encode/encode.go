// Package encode turns aligned sequences into numeric feature vectors using a
// residue property and a policy for filling gap positions.
package encode

import (
	"fmt"
	"strings"

	"github.com/helengibson/graphTPP-sub002/internal/property"
)

// GapStrategy decides the value of a gap position.
type GapStrategy int

const (
	// NeighbourMean averages the nearest residues left and right of a gap,
	// falling back to the one side that exists at a sequence edge.
	NeighbourMean GapStrategy = iota

	// GlobalMean encodes every gap as the property's canonical mean.
	GlobalMean
)

func (g GapStrategy) String() string {
	switch g {
	case NeighbourMean:
		return "neighbour"
	case GlobalMean:
		return "global"
	}
	return fmt.Sprintf("GapStrategy(%d)", int(g))
}

// ParseGapStrategy reads a strategy name as used on the command line.
func ParseGapStrategy(s string) (GapStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "neighbour", "neighbor", "neighbourmean", "neighbormean", "local":
		return NeighbourMean, nil
	case "global", "globalmean", "mean":
		return GlobalMean, nil
	}
	return 0, fmt.Errorf("unknown gap strategy %q", s)
}

// IsGap reports whether c marks a gap in an alignment.
func IsGap(c byte) bool {
	return c == '-' || c == '.'
}

// Value is the scalar value of one residue under p.
func Value(p *property.Property, residue byte) (float64, error) {
	return p.Value(residue)
}

// Blocks encodes seq position by position. Each block has p.Width() values; for
// a Concatenated property a block holds the sub-properties' values at that
// position. An unknown residue aborts the encode.
func Blocks(seq string, p *property.Property, gap GapStrategy) ([][]float64, error) {
	seq = upperASCII(seq)
	blocks := make([][]float64, len(seq))

	for i := 0; i < len(seq); i++ {
		if IsGap(seq[i]) {
			continue
		}
		b, err := p.Block(seq[i])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i+1, err)
		}
		blocks[i] = b
	}

	switch gap {
	case GlobalMean:
		for i := range blocks {
			if IsGap(seq[i]) {
				blocks[i] = p.MeanBlock()
			}
		}
	case NeighbourMean:
		fillNeighbours(seq, blocks, p.Width())
	default:
		return nil, fmt.Errorf("unknown gap strategy %v", gap)
	}

	return blocks, nil
}

// upperASCII upper-cases a-z only. Any other byte is left for the property
// lookup to reject.
func upperASCII(seq string) string {
	b := []byte(seq)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// fillNeighbours sets every gap block from its nearest non-gap neighbours.
// An all-gap sequence becomes all zeros.
func fillNeighbours(seq string, blocks [][]float64, width int) {
	n := len(seq)

	// left[i] / right[i] are the nearest non-gap index at or before / after i
	left := make([]int, n)
	right := make([]int, n)
	last := -1
	for i := 0; i < n; i++ {
		if !IsGap(seq[i]) {
			last = i
		}
		left[i] = last
	}
	last = -1
	for i := n - 1; i >= 0; i-- {
		if !IsGap(seq[i]) {
			last = i
		}
		right[i] = last
	}

	for i := 0; i < n; i++ {
		if !IsGap(seq[i]) {
			continue
		}

		l, r := left[i], right[i]
		switch {
		case l >= 0 && r >= 0:
			b := make([]float64, width)
			for k := range b {
				b[k] = (blocks[l][k] + blocks[r][k]) / 2
			}
			blocks[i] = b
		case r >= 0:
			blocks[i] = append([]float64(nil), blocks[r]...)
		case l >= 0:
			blocks[i] = append([]float64(nil), blocks[l]...)
		default:
			blocks[i] = make([]float64, width)
		}
	}
}

// Encode returns the flat feature vector for seq.
//
// Scalar and OneHot properties are laid out position-major (block after block).
// A Concatenated property is laid out property-major: every position of the
// first sub-property, then every position of the second, and so on.
func Encode(seq string, p *property.Property, gap GapStrategy) ([]float64, error) {
	if p.Kind() == property.Concatenated {
		out := make([]float64, 0, len(seq)*p.Width())
		for _, sub := range p.Subproperties() {
			blocks, err := Blocks(seq, sub, gap)
			if err != nil {
				return nil, err
			}
			for _, b := range blocks {
				out = append(out, b[0])
			}
		}
		return out, nil
	}

	blocks, err := Blocks(seq, p, gap)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(seq)*p.Width())
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out, nil
}

// Columns names the values Encode produces for a sequence of the given length.
// Positions are 1-based.
func Columns(p *property.Property, length int) []string {
	names := make([]string, 0, length*p.Width())
	switch p.Kind() {
	case property.Scalar:
		for i := 1; i <= length; i++ {
			names = append(names, fmt.Sprintf("%s_%d", p.Name(), i))
		}
	case property.OneHot:
		residues := oneHotOrder(p)
		for i := 1; i <= length; i++ {
			for _, r := range residues {
				names = append(names, fmt.Sprintf("%s_%d_%c", p.Name(), i, r))
			}
		}
	case property.Concatenated:
		for _, sub := range p.Subproperties() {
			for i := 1; i <= length; i++ {
				names = append(names, fmt.Sprintf("%s_%d", sub.Name(), i))
			}
		}
	}
	return names
}

// oneHotOrder recovers which residue owns each slot of a one-hot block.
func oneHotOrder(p *property.Property) []byte {
	order := make([]byte, p.Width())
	for i := range order {
		order[i] = '?'
	}
	for _, r := range p.Residues() {
		b, err := p.Block(r)
		if err != nil {
			continue
		}
		hot, count := -1, 0
		for k, v := range b {
			if v == 1 {
				hot = k
				count++
			}
		}
		if count == 1 {
			order[hot] = r
		}
	}
	return order
}
