package dem

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/sparseblossom/decoder"
	"github.com/katalvlaran/sparseblossom/matchgraph"
)

// Target is the subset of decoder.Matching the parser drives. Declaring it
// as an interface rather than depending on the concrete type keeps the
// parser testable against a fake graph builder.
type Target interface {
	AddEdge(u, v matchgraph.NodeIdx, weight float64, obsIndices []int, errorProbability float64) error
	AddBoundaryEdge(u matchgraph.NodeIdx, weight float64, obsIndices []int, errorProbability float64) error
}

var _ Target = (*decoder.Matching)(nil)

// Parser holds the configuration a Parse call runs with.
type Parser struct {
	detectorOffset int
}

// NewParser returns a Parser configured by opts.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse reads a full DEM document from r and issues the corresponding
// AddEdge/AddBoundaryEdge calls against target. It fails fast on the first
// malformed line or rejected edge; a partially-built target after an error
// should be discarded.
func Parse(r io.Reader, target Target, opts ...Option) error {
	return NewParser(opts...).Parse(r, target)
}

// Parse is the method form of the package-level Parse, for reuse of one
// configured Parser across several documents.
func (p *Parser) Parse(r io.Reader, target Target) error {
	lines, err := readLines(r)
	if err != nil {
		return err
	}

	_, err = p.processBlock(lines, 0, target, 0)

	return err
}

// processBlock interprets lines starting at index start, at the given
// cumulative detector offset, until it either runs out of lines (the
// top-level call) or hits an unmatched "}" (a nested repeat-block call).
// It returns the index just past the line it stopped on.
func (p *Parser) processBlock(lines []string, start int, target Target, offset int) (int, error) {
	i := start
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		switch {
		case line == "":
			i++
		case strings.HasPrefix(line, "#"):
			i++
		case line == "}":
			return i, nil // caller (a repeat block) consumes the brace itself
		case strings.HasPrefix(line, "repeat"):
			end, err := p.processRepeat(lines, i, target, offset)
			if err != nil {
				return i, err
			}
			i = end
		case strings.HasPrefix(line, "detector"):
			i++ // documentation only; no graph effect
		case strings.HasPrefix(line, "error("):
			if err := p.processErrorLine(line, target, offset); err != nil {
				return i, fmt.Errorf("dem: line %d: %w", i+1, err)
			}
			i++
		default:
			return i, fmt.Errorf("dem: line %d: %w", i+1, ErrMalformedLine)
		}
	}

	return i, nil
}

// processRepeat parses a "repeat N {" header at lines[start], replays the
// body through lines[start+1:close] N times (each iteration's detector
// offset is offset + iteration*p.detectorOffset), and returns the index
// just past the closing "}".
func (p *Parser) processRepeat(lines []string, start int, target Target, offset int) (int, error) {
	header := strings.TrimSpace(lines[start])
	header = strings.TrimSuffix(header, "{")
	header = strings.TrimSpace(strings.TrimPrefix(header, "repeat"))

	n, err := strconv.Atoi(header)
	if err != nil || n <= 0 {
		return start, ErrBadRepeatCount
	}

	bodyStart := start + 1
	for iter := 0; iter < n; iter++ {
		end, err := p.processBlock(lines, bodyStart, target, offset+iter*p.detectorOffset)
		if err != nil {
			return start, err
		}
		if end >= len(lines) || strings.TrimSpace(lines[end]) != "}" {
			return start, ErrUnterminatedBlock
		}
		if iter == n-1 {
			return end + 1, nil
		}
	}

	return start, ErrUnterminatedBlock
}

// processErrorLine parses one `error(p) D<i>[ D<j>][ L<k>]*` line and
// issues the corresponding AddEdge/AddBoundaryEdge call.
func (p *Parser) processErrorLine(line string, target Target, offset int) error {
	closeParen := strings.IndexByte(line, ')')
	if !strings.HasPrefix(line, "error(") || closeParen < 0 {
		return ErrMalformedLine
	}
	prob, err := strconv.ParseFloat(line[len("error("):closeParen], 64)
	if err != nil || math.IsNaN(prob) || math.IsInf(prob, 0) {
		return ErrBadProbability
	}

	var detectors []matchgraph.NodeIdx
	var obsIndices []int
	for _, tok := range strings.Fields(line[closeParen+1:]) {
		switch {
		case tok == "^":
			continue // correlated-matching separator: dropped (spec 9)
		case strings.HasPrefix(tok, "D"):
			idx, err := strconv.Atoi(tok[1:])
			if err != nil {
				return fmt.Errorf("%w: %q", ErrMalformedLine, tok)
			}
			detectors = append(detectors, matchgraph.NodeIdx(idx+offset))
		case strings.HasPrefix(tok, "L"):
			idx, err := strconv.Atoi(tok[1:])
			if err != nil {
				return fmt.Errorf("%w: %q", ErrMalformedLine, tok)
			}
			obsIndices = append(obsIndices, idx)
		default:
			return fmt.Errorf("%w: %q", ErrMalformedLine, tok)
		}
	}

	weight := math.Log((1 - prob) / prob)

	switch len(detectors) {
	case 0:
		return ErrNoDetectors
	case 1:
		return target.AddBoundaryEdge(detectors[0], weight, obsIndices, prob)
	case 2:
		return target.AddEdge(detectors[0], detectors[1], weight, obsIndices, prob)
	default:
		return ErrUnsupportedHyperedge
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}

	return lines, sc.Err()
}
