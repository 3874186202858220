package srcinfo

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// Pair is one key/value line of a .SRCINFO document, in document order.
// The same key may repeat within a scope (e.g. multiple source lines).
type Pair struct {
	Key   string
	Value string
}

// lineRE matches the line shape makepkg emits: an identifier, an equals
// sign with surrounding whitespace, and the value up to end of line.
var lineRE = regexp.MustCompile(`^(\w+)\s+=\s+(.+)$`)

// Scanner reads a .SRCINFO document line by line and yields well-formed
// key/value pairs. Lines that don't match the expected shape are skipped
// silently: upstream documents are not validated before being queried, so
// permissiveness is deliberate, not an oversight.
//
// A Scanner is single-pass; construct a new one to rescan.
type Scanner struct {
	s    *bufio.Scanner
	pair Pair
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{s: bufio.NewScanner(r)}
}

// Scan advances to the next well-formed pair, skipping lines that don't
// match. It returns false at end of input or on a read error.
func (s *Scanner) Scan() bool {
	for s.s.Scan() {
		line := strings.TrimSpace(s.s.Text())
		m := lineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		s.pair = Pair{Key: m[1], Value: strings.TrimSpace(m[2])}
		return true
	}
	return false
}

// Pair returns the pair produced by the last successful call to Scan.
func (s *Scanner) Pair() Pair { return s.pair }

// Err returns the first error encountered while reading, if any.
func (s *Scanner) Err() error { return s.s.Err() }
