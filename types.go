package docxscrub

import "sort"

// Charset is the set of Unicode code points to strip from run text,
// together with an optional human-readable name per code point.
//
// A Charset is immutable once built and safe for concurrent readers.
type Charset struct {
	runes map[rune]struct{}
	names map[rune]string
}

// NewCharset builds a Charset from a list of code points.
func NewCharset(runes ...rune) *Charset {
	c := &Charset{
		runes: make(map[rune]struct{}, len(runes)),
		names: make(map[rune]string),
	}
	for _, r := range runes {
		c.runes[r] = struct{}{}
	}
	return c
}

// Contains reports whether r is a member of the set.
func (c *Charset) Contains(r rune) bool {
	if c == nil {
		return false
	}
	_, ok := c.runes[r]
	return ok
}

// Len returns the number of code points in the set.
func (c *Charset) Len() int {
	if c == nil {
		return 0
	}
	return len(c.runes)
}

// Name returns the configured description for r, or the empty string.
func (c *Charset) Name(r rune) string {
	if c == nil {
		return ""
	}
	return c.names[r]
}

// Runes returns the member code points in ascending order.
func (c *Charset) Runes() []rune {
	if c == nil {
		return nil
	}
	out := make([]rune, 0, len(c.runes))
	for r := range c.runes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Tally counts removed characters by code point.
type Tally map[rune]int

// Total returns the sum of all counts.
func (t Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

func (t Tally) merge(other Tally) {
	for r, n := range other {
		t[r] += n
	}
}

// Summary reports what a container run did. It is informational; the
// correctness of the output does not depend on it.
type Summary struct {
	// PartsRewritten is the number of text-bearing parts that went
	// through the XML rewrite path.
	PartsRewritten int

	// EntriesCopied is the number of entries copied through verbatim.
	EntriesCopied int

	// Removed counts removed characters by code point, summed across
	// all rewritten parts.
	Removed Tally

	// Warnings lists non-fatal degradations, such as a selected part
	// whose structure could not be safely rewritten and was copied
	// through instead.
	Warnings []string
}

// TotalRemoved returns the total number of characters removed.
func (s *Summary) TotalRemoved() int {
	return s.Removed.Total()
}
