package docxscrub

import "strings"

// Filter returns s with every code point in the set removed. Code points
// not in the set are kept in their original order with no other
// transformation: no normalization, no case changes, no whitespace
// collapsing. Filtering an already-filtered string is a no-op.
func (c *Charset) Filter(s string) string {
	return c.filterTally(s, nil)
}

// filterTally is Filter with per-rune removal counting. A nil tally
// disables counting. The fast path returns s unchanged (no allocation)
// when nothing needs removing.
func (c *Charset) filterTally(s string, t Tally) string {
	if c.Len() == 0 {
		return s
	}
	first := -1
	for i, r := range s {
		if c.Contains(r) {
			first = i
			break
		}
	}
	if first < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:first])
	for _, r := range s[first:] {
		if c.Contains(r) {
			if t != nil {
				t[r]++
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
