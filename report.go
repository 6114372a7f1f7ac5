package mailscreen

import "strings"

// Entry pairs one input line with its outcome.
// Line keeps the exact text of the input line.
type Entry struct {
	Line string `json:"line"`
	Outcome
}

// Report is the ordered result of a bulk run: one Entry per non-blank
// input line, in input order.
type Report struct {
	Entries []Entry `json:"entries"`
}

// Len returns the number of entries.
func (r Report) Len() int { return len(r.Entries) }

// Copyable reports whether there is anything to export.
func (r Report) Copyable() bool { return len(r.Entries) > 0 }

// Count returns the number of entries with the given kind.
func (r Report) Count(kind Kind) int {
	n := 0
	for _, e := range r.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Render returns one "<address>: <outcome text>" line per entry,
// joined with newlines.
func (r Report) Render() string {
	var b strings.Builder
	for i, e := range r.Entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Email)
		b.WriteString(": ")
		b.WriteString(e.Text())
	}
	return b.String()
}
