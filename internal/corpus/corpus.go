// Package corpus holds the labeled dataset produced by review sessions and
// its compressed on-disk form.
package corpus

import (
	"fmt"
	"strings"
)

// Label is the relevance of a reviewed entry. The integer values are the
// codes written to the corpus file.
type Label int

const (
	Irrelevant Label = 0
	Relevant   Label = 1
)

// Valid reports whether l is one of the two known labels.
func (l Label) Valid() bool {
	return l == Irrelevant || l == Relevant
}

func (l Label) String() string {
	switch l {
	case Relevant:
		return "relevant"
	case Irrelevant:
		return "irrelevant"
	default:
		return fmt.Sprintf("label(%d)", int(l))
	}
}

// ParseLabel accepts the names printed by String.
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "relevant":
		return Relevant, nil
	case "irrelevant":
		return Irrelevant, nil
	}
	return 0, fmt.Errorf("unknown label %q (valid: relevant, irrelevant)", s)
}

// Record is one human decision: an entry title and its label.
type Record struct {
	Text  string
	Label Label
}

func (r Record) validate() error {
	if r.Text == "" {
		return fmt.Errorf("record has empty text")
	}
	if !r.Label.Valid() {
		return fmt.Errorf("record %q has unknown label code %d", r.Text, int(r.Label))
	}
	return nil
}

// Dataset is an ordered list of records. Duplicates are kept.
type Dataset []Record

// Texts returns the record texts in order.
func (d Dataset) Texts() []string {
	out := make([]string, len(d))
	for i, r := range d {
		out[i] = r.Text
	}
	return out
}

// Labels returns the record labels in order.
func (d Dataset) Labels() []Label {
	out := make([]Label, len(d))
	for i, r := range d {
		out[i] = r.Label
	}
	return out
}

// Count returns how many records carry label l.
func (d Dataset) Count(l Label) int {
	n := 0
	for _, r := range d {
		if r.Label == l {
			n++
		}
	}
	return n
}
