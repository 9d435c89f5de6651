// Package review walks feeds entry by entry and records the relevance
// decisions of the reader.
//
// The state machine is Step, a pure function of the current State, the
// loaded feed and an Action. Session sequences feeds around it and turns
// the outcome into Effects that an adapter (the bubbletea program or Walk)
// carries out.
package review

import "strings"

// Action is a decision taken on the current entry.
type Action int

const (
	None Action = iota
	MarkRelevant
	MarkIrrelevant
	Ignore
	OpenLink
	NextFeed
	Undo
	Quit
)

var actionNames = map[Action]string{
	None:           "none",
	MarkRelevant:   "mark-relevant",
	MarkIrrelevant: "mark-irrelevant",
	Ignore:         "ignore",
	OpenLink:       "open-link",
	NextFeed:       "next-feed",
	Undo:           "undo",
	Quit:           "quit",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// Keys are the default keys of each action, as typed in plain mode and
// bound in the TUI.
var Keys = map[Action][]string{
	MarkRelevant:   {"p"},
	MarkIrrelevant: {"k"},
	Ignore:         {"i"},
	OpenLink:       {" ", "o"},
	NextFeed:       {"n"},
	Undo:           {"u", "backspace"},
	Quit:           {"q", "ctrl+c"},
}

// ParseKey maps a key name to its action. Unknown keys map to None.
func ParseKey(k string) Action {
	k = strings.ToLower(k)
	for a, keys := range Keys {
		for _, candidate := range keys {
			if k == candidate {
				return a
			}
		}
	}
	return None
}

// Hint is one entry of the key legend shown under an article.
type Hint struct {
	Key  string
	Desc string
}

// Hints lists the actions available on the current entry. Undo is only
// offered when it is legal.
func Hints(canUndo bool) []Hint {
	hints := []Hint{
		{"p", "relevant"},
		{"k", "not relevant"},
		{"i", "ignore"},
		{"space", "read"},
		{"n", "next feed"},
	}
	if canUndo {
		hints = append(hints, Hint{"u", "undo"})
	}
	return append(hints, Hint{"q", "quit"})
}

// FormatHints renders hints as "p relevant  k not relevant ...".
func FormatHints(hints []Hint) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = h.Key + " " + h.Desc
	}
	return strings.Join(parts, "  ")
}
