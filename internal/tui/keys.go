package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/matheuskafuri/scoopy/internal/review"
)

type keyMap struct {
	Relevant   key.Binding
	Irrelevant key.Binding
	Ignore     key.Binding
	Open       key.Binding
	Next       key.Binding
	Undo       key.Binding
	Quit       key.Binding
}

func binding(a review.Action, help string) key.Binding {
	keys := review.Keys[a]
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], help),
	)
}

func newKeyMap() keyMap {
	return keyMap{
		Relevant:   binding(review.MarkRelevant, "relevant"),
		Irrelevant: binding(review.MarkIrrelevant, "not relevant"),
		Ignore:     binding(review.Ignore, "ignore"),
		Open:       binding(review.OpenLink, "read"),
		Next:       binding(review.NextFeed, "next feed"),
		Undo:       binding(review.Undo, "undo"),
		Quit:       binding(review.Quit, "quit"),
	}
}

// action resolves msg against the enabled bindings.
func (k keyMap) action(msg tea.KeyMsg) review.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return review.Quit
	case key.Matches(msg, k.Relevant):
		return review.MarkRelevant
	case key.Matches(msg, k.Irrelevant):
		return review.MarkIrrelevant
	case key.Matches(msg, k.Ignore):
		return review.Ignore
	case key.Matches(msg, k.Open):
		return review.OpenLink
	case key.Matches(msg, k.Next):
		return review.NextFeed
	case key.Matches(msg, k.Undo):
		return review.Undo
	}
	return review.None
}
