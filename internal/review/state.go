package review

import (
	"slices"

	"github.com/matheuskafuri/scoopy/internal/corpus"
	"github.com/matheuskafuri/scoopy/internal/feed"
)

// State is the position of a review and the decisions taken so far.
type State struct {
	FeedIndex  int
	EntryIndex int
	Lookback   bool
	Dataset    corpus.Dataset
}

// NewState returns the initial state with its own empty dataset.
func NewState() State {
	return State{Dataset: corpus.Dataset{}}
}

// CanUndo reports whether the previous entry of the current feed can be
// revisited. Undo is not chained.
func (s State) CanUndo() bool {
	return !s.Lookback && s.EntryIndex > 0
}

// Effect is a side effect requested by a transition.
type Effect interface {
	isEffect()
}

// Launch asks the adapter to open URL in a browser.
type Launch struct {
	URL string
}

// FeedDone reports that the current feed was exhausted or abandoned. The
// returned state already points at the next feed.
type FeedDone struct{}

// Stop reports an explicit quit.
type Stop struct{}

// LoadFeed asks the adapter to fetch the feed at Index and hand it to
// Session.Loaded.
type LoadFeed struct {
	Index int
	URL   string
}

// Finished reports the end of the session, by quit or by exhaustion.
type Finished struct{}

func (Launch) isEffect()   {}
func (FeedDone) isEffect() {}
func (Stop) isEffect()     {}
func (LoadFeed) isEffect() {}
func (Finished) isEffect() {}

// Step applies a to s while f is the feed under review. It performs no I/O
// and never mutates the dataset of s.
func Step(s State, f feed.Feed, a Action) (State, []Effect) {
	if s.EntryIndex >= len(f.Entries) {
		return nextFeed(s), []Effect{FeedDone{}}
	}
	entry := f.Entries[s.EntryIndex]

	switch a {
	case MarkRelevant, MarkIrrelevant:
		label := corpus.Irrelevant
		if a == MarkRelevant {
			label = corpus.Relevant
		}
		// Records need a text; an untitled entry is passed over like an ignore.
		if entry.Title != "" {
			s.Dataset = append(slices.Clip(s.Dataset), corpus.Record{Text: entry.Title, Label: label})
		}
		return advance(s, f)
	case Ignore:
		return advance(s, f)
	case OpenLink:
		return s, []Effect{Launch{URL: entry.Link}}
	case NextFeed:
		return nextFeed(s), []Effect{FeedDone{}}
	case Undo:
		if !s.CanUndo() {
			return s, nil
		}
		// Pops the last record whatever the previous action was, so an undo
		// after an ignore removes an earlier decision.
		if n := len(s.Dataset); n > 0 {
			s.Dataset = s.Dataset[:n-1 : n-1]
		}
		s.EntryIndex--
		s.Lookback = true
		return s, nil
	case Quit:
		return s, []Effect{Stop{}}
	}
	return s, nil
}

func advance(s State, f feed.Feed) (State, []Effect) {
	s.EntryIndex++
	s.Lookback = false
	if s.EntryIndex >= len(f.Entries) {
		return nextFeed(s), []Effect{FeedDone{}}
	}
	return s, nil
}

func nextFeed(s State) State {
	s.FeedIndex++
	s.EntryIndex = 0
	s.Lookback = false
	return s
}
