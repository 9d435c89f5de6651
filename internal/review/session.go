package review

import (
	"github.com/matheuskafuri/scoopy/internal/corpus"
	"github.com/matheuskafuri/scoopy/internal/feed"
)

// Prompt is everything an adapter needs to present the current entry.
type Prompt struct {
	FeedTitle string
	Entry     feed.Entry
	Index     int // zero-based
	Total     int
	CanUndo   bool
}

// Summary describes a finished (or running) session.
type Summary struct {
	FeedsVisited int
	Relevant     int
	Irrelevant   int
	Quit         bool
}

// Session sequences the feeds of a review around Step. It is not safe for
// concurrent use; adapters call it from a single goroutine.
type Session struct {
	urls    []string
	state   State
	feed    feed.Feed
	active  bool
	done    bool
	quit    bool
	visited int
}

func NewSession(urls []string) *Session {
	return &Session{
		urls:  append([]string(nil), urls...),
		state: NewState(),
	}
}

// Begin starts the walk. It requests the first feed, or finishes at once
// when there are no feeds.
func (s *Session) Begin() []Effect {
	return s.requestFeed()
}

func (s *Session) requestFeed() []Effect {
	if s.state.FeedIndex >= len(s.urls) {
		s.done = true
		return []Effect{Finished{}}
	}
	return []Effect{LoadFeed{Index: s.state.FeedIndex, URL: s.urls[s.state.FeedIndex]}}
}

// Loaded hands over the feed requested by the last LoadFeed. Unusable and
// empty feeds are skipped without touching the dataset.
func (s *Session) Loaded(f feed.Feed) []Effect {
	if s.done {
		return nil
	}
	if !f.Usable() || len(f.Entries) == 0 {
		if f.Usable() {
			s.visited++
		}
		s.state.FeedIndex++
		s.state.EntryIndex = 0
		s.state.Lookback = false
		return s.requestFeed()
	}
	s.feed = f
	s.active = true
	s.visited++
	return nil
}

// Apply runs action a against the entry under review.
func (s *Session) Apply(a Action) []Effect {
	if s.done {
		return nil
	}
	if !s.active {
		// Only quit is meaningful while a feed is loading.
		if a == Quit {
			s.done = true
			s.quit = true
			return []Effect{Finished{}}
		}
		return nil
	}

	next, effects := Step(s.state, s.feed, a)
	s.state = next

	var out []Effect
	for _, e := range effects {
		switch e.(type) {
		case FeedDone:
			s.feed = feed.Feed{}
			s.active = false
			out = append(out, s.requestFeed()...)
		case Stop:
			s.done = true
			s.quit = true
			out = append(out, Finished{})
		default:
			out = append(out, e)
		}
	}
	return out
}

// Current returns the entry awaiting a decision, if any.
func (s *Session) Current() (Prompt, bool) {
	if s.done || !s.active || s.state.EntryIndex >= len(s.feed.Entries) {
		return Prompt{}, false
	}
	return Prompt{
		FeedTitle: s.feed.Title,
		Entry:     s.feed.Entries[s.state.EntryIndex],
		Index:     s.state.EntryIndex,
		Total:     len(s.feed.Entries),
		CanUndo:   s.state.CanUndo(),
	}, true
}

func (s *Session) State() State { return s.state }

func (s *Session) Done() bool { return s.done }

// Dataset returns the decisions recorded so far.
func (s *Session) Dataset() corpus.Dataset {
	return s.state.Dataset
}

// FeedCount is the number of feed URLs in the walk.
func (s *Session) FeedCount() int { return len(s.urls) }

func (s *Session) Summary() Summary {
	return Summary{
		FeedsVisited: s.visited,
		Relevant:     s.state.Dataset.Count(corpus.Relevant),
		Irrelevant:   s.state.Dataset.Count(corpus.Irrelevant),
		Quit:         s.quit,
	}
}
