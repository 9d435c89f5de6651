package feed

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
)

// Entry is one article of a feed.
type Entry struct {
	Title       string
	Description string
	Link        string
}

// Feed is a titled, ordered list of entries. A feed without a title is not
// usable for review.
type Feed struct {
	Title   string
	Entries []Entry
}

// Usable reports whether the feed can be reviewed.
func (f Feed) Usable() bool {
	return strings.TrimSpace(f.Title) != ""
}

// Source fetches and parses a feed document.
type Source interface {
	Fetch(ctx context.Context, url string) (Feed, error)
}

type RSSSource struct {
	parser *gofeed.Parser
}

func NewRSSSource() *RSSSource {
	return &RSSSource{parser: gofeed.NewParser()}
}

func (s *RSSSource) Fetch(ctx context.Context, url string) (Feed, error) {
	parsed, err := s.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return Feed{}, fmt.Errorf("fetching %s: %w", url, err)
	}
	return fromParsed(parsed), nil
}

func fromParsed(parsed *gofeed.Feed) Feed {
	f := Feed{
		Title:   strings.TrimSpace(parsed.Title),
		Entries: make([]Entry, 0, len(parsed.Items)),
	}
	for _, item := range parsed.Items {
		desc := item.Description
		if desc == "" {
			desc = item.Content
		}
		f.Entries = append(f.Entries, Entry{
			Title:       strings.TrimSpace(item.Title),
			Description: stripHTML(desc),
			Link:        item.Link,
		})
	}
	return f
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}

// Result is the outcome of fetching one URL.
type Result struct {
	URL  string
	Feed Feed
	Err  error
}

// FetchAll fetches every URL with at most workers requests in flight.
// Results keep the order of urls.
func FetchAll(ctx context.Context, src Source, urls []string, workers int) []Result {
	if workers <= 0 {
		workers = 4
	}
	results := make([]Result, len(urls))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			f, err := src.Fetch(ctx, u)
			results[i] = Result{URL: u, Feed: f, Err: err}
			return nil
		})
	}
	g.Wait()
	return results
}
