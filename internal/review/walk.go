package review

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/matheuskafuri/scoopy/internal/feed"
)

// Input blocks until the reader decides on the prompted entry.
type Input interface {
	ReadAction(ctx context.Context, p Prompt) (Action, error)
}

// Launcher opens a link without blocking the session.
type Launcher interface {
	Open(url string) error
}

// Walk drives s to completion with src, in and l. It returns early only
// when ctx is cancelled or in fails; the dataset gathered so far stays
// available on s either way.
func Walk(ctx context.Context, s *Session, src feed.Source, in Input, l Launcher) error {
	effects := s.Begin()
	for {
		for len(effects) > 0 {
			e := effects[0]
			effects = effects[1:]

			switch e := e.(type) {
			case LoadFeed:
				if err := ctx.Err(); err != nil {
					return err
				}
				f, err := src.Fetch(ctx, e.URL)
				if err != nil {
					slog.Debug("skipping feed", "url", e.URL, "error", err)
					f = feed.Feed{}
				} else if !f.Usable() {
					slog.Debug("skipping untitled feed", "url", e.URL)
				}
				effects = append(effects, s.Loaded(f)...)
			case Launch:
				if err := l.Open(e.URL); err != nil {
					slog.Warn("opening link failed", "url", e.URL, "error", err)
				}
			case Finished:
				return nil
			}
		}

		p, ok := s.Current()
		if !ok {
			return nil
		}
		a, err := in.ReadAction(ctx, p)
		if err != nil {
			return err
		}
		effects = s.Apply(a)
	}
}

// LineInput reads one key per line, for terminals where the full screen
// interface is unavailable. An empty line opens the link, like the space
// key does in the TUI. End of input quits.
//
// Reads happen on a background goroutine so a cancelled context returns
// at once. A line typed after cancellation is kept for the next call.
type LineInput struct {
	r       *bufio.Reader
	w       io.Writer
	pending chan lineResult
	Width   int
	Rows    int
}

type lineResult struct {
	line string
	err  error
}

func NewLineInput(r io.Reader, w io.Writer) *LineInput {
	return &LineInput{r: bufio.NewReader(r), w: w, Width: 78, Rows: 12}
}

func (in *LineInput) ReadAction(ctx context.Context, p Prompt) (Action, error) {
	if err := ctx.Err(); err != nil {
		return None, err
	}
	in.render(Layout(p, in.Width, in.Rows), p.CanUndo)

	line, err := in.readLine(ctx)
	if cerr := ctx.Err(); cerr != nil && errors.Is(err, cerr) {
		return None, err
	}
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return Quit, nil
		}
		return None, fmt.Errorf("reading key: %w", err)
	}
	key := strings.TrimSpace(line)
	if key == "" {
		return OpenLink, nil
	}
	return ParseKey(key), nil
}

func (in *LineInput) readLine(ctx context.Context) (string, error) {
	if in.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := in.r.ReadString('\n')
			ch <- lineResult{line, err}
		}()
		in.pending = ch
	}
	select {
	case res := <-in.pending:
		in.pending = nil
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (in *LineInput) render(page Page, canUndo bool) {
	fmt.Fprintf(in.w, "\n -- %s\n -- %s\n'%s'\n\n", page.FeedTitle, page.Indicator, page.Title)
	for _, l := range page.Lines {
		fmt.Fprintln(in.w, l)
	}
	if page.Truncated {
		fmt.Fprintln(in.w, TruncatedMarker)
	}
	fmt.Fprintf(in.w, "\n%s > ", FormatHints(Hints(canUndo)))
}
