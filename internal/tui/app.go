package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/scoopy/internal/feed"
	"github.com/matheuskafuri/scoopy/internal/review"
)

// chrome is the number of rows the page uses besides the description:
// header, blank, title, blank, truncation marker, link, blank, bottom bar.
const chrome = 8

type App struct {
	ctx      context.Context
	session  *review.Session
	src      feed.Source
	launcher review.Launcher

	keys    keyMap
	spinner spinner.Model

	loading    bool
	loadingURL string

	width  int
	height int
	err    error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Session  *review.Session
	Source   feed.Source
	Launcher review.Launcher
}

func NewApp(ctx context.Context, opts RunOpts) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		ctx:      ctx,
		session:  opts.Session,
		src:      opts.Source,
		launcher: opts.Launcher,
		keys:     newKeyMap(),
		spinner:  sp,
	}
}

func (a *App) Init() tea.Cmd {
	return a.apply(a.session.Begin())
}

// apply turns session effects into commands.
func (a *App) apply(effects []review.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e := e.(type) {
		case review.LoadFeed:
			if !a.loading {
				cmds = append(cmds, a.spinner.Tick)
			}
			a.loading = true
			a.loadingURL = e.URL
			cmds = append(cmds, a.fetchCmd(e))
		case review.Launch:
			cmds = append(cmds, a.launchCmd(e.URL))
		case review.Finished:
			cmds = append(cmds, tea.Quit)
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) fetchCmd(req review.LoadFeed) tea.Cmd {
	ctx, src := a.ctx, a.src
	return func() tea.Msg {
		f, err := src.Fetch(ctx, req.URL)
		return feedLoadedMsg{index: req.Index, url: req.URL, feed: f, err: err}
	}
}

func (a *App) launchCmd(url string) tea.Cmd {
	l := a.launcher
	return func() tea.Msg {
		if err := l.Open(url); err != nil {
			return launchErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		a.err = nil
		if p, ok := a.session.Current(); ok {
			a.keys.Undo.SetEnabled(p.CanUndo)
		}
		act := a.keys.action(msg)
		if act == review.None {
			return a, nil
		}
		return a, a.apply(a.session.Apply(act))

	case feedLoadedMsg:
		if msg.index != a.session.State().FeedIndex {
			return a, nil
		}
		a.loading = false
		f := msg.feed
		if msg.err != nil {
			slog.Debug("feed unavailable", "url", msg.url, "error", msg.err)
			f = feed.Feed{}
		}
		return a, a.apply(a.session.Loaded(f))

	case launchErrMsg:
		slog.Warn("could not open link", "error", msg.err)
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  scoopy")
	}

	if a.loading {
		text := fmt.Sprintf("%s Loading feed %d of %d", a.spinner.View(), a.session.State().FeedIndex+1, a.session.FeedCount())
		body := lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center,
			text+"\n"+linkStyle.Render(truncateStr(a.loadingURL, a.width-4)))
		return body + "\n" + renderBottomBar(a.counts(), review.FormatHints([]review.Hint{{Key: "q", Desc: "quit"}}), a.width)
	}

	p, ok := a.session.Current()
	if !ok {
		return ""
	}
	return a.renderPage(p)
}

func (a *App) renderPage(p review.Prompt) string {
	width := a.width - 4
	rows := a.height - chrome
	if rows < 1 {
		rows = 1
	}
	page := review.Layout(p, width, rows)

	lines := []string{
		renderHeader(page.FeedTitle, page.Indicator, a.width),
		"",
		titleStyle.Width(a.width).Render(wrapText(page.Title, width)),
		"",
	}
	for _, l := range page.Lines {
		lines = append(lines, bodyStyle.Render(l))
	}
	if page.Truncated {
		lines = append(lines, truncatedStyle.Render(review.TruncatedMarker))
	}
	if p.Entry.Link != "" {
		lines = append(lines, "", linkStyle.Render(truncateStr(p.Entry.Link, width)))
	}

	return a.withBottomBar(strings.Join(lines, "\n"), a.counts(), review.FormatHints(review.Hints(p.CanUndo)))
}

func (a *App) counts() string {
	s := a.session.Summary()
	return countStyle.Render(fmt.Sprintf(" %d relevant · %d not relevant", s.Relevant, s.Irrelevant))
}

func (a *App) withBottomBar(content, left, hints string) string {
	bar := renderBottomBar(left, hints, a.width)
	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:a.height-1]
	}
	if a.err != nil && len(lines) > 0 {
		lines[len(lines)-1] = errStyle.Render(truncateStr(" "+a.err.Error(), a.width))
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

// Run shows the review until the session finishes or the reader quits.
func Run(ctx context.Context, opts RunOpts) error {
	app := NewApp(ctx, opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
