package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/scoopy/internal/browser"
	"github.com/matheuskafuri/scoopy/internal/config"
	"github.com/matheuskafuri/scoopy/internal/corpus"
	"github.com/matheuskafuri/scoopy/internal/feed"
	"github.com/matheuskafuri/scoopy/internal/history"
	"github.com/matheuskafuri/scoopy/internal/review"
	"github.com/matheuskafuri/scoopy/internal/tui"
)

var flagPlain bool

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Walk the configured feeds and label each entry",
	Long: `Show every entry of every enabled feed and record whether it is relevant.

Labels are added to the corpus when the session ends, including on quit.
Use --plain for a line-mode prompt that reads one key per line.`,
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().BoolVar(&flagPlain, "plain", false, "line-mode prompt instead of the full-screen view")
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	urls := cfg.FeedURLs()
	if len(urls) == 0 {
		return fmt.Errorf("no enabled feeds in %s", configPath())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	session := review.NewSession(urls)
	src := feed.NewRSSSource()
	launcher := browser.New(cfg.BrowserCommand())
	out := cmd.OutOrStdout()

	started := time.Now()
	if flagPlain {
		fmt.Fprintf(out, "%s\n\n", banner)
		err = review.Walk(ctx, session, src, review.NewLineInput(cmd.InOrStdin(), out), launcher)
	} else {
		err = runTUI(ctx, session, src, launcher)
	}
	finished := time.Now()

	path := corpusPath(cfg)
	if perr := corpus.Persist(session.Dataset(), path); perr != nil {
		return fmt.Errorf("saving labels: %w", perr)
	}
	recordSession(session.Summary(), started, finished, cfg.RetentionDuration())
	printSummary(out, session.Summary(), path)

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runTUI(ctx context.Context, session *review.Session, src feed.Source, launcher review.Launcher) error {
	restore, err := logToFile(filepath.Join(config.DataDir(), "scoopy.log"))
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer restore()

	return tui.Run(ctx, tui.RunOpts{
		Session:  session,
		Source:   src,
		Launcher: launcher,
	})
}

// recordSession logs the finished session. History is best effort; the
// labels are already saved.
func recordSession(s review.Summary, started, finished time.Time, retention time.Duration) {
	db, err := history.Open(config.HistoryPath())
	if err != nil {
		slog.Warn("opening history", "error", err)
		return
	}
	defer db.Close()

	id, err := db.RecordSession(history.Session{
		StartedAt:    started,
		FinishedAt:   finished,
		FeedsVisited: s.FeedsVisited,
		Relevant:     s.Relevant,
		Irrelevant:   s.Irrelevant,
		Quit:         s.Quit,
	})
	if err != nil {
		slog.Warn("recording session", "error", err)
		return
	}
	slog.Debug("session recorded", "id", id)

	if n, err := db.Prune(retention); err != nil {
		slog.Warn("pruning history", "error", err)
	} else if n > 0 {
		slog.Debug("pruned history", "sessions", n)
	}
}

func printSummary(w io.Writer, s review.Summary, path string) {
	total := s.Relevant + s.Irrelevant
	if total == 0 {
		fmt.Fprintf(w, "No entries labeled (%d feed(s) visited).\n", s.FeedsVisited)
		return
	}
	fmt.Fprintf(w, "Labeled %d entr%s across %d feed(s): %d relevant, %d not relevant.\n",
		total, plural(total, "y", "ies"), s.FeedsVisited, s.Relevant, s.Irrelevant)
	fmt.Fprintf(w, "Saved to %s\n", path)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
