package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/scoopy/internal/config"
	"github.com/matheuskafuri/scoopy/internal/corpus"
	"github.com/matheuskafuri/scoopy/internal/history"
)

var flagPruneOlderThan string

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old review sessions from the history",
	Long: `Delete recorded review sessions older than the retention period and reclaim disk space.

Uses the retention value from config (default: 365d) unless overridden with --older-than.
The labeled corpus is never pruned.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := history.Open(config.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer db.Close()

		retention := cfg.RetentionDuration()
		if flagPruneOlderThan != "" {
			d, err := config.ParseDays(flagPruneOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
			retention = d
		}

		deleted, err := db.Prune(retention)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		out := cmd.OutOrStdout()
		if deleted == 0 {
			fmt.Fprintln(out, "Nothing to prune.")
		} else {
			fmt.Fprintf(out, "Pruned %d session(s) older than %s.\n", deleted, formatDuration(retention))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus and review history statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		path := corpusPath(cfg)
		ds, err := corpus.Load(path)
		if err != nil {
			return fmt.Errorf("loading corpus: %w", err)
		}
		fmt.Fprintf(out, "Corpus: %s\n", path)
		fmt.Fprintf(out, "Records: %d (%d relevant, %d not relevant)\n",
			len(ds), ds.Count(corpus.Relevant), ds.Count(corpus.Irrelevant))
		if info, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "Size: %s\n", formatBytes(info.Size()))
		}

		dbPath := config.HistoryPath()
		db, err := history.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer db.Close()

		count, size, err := db.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}
		totals, err := db.Totals()
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\nHistory: %s\n", dbPath)
		fmt.Fprintf(out, "Sessions: %d\n", count)
		fmt.Fprintf(out, "Labels recorded: %d relevant, %d not relevant\n", totals.Relevant, totals.Irrelevant)
		fmt.Fprintf(out, "Size: %s\n", formatBytes(size))

		recent, err := db.Sessions(5)
		if err != nil {
			return err
		}
		if len(recent) > 0 {
			fmt.Fprintln(out, "\nRecent sessions:")
		}
		for _, s := range recent {
			state := "finished"
			if s.Quit {
				state = "quit"
			}
			fmt.Fprintf(out, "  %s  %2d feed(s)  +%d/-%d  %s\n",
				s.StartedAt.Local().Format("2006-01-02 15:04"), s.FeedsVisited, s.Relevant, s.Irrelevant, state)
		}
		return nil
	},
}

func init() {
	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "", "override retention period (e.g., 30d, 720h)")
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
