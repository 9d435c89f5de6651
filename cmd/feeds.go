package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/scoopy/internal/config"
	"github.com/matheuskafuri/scoopy/internal/feed"
)

const checkWorkers = 8

var feedSource feed.Source = feed.NewRSSSource()

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add the feeds of an Akregator feed list to the config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		urls, err := feed.ImportAkregator(args[0])
		if err != nil {
			return err
		}

		added := cfg.AddFeeds(urls)
		if added > 0 {
			if err := config.Save(cfg, configPath()); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Found %d feed URL(s), added %d new.\n", len(urls), added)
		return nil
	},
}

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "List configured feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, f := range cfg.Feeds {
			state := "on"
			if !f.Enabled {
				state = "off"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", state, f.Name, f.URL)
		}
		return w.Flush()
	},
}

var feedsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Fetch every enabled feed and report what came back",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()
		results := feed.FetchAll(ctx, feedSource, cfg.FeedURLs(), checkWorkers)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		failed := 0
		for _, r := range results {
			switch {
			case r.Err != nil:
				failed++
				fmt.Fprintf(w, "FAIL\t%s\t%v\n", r.URL, r.Err)
			case !r.Feed.Usable():
				failed++
				fmt.Fprintf(w, "SKIP\t%s\tfeed has no title\n", r.URL)
			default:
				fmt.Fprintf(w, "OK\t%s\t%d entries\t%s\n", r.URL, len(r.Feed.Entries), r.Feed.Title)
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d feed(s) usable.\n", len(results)-failed, len(results))
		return nil
	},
}

func init() {
	feedsCmd.AddCommand(feedsCheckCmd)
}
