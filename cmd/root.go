package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/scoopy/internal/config"
	"github.com/matheuskafuri/scoopy/internal/update"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = "Scoopy is a command-line utility to help you keep up with\nresearch relevant to you"

var (
	flagConfig  string
	flagCorpus  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "scoopy",
	Short: "Label journal feed entries and train a relevance classifier",
	Long: `scoopy walks your journal feeds entry by entry, records which entries are
relevant to you and trains a text classifier on those labels.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(flagVerbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", banner)
		return cmd.Help()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagCorpus, "corpus", "", "path to the labeled corpus (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	versionCmd.Flags().BoolVar(&flagCheckUpdate, "check", false, "check for a newer release")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(feedsCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(statsCmd)
}

var (
	flagCheckUpdate bool
	checkUpdate     = update.Check
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "scoopy %s (commit: %s, built: %s)\n", version, commit, date)
		if !flagCheckUpdate {
			return
		}
		if res := checkUpdate(cmd.Context(), version); res != nil {
			fmt.Fprintf(out, "A newer release is available: %s\n", res.LatestVersion)
			if res.URL != "" {
				fmt.Fprintln(out, res.URL)
			}
		} else {
			fmt.Fprintln(out, "You are up to date.")
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.DefaultConfigPath()
}

func corpusPath(cfg *config.Config) string {
	if flagCorpus != "" {
		return flagCorpus
	}
	return cfg.CorpusPath()
}
