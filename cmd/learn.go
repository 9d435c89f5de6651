package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/scoopy/internal/corpus"
	"github.com/matheuskafuri/scoopy/internal/learn"
)

var flagSeed int64

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the classifier on the labeled corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ds, err := loadCorpus(corpusPath(cfg))
		if err != nil {
			return err
		}

		p, err := learn.Build(cfg.Params())
		if err != nil {
			return err
		}
		model, err := p.Train(ds)
		if err != nil {
			return fmt.Errorf("training: %w", err)
		}

		correct := 0
		for i, label := range model.Predict(ds.Texts()) {
			if label == ds[i].Label {
				correct++
			}
		}

		out := cmd.OutOrStdout()
		params := model.Params()
		fmt.Fprintf(out, "Trained %s classifier (alpha %g, %d iterations, seed %d)\n",
			params.Loss, params.Alpha, params.Iterations, params.Seed)
		fmt.Fprintf(out, "Records: %d (%d relevant, %d not relevant)\n",
			len(ds), ds.Count(corpus.Relevant), ds.Count(corpus.Irrelevant))
		fmt.Fprintf(out, "Vocabulary: %d terms\n", model.Vocabulary())
		fmt.Fprintf(out, "Training accuracy: %.1f%%\n", 100*float64(correct)/float64(len(ds)))
		return nil
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Train on half of the corpus and score the other half",
	Long: `Shuffle the corpus with --seed, train on the first half and report how the
held-out half is classified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ds, err := loadCorpus(corpusPath(cfg))
		if err != nil {
			return err
		}

		seed := cfg.EvaluationSeed
		if cmd.Flags().Changed("seed") {
			seed = flagSeed
		}
		report, err := learn.Evaluate(ds, cfg.Params(), seed)
		if err != nil {
			return fmt.Errorf("evaluating: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.String())
		return nil
	},
}

func init() {
	evaluateCmd.Flags().Int64Var(&flagSeed, "seed", 0, "shuffle seed (default from config)")
}

func loadCorpus(path string) (corpus.Dataset, error) {
	ds, err := corpus.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}
	if len(ds) == 0 {
		return nil, fmt.Errorf("no labeled entries in %s; run scoopy review first", path)
	}
	return ds, nil
}
