package learn

import (
	"fmt"
	"math/rand"

	"github.com/matheuskafuri/scoopy/internal/corpus"
)

// Split is a train/held-out partition of a dataset.
type Split struct {
	Train   corpus.Dataset
	HeldOut corpus.Dataset
}

// SplitDataset shuffles a copy of ds with seed and halves it. The element
// at the midpoint belongs to neither half.
func SplitDataset(ds corpus.Dataset, seed int64) Split {
	shuffled := make(corpus.Dataset, len(ds))
	copy(shuffled, ds)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	half := len(shuffled) / 2
	s := Split{Train: shuffled[:half], HeldOut: corpus.Dataset{}}
	if half+1 < len(shuffled) {
		s.HeldOut = shuffled[half+1:]
	}
	return s
}

// Outcome classifies one (predicted, actual) pair.
type Outcome int

const (
	Correct Outcome = iota
	TruePositive
	FalsePositive
	FalseNegative
)

// Classify buckets a prediction. Everything that is not a true positive
// or one of the two errors lands in Correct, true negatives included.
func Classify(predicted, actual corpus.Label) Outcome {
	switch {
	case predicted == corpus.Relevant && actual == corpus.Relevant:
		return TruePositive
	case predicted == corpus.Relevant && actual == corpus.Irrelevant:
		return FalsePositive
	case predicted == corpus.Irrelevant && actual == corpus.Relevant:
		return FalseNegative
	}
	return Correct
}

// Report scores a model on the held-out half.
type Report struct {
	Train         int
	HeldOut       int
	Correct       int // includes TruePositive
	TruePositive  int
	FalsePositive int
	FalseNegative int
	CorrectPct    float64
	FalsePosPct   float64
	FalseNegPct   float64
}

func (r Report) String() string {
	return fmt.Sprintf("correct %.1f%%  false positive %.1f%%  false negative %.1f%%  (train %d, held out %d)",
		r.CorrectPct, r.FalsePosPct, r.FalseNegPct, r.Train, r.HeldOut)
}

// Evaluate trains a fresh pipeline on the train half of ds and scores it on
// the held-out half.
func Evaluate(ds corpus.Dataset, params Params, seed int64) (Report, error) {
	pipe, err := Build(params)
	if err != nil {
		return Report{}, err
	}

	split := SplitDataset(ds, seed)
	model, err := pipe.Train(split.Train)
	if err != nil {
		return Report{}, fmt.Errorf("training on %d records: %w", len(split.Train), err)
	}
	if len(split.HeldOut) == 0 {
		return Report{}, ErrEmptyHeldOut
	}

	predicted := model.Predict(split.HeldOut.Texts())
	r := Report{Train: len(split.Train), HeldOut: len(split.HeldOut)}
	for i, rec := range split.HeldOut {
		switch Classify(predicted[i], rec.Label) {
		case FalsePositive:
			r.FalsePositive++
		case FalseNegative:
			r.FalseNegative++
		case TruePositive:
			r.TruePositive++
			r.Correct++
		default:
			r.Correct++
		}
	}

	total := float64(r.HeldOut)
	r.CorrectPct = 100 * float64(r.Correct) / total
	r.FalsePosPct = 100 * float64(r.FalsePositive) / total
	r.FalseNegPct = 100 * float64(r.FalseNegative) / total
	return r, nil
}
