// Package learn trains the relevance classifier: term counts, TF-IDF
// weighting and a linear model fitted by stochastic gradient descent.
package learn

import (
	"errors"
	"fmt"

	"github.com/matheuskafuri/scoopy/internal/corpus"
)

var (
	ErrEmptyDataset = errors.New("dataset is empty")
	ErrEmptyHeldOut = errors.New("held-out set is empty")
)

// Params configure the classification stage.
type Params struct {
	Loss       string
	Alpha      float64
	Seed       int64
	Iterations int
}

// DefaultParams is a hinge-loss linear SVM with light regularization.
func DefaultParams() Params {
	return Params{Loss: Hinge, Alpha: 1e-3, Seed: 42, Iterations: 5}
}

func (p Params) Validate() error {
	if _, err := lossByName(p.Loss); err != nil {
		return err
	}
	if p.Alpha <= 0 {
		return fmt.Errorf("alpha must be positive, got %g", p.Alpha)
	}
	if p.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", p.Iterations)
	}
	return nil
}

// Pipeline is a configured, untrained classifier.
type Pipeline struct {
	params Params
}

func Build(p Params) (*Pipeline, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid classifier params: %w", err)
	}
	return &Pipeline{params: p}, nil
}

// Train fits vocabulary, IDF weights and the linear model on ds, in that
// order. The pipeline itself is left untouched and can train again.
func (p *Pipeline) Train(ds corpus.Dataset) (*Model, error) {
	if len(ds) == 0 {
		return nil, ErrEmptyDataset
	}

	texts := ds.Texts()
	m := &Model{params: p.params}
	m.vec.fit(texts)

	counts := make([]sparse, len(texts))
	for i, t := range texts {
		counts[i] = m.vec.transform(t)
	}
	m.weight.fit(counts, len(m.vec.vocab))

	rows := make([]sparse, len(counts))
	ys := make([]float64, len(ds))
	for i, c := range counts {
		rows[i] = m.weight.transform(c)
		ys[i] = target(ds[i].Label)
	}

	clf, err := fitSGD(rows, ys, len(m.vec.vocab), p.params)
	if err != nil {
		return nil, err
	}
	m.clf = clf
	return m, nil
}

func target(l corpus.Label) float64 {
	if l == corpus.Relevant {
		return 1
	}
	return -1
}

// Model is a trained pipeline. It is read-only and safe for concurrent
// prediction.
type Model struct {
	params Params
	vec    countVectorizer
	weight tfidf
	clf    *linearSGD
}

func (m *Model) Params() Params { return m.params }

// Vocabulary is the number of distinct terms seen in training.
func (m *Model) Vocabulary() int { return len(m.vec.vocab) }

// Scores returns the signed distance of each text to the decision boundary.
func (m *Model) Scores(texts []string) []float64 {
	out := make([]float64, len(texts))
	for i, t := range texts {
		out[i] = m.clf.decision(m.weight.transform(m.vec.transform(t)))
	}
	return out
}

// Predict labels texts; a positive score means relevant.
func (m *Model) Predict(texts []string) []corpus.Label {
	scores := m.Scores(texts)
	out := make([]corpus.Label, len(scores))
	for i, s := range scores {
		if s > 0 {
			out[i] = corpus.Relevant
		} else {
			out[i] = corpus.Irrelevant
		}
	}
	return out
}
