package learn

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Tokens are runs of at least two word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

func tokenize(s string) []string {
	return tokenPattern.FindAllString(strings.ToLower(s), -1)
}

// sparse is a feature vector keyed by vocabulary index.
type sparse struct {
	idx []int
	val []float64
}

func (v sparse) dot(w []float64) float64 {
	var sum float64
	for k, i := range v.idx {
		sum += w[i] * v.val[k]
	}
	return sum
}

// countVectorizer maps texts to term counts over a fixed vocabulary.
type countVectorizer struct {
	vocab map[string]int
}

// fit builds the vocabulary from texts. Terms are indexed in sorted order
// so the same corpus always yields the same feature layout.
func (c *countVectorizer) fit(texts []string) {
	seen := make(map[string]struct{})
	for _, t := range texts {
		for _, tok := range tokenize(t) {
			seen[tok] = struct{}{}
		}
	}
	terms := make([]string, 0, len(seen))
	for t := range seen {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	c.vocab = make(map[string]int, len(terms))
	for i, t := range terms {
		c.vocab[t] = i
	}
}

// transform counts known terms of text. Unknown terms are dropped.
func (c *countVectorizer) transform(text string) sparse {
	counts := make(map[int]float64)
	for _, tok := range tokenize(text) {
		if i, ok := c.vocab[tok]; ok {
			counts[i]++
		}
	}
	v := sparse{idx: make([]int, 0, len(counts)), val: make([]float64, 0, len(counts))}
	for i := range counts {
		v.idx = append(v.idx, i)
	}
	sort.Ints(v.idx)
	for _, i := range v.idx {
		v.val = append(v.val, counts[i])
	}
	return v
}

// tfidf rescales counts by smoothed inverse document frequency and
// normalizes each row to unit length.
type tfidf struct {
	idf []float64
}

func (t *tfidf) fit(rows []sparse, features int) {
	df := make([]float64, features)
	for _, r := range rows {
		for _, i := range r.idx {
			df[i]++
		}
	}
	n := float64(len(rows))
	t.idf = make([]float64, features)
	for i := range df {
		t.idf[i] = math.Log((1+n)/(1+df[i])) + 1
	}
}

func (t *tfidf) transform(v sparse) sparse {
	out := sparse{idx: v.idx, val: make([]float64, len(v.val))}
	var norm float64
	for k, i := range v.idx {
		x := v.val[k] * t.idf[i]
		out.val[k] = x
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for k := range out.val {
			out.val[k] /= norm
		}
	}
	return out
}
