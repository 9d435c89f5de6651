package learn

import (
	"fmt"
	"math"
	"math/rand"
)

// Loss names accepted by Params.Loss.
const (
	Hinge         = "hinge"
	SquaredHinge  = "squared_hinge"
	LogLoss       = "log_loss"
	ModifiedHuber = "modified_huber"
	Perceptron    = "perceptron"
)

// lossFunc returns dL/dp for prediction p and target y in {-1, +1}.
type lossFunc func(p, y float64) float64

var losses = map[string]lossFunc{
	Hinge: func(p, y float64) float64 {
		if p*y <= 1 {
			return -y
		}
		return 0
	},
	SquaredHinge: func(p, y float64) float64 {
		if z := 1 - p*y; z > 0 {
			return -2 * y * z
		}
		return 0
	},
	LogLoss: func(p, y float64) float64 {
		z := p * y
		switch {
		case z > 18:
			return -y * math.Exp(-z)
		case z < -18:
			return -y
		}
		return -y / (math.Exp(z) + 1)
	},
	ModifiedHuber: func(p, y float64) float64 {
		z := p * y
		switch {
		case z >= 1:
			return 0
		case z >= -1:
			return -2 * (1 - z) * y
		}
		return -4 * y
	},
	Perceptron: func(p, y float64) float64 {
		if p*y <= 0 {
			return -y
		}
		return 0
	},
}

func lossByName(name string) (lossFunc, error) {
	f, ok := losses[name]
	if !ok {
		return nil, fmt.Errorf("unknown loss %q (valid: hinge, squared_hinge, log_loss, modified_huber, perceptron)", name)
	}
	return f, nil
}

// linearSGD is a linear classifier fitted by plain SGD with an L2 penalty
// and the "optimal" step size 1/(alpha*(t0+t)).
type linearSGD struct {
	weights   []float64
	intercept float64
}

func fitSGD(rows []sparse, ys []float64, features int, p Params) (*linearSGD, error) {
	dloss, err := lossByName(p.Loss)
	if err != nil {
		return nil, err
	}

	w := make([]float64, features)
	wscale := 1.0
	var b float64

	// Initial step from Bottou's heuristic for a typical weight size.
	typw := math.Sqrt(1 / math.Sqrt(p.Alpha))
	eta0 := typw / math.Max(1, math.Abs(dloss(-typw, 1)))
	t0 := 1 / (eta0 * p.Alpha)

	rng := rand.New(rand.NewSource(p.Seed))
	t := 1.0
	for epoch := 0; epoch < p.Iterations; epoch++ {
		for _, i := range rng.Perm(len(rows)) {
			x, y := rows[i], ys[i]
			eta := 1 / (p.Alpha * (t0 + t - 1))

			pred := wscale*x.dot(w) + b
			if update := -eta * dloss(pred, y); update != 0 {
				for k, j := range x.idx {
					w[j] += update * x.val[k] / wscale
				}
				b += update
			}

			decay := 1 - eta*p.Alpha
			if decay <= 0 {
				clear(w)
				wscale = 1
			} else {
				wscale *= decay
			}
			if wscale < 1e-9 {
				for j := range w {
					w[j] *= wscale
				}
				wscale = 1
			}
			t++
		}
	}
	for j := range w {
		w[j] *= wscale
	}
	return &linearSGD{weights: w, intercept: b}, nil
}

func (m *linearSGD) decision(x sparse) float64 {
	return x.dot(m.weights) + m.intercept
}
