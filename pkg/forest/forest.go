// Package forest implements a bootstrap-aggregated forest of CART
// regression trees.
package forest

import (
	"errors"
	"math"
	"math/rand"
)

// ErrEmptyDataset is returned by Fit for no rows or mismatched lengths.
var ErrEmptyDataset = errors.New("forest: empty dataset")

// Params configure Fit.
type Params struct {
	Trees int
	Seed  int64
	Tree  TreeParams
}

func DefaultParams() Params {
	return Params{Trees: 100, Seed: 42}
}

// Forest averages the predictions of its trees.
type Forest struct {
	Trees []*Tree `json:"trees"`
}

// Fit trains a forest. Each tree sees a bootstrap sample of the rows.
func Fit(x [][]float64, y []float64, params Params) (*Forest, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, ErrEmptyDataset
	}
	if params.Trees <= 0 {
		params.Trees = 1
	}

	rng := rand.New(rand.NewSource(params.Seed))
	f := &Forest{Trees: make([]*Tree, 0, params.Trees)}
	for i := 0; i < params.Trees; i++ {
		sample := make([]int, len(x))
		for j := range sample {
			sample[j] = rng.Intn(len(x))
		}
		f.Trees = append(f.Trees, FitTree(x, y, sample, params.Tree, rng))
	}
	return f, nil
}

// Predict averages the tree predictions for x.
func (f *Forest) Predict(x []float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	var s float64
	for _, t := range f.Trees {
		s += t.Predict(x)
	}
	return s / float64(len(f.Trees))
}

func (f *Forest) PredictAll(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = f.Predict(row)
	}
	return out
}

// MAE is the mean absolute error between truth and predictions.
func MAE(truth, pred []float64) float64 {
	if len(truth) == 0 {
		return 0
	}
	var s float64
	for i := range truth {
		s += math.Abs(truth[i] - pred[i])
	}
	return s / float64(len(truth))
}

// R2 is the coefficient of determination. A constant truth vector scores 0
// unless the predictions match it exactly.
func R2(truth, pred []float64) float64 {
	if len(truth) == 0 {
		return 0
	}
	var mean float64
	for _, v := range truth {
		mean += v
	}
	mean /= float64(len(truth))

	var ssRes, ssTot float64
	for i := range truth {
		ssRes += (truth[i] - pred[i]) * (truth[i] - pred[i])
		ssTot += (truth[i] - mean) * (truth[i] - mean)
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}
