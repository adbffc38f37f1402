package scorer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"seo-ai/pkg/forest"
)

// ErrNoModel is returned by prediction paths when no model has been loaded.
var ErrNoModel = errors.New("prediction model not loaded")

// TrainOptions sizes the synthetic dataset and the forest.
type TrainOptions struct {
	Samples int
	Trees   int
	Seed    int64
}

func DefaultTrainOptions() TrainOptions {
	return TrainOptions{Samples: 800, Trees: 100, Seed: 42}
}

// Metrics are measured on the held-out 20% split.
type Metrics struct {
	MAE       float64 `json:"mae"`
	R2        float64 `json:"r2"`
	TrainRows int     `json:"train_rows"`
	TestRows  int     `json:"test_rows"`
}

// Predictor is a trained forest together with its feature column order.
type Predictor struct {
	FeatureKeys []string       `json:"feature_keys"`
	Forest      *forest.Forest `json:"forest"`
	Metrics     Metrics        `json:"metrics"`
	TrainedAt   time.Time      `json:"trained_at"`
}

// Prediction is the response for a scored page.
type Prediction struct {
	Score    float64       `json:"score"`
	Features FeatureVector `json:"features"`
}

// Train fits a forest on a synthetic dataset.
func Train(opts TrainOptions) (*Predictor, error) {
	if opts.Samples < 5 {
		return nil, fmt.Errorf("need at least 5 samples, got %d", opts.Samples)
	}
	samples := Synthesize(opts.Samples, opts.Seed)
	keys := append([]string(nil), FeatureNames...)

	order := rand.New(rand.NewSource(opts.Seed)).Perm(len(samples))
	testRows := len(samples) / 5
	test, train := order[:testRows], order[testRows:]

	x, y := matrix(samples, train, keys)
	f, err := forest.Fit(x, y, forest.Params{Trees: opts.Trees, Seed: opts.Seed})
	if err != nil {
		return nil, err
	}

	tx, ty := matrix(samples, test, keys)
	pred := f.PredictAll(tx)

	return &Predictor{
		FeatureKeys: keys,
		Forest:      f,
		Metrics: Metrics{
			MAE:       forest.MAE(ty, pred),
			R2:        forest.R2(ty, pred),
			TrainRows: len(train),
			TestRows:  len(test),
		},
		TrainedAt: time.Now().UTC(),
	}, nil
}

func matrix(samples []Sample, idx []int, keys []string) ([][]float64, []float64) {
	x := make([][]float64, 0, len(idx))
	y := make([]float64, 0, len(idx))
	for _, i := range idx {
		x = append(x, samples[i].Features.Row(keys))
		y = append(y, samples[i].Label)
	}
	return x, y
}

// Predict scores a feature vector.
func (p *Predictor) Predict(v FeatureVector) float64 {
	return p.Forest.Predict(v.Row(p.FeatureKeys))
}

// PredictPage extracts features for a page and scores it. The page keywords
// drive the density features.
func (p *Predictor) PredictPage(signals PageSignals, page PageContent) Prediction {
	v := ExtractFeatures(MergeSignals(signals, page), page, page.Keywords)
	return Prediction{Score: round2(clamp(p.Predict(v))), Features: v}
}

// Save writes the model as JSON, creating parent directories as needed.
func (p *Predictor) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return os.Rename(tmp, path)
}

// LoadPredictor reads a model written by Save.
func LoadPredictor(path string) (*Predictor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Predictor
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if p.Forest == nil || len(p.FeatureKeys) == 0 {
		return nil, fmt.Errorf("model file %s is incomplete", path)
	}
	return &p, nil
}
