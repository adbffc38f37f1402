package forest

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"
)

func TestFitTree_StepFunction(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {10}, {11}, {12}}
	y := []float64{5, 5, 5, 20, 20, 20}
	idx := []int{0, 1, 2, 3, 4, 5}

	tree := FitTree(x, y, idx, TreeParams{}, rand.New(rand.NewSource(1)))

	if got := tree.Predict([]float64{2.5}); got != 5 {
		t.Errorf("Expected 5 on the low side, got: %v", got)
	}
	if got := tree.Predict([]float64{11.5}); got != 20 {
		t.Errorf("Expected 20 on the high side, got: %v", got)
	}
	if root := tree.Nodes[0]; root.Feature != 0 || root.Threshold != 6.5 {
		t.Errorf("Expected root split at 6.5 on feature 0, got: %+v", root)
	}
}

func TestFitTree_SplitsAdjacentFloats(t *testing.T) {
	lo, hi := 1.0, math.Nextafter(1.0, 2)
	x := [][]float64{{lo}, {lo}, {hi}, {hi}}
	y := []float64{3, 3, 9, 9}

	tree := FitTree(x, y, []int{0, 1, 2, 3}, TreeParams{}, rand.New(rand.NewSource(1)))

	if len(tree.Nodes) != 3 {
		t.Fatalf("Expected a root and two leaves, got %d nodes", len(tree.Nodes))
	}
	if root := tree.Nodes[0]; root.Threshold != lo {
		t.Errorf("Expected threshold %v, got %v", lo, root.Threshold)
	}
	if got := tree.Predict([]float64{lo}); got != 3 {
		t.Errorf("Expected 3 for the lower value, got: %v", got)
	}
	if got := tree.Predict([]float64{hi}); got != 9 {
		t.Errorf("Expected 9 for the upper value, got: %v", got)
	}
}

func TestFitTree_PicksInformativeFeature(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var x [][]float64
	var y []float64
	for i := 0; i < 200; i++ {
		noise := rng.Float64()
		signal := float64(i % 2)
		x = append(x, []float64{noise, signal})
		y = append(y, signal*10)
	}
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}

	tree := FitTree(x, y, idx, TreeParams{MaxDepth: 1}, rng)
	if tree.Nodes[0].Feature != 1 {
		t.Errorf("Expected split on the signal feature, got feature %d", tree.Nodes[0].Feature)
	}
}

func TestForest_FitsLinearTrend(t *testing.T) {
	var x [][]float64
	var y []float64
	for i := 0; i < 300; i++ {
		v := float64(i) / 3
		x = append(x, []float64{v})
		y = append(y, 2*v+1)
	}

	f, err := Fit(x, y, Params{Trees: 20, Seed: 42})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	pred := f.PredictAll(x)
	if mae := MAE(y, pred); mae > 2 {
		t.Errorf("Expected MAE below 2, got: %.3f", mae)
	}
	if r2 := R2(y, pred); r2 < 0.99 {
		t.Errorf("Expected R2 above 0.99, got: %.4f", r2)
	}
}

func TestForest_DeterministicAndSerialisable(t *testing.T) {
	x := [][]float64{{1, 0}, {2, 1}, {3, 0}, {4, 1}, {5, 0}, {6, 1}}
	y := []float64{1, 3, 2, 5, 4, 8}

	a, _ := Fit(x, y, Params{Trees: 5, Seed: 3})
	b, _ := Fit(x, y, Params{Trees: 5, Seed: 3})

	q := []float64{3.5, 1}
	if a.Predict(q) != b.Predict(q) {
		t.Error("Expected identical forests for identical seeds")
	}

	raw, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var restored Forest
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if math.Abs(restored.Predict(q)-a.Predict(q)) > 1e-12 {
		t.Errorf("Expected restored forest to predict the same, got %v vs %v", restored.Predict(q), a.Predict(q))
	}
}

func TestFit_EmptyDataset(t *testing.T) {
	if _, err := Fit(nil, nil, DefaultParams()); err != ErrEmptyDataset {
		t.Fatalf("Expected ErrEmptyDataset, got: %v", err)
	}
}

func TestR2_ConstantTruth(t *testing.T) {
	if got := R2([]float64{3, 3}, []float64{3, 3}); got != 1 {
		t.Errorf("Expected perfect R2, got: %v", got)
	}
	if got := R2([]float64{3, 3}, []float64{2, 4}); got != 0 {
		t.Errorf("Expected R2 of 0 for constant truth, got: %v", got)
	}
}
