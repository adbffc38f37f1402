package forest

import (
	"math/rand"
	"sort"
)

const leaf = -1

// Node is one entry of a flattened regression tree. Leaves have Feature == -1.
type Node struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t"`
	Left      int     `json:"l,omitempty"`
	Right     int     `json:"r,omitempty"`
	Value     float64 `json:"v"`
}

// Tree is a CART regression tree stored as a flat node slice rooted at 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// TreeParams limit tree growth.
type TreeParams struct {
	// MaxDepth of 0 grows the tree until leaves are pure.
	MaxDepth        int
	MinSamplesSplit int
	// MaxFeatures of 0 considers every feature at every split.
	MaxFeatures int
}

// Predict walks x down the tree.
func (t *Tree) Predict(x []float64) float64 {
	if len(t.Nodes) == 0 {
		return 0
	}
	i := 0
	for {
		n := t.Nodes[i]
		if n.Feature == leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

type builder struct {
	x      [][]float64
	y      []float64
	params TreeParams
	rng    *rand.Rand
	nodes  []Node
}

// FitTree grows a regression tree on the rows of x selected by idx.
// Splits minimise the summed squared error of the two children.
func FitTree(x [][]float64, y []float64, idx []int, params TreeParams, rng *rand.Rand) *Tree {
	if params.MinSamplesSplit < 2 {
		params.MinSamplesSplit = 2
	}
	b := &builder{x: x, y: y, params: params, rng: rng}
	rows := append([]int(nil), idx...)
	b.grow(rows, 0)
	return &Tree{Nodes: b.nodes}
}

func (b *builder) grow(rows []int, depth int) int {
	id := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: leaf, Value: b.mean(rows)})

	if len(rows) < b.params.MinSamplesSplit || b.pure(rows) {
		return id
	}
	if b.params.MaxDepth > 0 && depth >= b.params.MaxDepth {
		return id
	}

	feature, threshold, ok := b.bestSplit(rows)
	if !ok {
		return id
	}

	var left, right []int
	for _, r := range rows {
		if b.x[r][feature] <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[id] = Node{Feature: feature, Threshold: threshold, Left: l, Right: r, Value: b.nodes[id].Value}
	return id
}

func (b *builder) bestSplit(rows []int) (int, float64, bool) {
	nFeatures := len(b.x[rows[0]])
	features := b.rng.Perm(nFeatures)
	if m := b.params.MaxFeatures; m > 0 && m < nFeatures {
		features = features[:m]
	}

	var totalSum, totalSq float64
	for _, r := range rows {
		totalSum += b.y[r]
		totalSq += b.y[r] * b.y[r]
	}
	n := float64(len(rows))
	bestScore := totalSq - totalSum*totalSum/n
	bestFeature, bestThreshold, found := 0, 0.0, false

	sorted := make([]int, len(rows))
	for _, f := range features {
		copy(sorted, rows)
		sort.Slice(sorted, func(i, j int) bool { return b.x[sorted[i]][f] < b.x[sorted[j]][f] })

		var leftSum, leftSq float64
		for i := 0; i < len(sorted)-1; i++ {
			v := b.y[sorted[i]]
			leftSum += v
			leftSq += v * v

			cur, next := b.x[sorted[i]][f], b.x[sorted[i+1]][f]
			if cur == next {
				continue
			}
			nl := float64(i + 1)
			nr := n - nl
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			score := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
			if score < bestScore-1e-12 {
				bestScore = score
				bestFeature = f
				bestThreshold = (cur + next) / 2
				// Adjacent floats can round the midpoint up to next.
				if bestThreshold == next {
					bestThreshold = cur
				}
				found = true
			}
		}
	}
	return bestFeature, bestThreshold, found
}

func (b *builder) mean(rows []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	var s float64
	for _, r := range rows {
		s += b.y[r]
	}
	return s / float64(len(rows))
}

func (b *builder) pure(rows []int) bool {
	first := b.y[rows[0]]
	for _, r := range rows[1:] {
		if b.y[r] != first {
			return false
		}
	}
	return true
}
