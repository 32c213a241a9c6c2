package forest

import (
	"errors"
	"math"
	"math/rand"
	"sort"
)

type criterion int

const (
	squaredError criterion = iota
	gini
)

// TreeNode is one node of a flattened tree. Leaves have Feature == -1 and
// carry either the mean target (regression) or the class distribution
// (classification) in Value.
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

func (n *TreeNode) IsLeaf() bool {
	return n.Feature < 0
}

// DecisionTree is a fully grown CART tree stored in pre-order.
type DecisionTree struct {
	Nodes []TreeNode `json:"nodes"`
}

type treeBuilder struct {
	x           [][]float64
	y           []float64
	criterion   criterion
	nClasses    int
	maxFeatures int
	rng         *rand.Rand
	nodes       []TreeNode
}

func growTree(x [][]float64, y []float64, samples []int, crit criterion, nClasses, maxFeatures int, rng *rand.Rand) (*DecisionTree, error) {
	if len(samples) == 0 {
		return nil, errors.New("cannot grow tree without samples")
	}
	width := len(x[0])
	if maxFeatures <= 0 || maxFeatures > width {
		maxFeatures = width
	}
	b := &treeBuilder{
		x:           x,
		y:           y,
		criterion:   crit,
		nClasses:    nClasses,
		maxFeatures: maxFeatures,
		rng:         rng,
	}
	b.build(samples)
	return &DecisionTree{Nodes: b.nodes}, nil
}

func (b *treeBuilder) build(samples []int) int {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, TreeNode{Feature: -1, Left: -1, Right: -1, Value: b.leafValue(samples)})

	if len(samples) < 2 || b.isPure(samples) {
		return idx
	}

	feature, threshold, ok := b.bestSplit(samples)
	if !ok {
		return idx
	}

	left := make([]int, 0, len(samples))
	right := make([]int, 0, len(samples))
	for _, s := range samples {
		if b.x[s][feature] <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return idx
	}

	l := b.build(left)
	r := b.build(right)
	b.nodes[idx].Feature = feature
	b.nodes[idx].Threshold = threshold
	b.nodes[idx].Left = l
	b.nodes[idx].Right = r
	return idx
}

func (b *treeBuilder) leafValue(samples []int) []float64 {
	if b.criterion == squaredError {
		sum := 0.0
		for _, s := range samples {
			sum += b.y[s]
		}
		return []float64{sum / float64(len(samples))}
	}
	dist := make([]float64, b.nClasses)
	for _, s := range samples {
		dist[int(b.y[s])]++
	}
	for i := range dist {
		dist[i] /= float64(len(samples))
	}
	return dist
}

func (b *treeBuilder) isPure(samples []int) bool {
	first := b.y[samples[0]]
	for _, s := range samples[1:] {
		if b.y[s] != first {
			return false
		}
	}
	return true
}

// bestSplit visits features in random order and stops once maxFeatures
// non-constant features were evaluated. Thresholds are midpoints between
// consecutive distinct values.
func (b *treeBuilder) bestSplit(samples []int) (int, float64, bool) {
	width := len(b.x[0])
	features := b.rng.Perm(width)

	bestFeature := -1
	bestThreshold := 0.0
	bestScore := math.Inf(1)

	sorted := make([]int, len(samples))
	visited := 0
	for _, f := range features {
		if visited >= b.maxFeatures {
			break
		}
		copy(sorted, samples)
		sort.Slice(sorted, func(i, j int) bool { return b.x[sorted[i]][f] < b.x[sorted[j]][f] })
		if b.x[sorted[0]][f] == b.x[sorted[len(sorted)-1]][f] {
			continue
		}
		visited++

		score, threshold := b.scanFeature(sorted, f)
		if score < bestScore {
			bestScore = score
			bestFeature = f
			bestThreshold = threshold
		}
	}

	if bestFeature < 0 {
		return -1, 0, false
	}
	return bestFeature, bestThreshold, true
}

// scanFeature returns the lowest weighted child impurity over all split
// positions of samples sorted by feature f, and the matching threshold.
func (b *treeBuilder) scanFeature(sorted []int, f int) (float64, float64) {
	n := len(sorted)
	best := math.Inf(1)
	threshold := 0.0

	if b.criterion == squaredError {
		totalSum, totalSq := 0.0, 0.0
		for _, s := range sorted {
			totalSum += b.y[s]
			totalSq += b.y[s] * b.y[s]
		}
		leftSum, leftSq := 0.0, 0.0
		for i := 0; i < n-1; i++ {
			v := b.y[sorted[i]]
			leftSum += v
			leftSq += v * v
			a, c := b.x[sorted[i]][f], b.x[sorted[i+1]][f]
			if a == c {
				continue
			}
			nl, nr := float64(i+1), float64(n-i-1)
			rightSum, rightSq := totalSum-leftSum, totalSq-leftSq
			score := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
			if score < best {
				best = score
				threshold = midpoint(a, c)
			}
		}
		return best, threshold
	}

	total := make([]float64, b.nClasses)
	for _, s := range sorted {
		total[int(b.y[s])]++
	}
	left := make([]float64, b.nClasses)
	for i := 0; i < n-1; i++ {
		left[int(b.y[sorted[i]])]++
		a, c := b.x[sorted[i]][f], b.x[sorted[i+1]][f]
		if a == c {
			continue
		}
		nl, nr := float64(i+1), float64(n-i-1)
		sqL, sqR := 0.0, 0.0
		for k := range left {
			r := total[k] - left[k]
			sqL += left[k] * left[k]
			sqR += r * r
		}
		// n_l*gini_l + n_r*gini_r
		score := (nl - sqL/nl) + (nr - sqR/nr)
		if score < best {
			best = score
			threshold = midpoint(a, c)
		}
	}
	return best, threshold
}

func midpoint(a, c float64) float64 {
	m := a + (c-a)/2
	if m >= c {
		return a
	}
	return m
}

func (t *DecisionTree) leaf(x []float64) (*TreeNode, error) {
	if len(t.Nodes) == 0 {
		return nil, ErrNotFitted
	}
	idx := 0
	for {
		node := &t.Nodes[idx]
		if node.IsLeaf() {
			return node, nil
		}
		if node.Feature >= len(x) {
			return nil, errors.New("feature index out of range")
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
		if idx < 0 || idx >= len(t.Nodes) {
			return nil, errors.New("invalid tree state")
		}
	}
}

// Depth returns the number of edges on the longest root-to-leaf path.
func (t *DecisionTree) Depth() int {
	if len(t.Nodes) == 0 {
		return 0
	}
	var walk func(int) int
	walk = func(i int) int {
		n := t.Nodes[i]
		if n.IsLeaf() {
			return 0
		}
		return 1 + max(walk(n.Left), walk(n.Right))
	}
	return walk(0)
}
