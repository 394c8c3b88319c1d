/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"errors"
	"fmt"
	"math"
)

// ErrConstraintUnsatisfiable indicates the requested group count and size
// bounds cannot be met by the given roster size.
var ErrConstraintUnsatisfiable = errors.New("group size constraints cannot be satisfied by this roster")

// Clusterer partitions a one-dimensional list of values into k clusters with
// per-cluster sizes in [minSize, maxSize], returning one cluster label per
// input value. minSize<=0 means no lower bound; maxSize<=0 means no upper
// bound. Implementations must be deterministic: identical inputs always
// yield identical labels.
type Clusterer interface {
	Cluster(values []float64, k, minSize, maxSize int) ([]int, error)
}

// contiguousClusterer is the default Clusterer. It requires its input in
// monotonic order and partitions it into k contiguous segments minimizing
// total within-segment squared deviation, subject to the size bounds. For
// sorted one-dimensional data the optimal size-constrained k-means clusters
// are always contiguous runs, so an exact segment-boundary search meets the
// balanced k-means objective without any random seeding.
type contiguousClusterer struct{}

// NewClusterer returns the default deterministic constrained clusterer.
func NewClusterer() Clusterer {
	return contiguousClusterer{}
}

func (contiguousClusterer) Cluster(values []float64, k, minSize, maxSize int) ([]int, error) {
	n := len(values)
	if k < 1 {
		return nil, fmt.Errorf("cluster: need at least 1 cluster, got %d", k)
	}
	if minSize < 1 {
		minSize = 1
	}
	if maxSize < 1 || maxSize > n {
		maxSize = n
	}
	if n < k*minSize || n > k*maxSize || minSize > maxSize {
		return nil, fmt.Errorf("cluster: %d values into %d clusters of size [%d,%d]: %w",
			n, k, minSize, maxSize, ErrConstraintUnsatisfiable)
	}

	// Prefix sums for O(1) segment cost: sum of squared deviations from the
	// segment mean over values[i:j].
	sum := make([]float64, n+1)
	sumSq := make([]float64, n+1)
	for i, v := range values {
		sum[i+1] = sum[i] + v
		sumSq[i+1] = sumSq[i] + v*v
	}
	cost := func(i, j int) float64 {
		s := sum[j] - sum[i]
		return (sumSq[j] - sumSq[i]) - s*s/float64(j-i)
	}

	// dp[c][j]: minimal cost of splitting the first j values into c segments.
	// choice[c][j] records the start of the final segment; ties are broken
	// toward shorter final segments so the result is fully deterministic.
	dp := make([][]float64, k+1)
	choice := make([][]int, k+1)
	for c := 0; c <= k; c++ {
		dp[c] = make([]float64, n+1)
		choice[c] = make([]int, n+1)
		for j := 0; j <= n; j++ {
			dp[c][j] = math.Inf(1)
			choice[c][j] = -1
		}
	}
	dp[0][0] = 0
	for c := 1; c <= k; c++ {
		for j := c * minSize; j <= n; j++ {
			for l := minSize; l <= maxSize && l <= j; l++ {
				prev := dp[c-1][j-l]
				if math.IsInf(prev, 1) {
					continue
				}
				if total := prev + cost(j-l, j); total < dp[c][j] {
					dp[c][j] = total
					choice[c][j] = j - l
				}
			}
		}
	}
	if choice[k][n] < 0 {
		return nil, fmt.Errorf("cluster: %d values into %d clusters of size [%d,%d]: %w",
			n, k, minSize, maxSize, ErrConstraintUnsatisfiable)
	}

	labels := make([]int, n)
	end := n
	for c := k; c >= 1; c-- {
		start := choice[c][end]
		for i := start; i < end; i++ {
			labels[i] = c - 1
		}
		end = start
	}

	return labels, nil
}
