/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"errors"
	"reflect"
	"testing"
)

func TestClusterRespectsSizeBounds(t *testing.T) {
	cases := []struct {
		name     string
		n        int
		k        int
		minSize  int
		maxSize  int
	}{
		{name: "even split", n: 12, k: 3, minSize: 4, maxSize: 4},
		{name: "loose bounds", n: 10, k: 3, minSize: 2, maxSize: 5},
		{name: "no bounds", n: 7, k: 2, minSize: 0, maxSize: 0},
		{name: "single cluster", n: 5, k: 1, minSize: 0, maxSize: 0},
	}

	c := NewClusterer()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := make([]float64, tc.n)
			for i := range values {
				values[i] = float64(2400 - 50*i)
			}

			labels, err := c.Cluster(values, tc.k, tc.minSize, tc.maxSize)
			if err != nil {
				t.Fatalf("Cluster returned error: %v", err)
			}
			if len(labels) != tc.n {
				t.Fatalf("expected %d labels, got %d", tc.n, len(labels))
			}

			sizes := make(map[int]int)
			for _, l := range labels {
				if l < 0 || l >= tc.k {
					t.Fatalf("label %d out of range [0,%d)", l, tc.k)
				}
				sizes[l]++
			}
			if len(sizes) != tc.k {
				t.Fatalf("expected %d non-empty clusters, got %d", tc.k, len(sizes))
			}
			for l, sz := range sizes {
				if tc.minSize > 0 && sz < tc.minSize {
					t.Errorf("cluster %d has %d members, below min %d", l, sz, tc.minSize)
				}
				if tc.maxSize > 0 && sz > tc.maxSize {
					t.Errorf("cluster %d has %d members, above max %d", l, sz, tc.maxSize)
				}
			}
		})
	}
}

func TestClusterContiguousAndDeterministic(t *testing.T) {
	values := []float64{2400, 2310, 2305, 1900, 1880, 1500, 1480, 1475}
	c := NewClusterer()

	first, err := c.Cluster(values, 3, 2, 3)
	if err != nil {
		t.Fatalf("Cluster returned error: %v", err)
	}

	// labels along sorted input must form contiguous runs
	for i := 1; i < len(first); i++ {
		if first[i] != first[i-1] && first[i] != first[i-1]+1 {
			t.Errorf("labels not contiguous at %d: %v", i, first)
		}
	}

	second, err := c.Cluster(values, 3, 2, 3)
	if err != nil {
		t.Fatalf("Cluster returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated clustering diverged: %v vs %v", first, second)
	}
}

func TestClusterSplitsAtLargestGap(t *testing.T) {
	// two tight rating clusters separated by a wide gap
	values := []float64{2000, 1990, 1210, 1200}

	labels, err := NewClusterer().Cluster(values, 2, 0, 0)
	if err != nil {
		t.Fatalf("Cluster returned error: %v", err)
	}
	want := []int{0, 0, 1, 1}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("expected split at the gap: got %v want %v", labels, want)
	}
}

func TestClusterUnsatisfiable(t *testing.T) {
	cases := []struct {
		name    string
		n       int
		k       int
		minSize int
		maxSize int
	}{
		{name: "min too high", n: 5, k: 2, minSize: 3, maxSize: 4},
		{name: "max too low", n: 10, k: 2, minSize: 1, maxSize: 4},
		{name: "more clusters than values", n: 2, k: 3, minSize: 0, maxSize: 0},
		{name: "min above max", n: 8, k: 2, minSize: 4, maxSize: 3},
	}

	c := NewClusterer()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := make([]float64, tc.n)
			for i := range values {
				values[i] = float64(1500 - i)
			}
			_, err := c.Cluster(values, tc.k, tc.minSize, tc.maxSize)
			if !errors.Is(err, ErrConstraintUnsatisfiable) {
				t.Errorf("expected ErrConstraintUnsatisfiable, got %v", err)
			}
		})
	}
}
