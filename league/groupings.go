/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"fmt"
)

// MakeGroups partitions a roster into numGroups skill-bracketed groups of
// near-equal size using the default clusterer. minPerGroup and maxPerGroup
// bound each group's size; pass 0 for either to leave it unbounded.
func MakeGroups(players []Player, numGroups, minPerGroup, maxPerGroup int) ([]Group, error) {
	return MakeGroupsWith(defaultClusterer, players, numGroups, minPerGroup, maxPerGroup)
}

var defaultClusterer = NewClusterer()

// MakeGroupsWith is MakeGroups with a caller-supplied clustering
// implementation.
//
// Players are stable-sorted by rating descending, their ratings clustered
// into numGroups size-bounded clusters, and groups assembled by walking the
// sorted roster: each time the cluster label changes, the current group is
// closed and the next one opened. Groups are numbered 1..numGroups in
// first-appearance order along that walk regardless of the clusterer's
// internal label values. The whole operation is deterministic for identical
// input.
func MakeGroupsWith(c Clusterer, players []Player, numGroups, minPerGroup, maxPerGroup int) ([]Group, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("make groups: empty roster")
	}
	if numGroups < 1 {
		return nil, fmt.Errorf("make groups: need at least 1 group, got %d", numGroups)
	}

	sorted := sortPlayersByRating(players)
	ratings := make([]float64, len(sorted))
	for i, p := range sorted {
		ratings[i] = float64(p.Rating)
	}

	labels, err := c.Cluster(ratings, numGroups, minPerGroup, maxPerGroup)
	if err != nil {
		return nil, fmt.Errorf("make groups: %w", err)
	}

	groups := make([]Group, 0, numGroups)
	group := Group{Number: 1}
	lastLabel := labels[0]
	for i, p := range sorted {
		if labels[i] != lastLabel {
			groups = append(groups, group)
			group = Group{Number: group.Number + 1}
			lastLabel = labels[i]
		}
		group.AddPlayer(p)
	}
	groups = append(groups, group)

	return groups, nil
}
