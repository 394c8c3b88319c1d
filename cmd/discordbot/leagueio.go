/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"

	"github.com/mikeb26/ttleague-tdbot/league"
	"github.com/mikeb26/ttleague-tdbot/store"
)

// loadGroups reassembles a session's persisted group assignments.
func loadGroups(st *store.Store, sessionID int64) ([]league.Group, error) {
	count, err := st.GroupCount(sessionID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("session %d has no groups yet", sessionID)
	}

	groups := make([]league.Group, 0, count)
	for num := 1; num <= count; num++ {
		players, err := st.GroupPlayers(sessionID, num)
		if err != nil {
			return nil, err
		}
		groups = append(groups, league.Group{Number: num, Players: players})
	}
	return groups, nil
}

// loadGroupResults reassembles each group's players and recorded matches.
func loadGroupResults(st *store.Store, sessionID int64) ([]league.GroupResult, error) {
	groups, err := loadGroups(st, sessionID)
	if err != nil {
		return nil, err
	}

	results := make([]league.GroupResult, 0, len(groups))
	for _, g := range groups {
		matches, err := st.MatchesByGroup(sessionID, g.Number)
		if err != nil {
			return nil, err
		}
		results = append(results, league.GroupResult{
			Number:  g.Number,
			Players: g.Players,
			Matches: matches,
		})
	}
	return results, nil
}
