/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mikeb26/ttleague-tdbot/league"
)

var ErrNotFound = errors.New("store: no such row")

// canonicalPair orders an unordered player pair for storage: the lower id is
// always player 1 in the database row. swapped reports whether the caller's
// orientation was reversed.
func canonicalPair(a, b int64) (p1, p2 int64, swapped bool) {
	if a > b {
		return b, a, true
	}
	return a, b, false
}

// AddMatch records one scheduled match, initially unplayed. A pair already
// scheduled in the session keeps its existing row and any recorded result, so
// rescheduling after group corrections only fills in the missing matches.
func (s *Store) AddMatch(sessionID int64, groupNumber int, playerA, playerB int64) error {
	p1, p2, _ := canonicalPair(playerA, playerB)
	_, err := s.db.Exec(`
        insert or ignore into match (session_id, group_number, player_1_id, player_2_id)
        values (?, ?, ?, ?)`,
		sessionID, groupNumber, p1, p2)
	if err != nil {
		return fmt.Errorf("adding match %d vs %d in session %d: %w",
			playerA, playerB, sessionID, err)
	}
	return nil
}

// UpdateMatch records a match result. The pair may be given in either
// orientation; the win counts are swapped to match the stored row.
func (s *Store) UpdateMatch(sessionID, playerA, playerB int64, winsA, winsB int) error {
	p1, p2, swapped := canonicalPair(playerA, playerB)
	w1, w2 := winsA, winsB
	if swapped {
		w1, w2 = winsB, winsA
	}
	res, err := s.db.Exec(`
        update match set player_1_wins = ?, player_2_wins = ?
        where session_id = ? and player_1_id = ? and player_2_id = ?`,
		w1, w2, sessionID, p1, p2)
	if err != nil {
		return fmt.Errorf("recording result %d vs %d: %w", playerA, playerB, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("recording result %d vs %d in session %d: %w",
			playerA, playerB, sessionID, ErrNotFound)
	}
	return nil
}

// GetMatch returns one match with Player1 oriented to playerA.
func (s *Store) GetMatch(sessionID, playerA, playerB int64) (league.Match, error) {
	p1, p2, swapped := canonicalPair(playerA, playerB)
	var m league.Match
	err := s.db.QueryRow(`
        select m.group_number, m.player_1_wins, m.player_2_wins,
               pa.player_id, pa.name, pa.rating,
               pb.player_id, pb.name, pb.rating
        from match m
        join player pa on pa.player_id = m.player_1_id
        join player pb on pb.player_id = m.player_2_id
        where m.session_id = ? and m.player_1_id = ? and m.player_2_id = ?`,
		sessionID, p1, p2).Scan(
		&m.GroupNumber, &m.P1Wins, &m.P2Wins,
		&m.Player1.ID, &m.Player1.Name, &m.Player1.Rating,
		&m.Player2.ID, &m.Player2.Name, &m.Player2.Rating)
	if errors.Is(err, sql.ErrNoRows) {
		return league.Match{}, fmt.Errorf("match %d vs %d in session %d: %w",
			playerA, playerB, sessionID, ErrNotFound)
	}
	if err != nil {
		return league.Match{}, fmt.Errorf("fetching match %d vs %d: %w",
			playerA, playerB, err)
	}
	if swapped {
		m.Player1, m.Player2 = m.Player2, m.Player1
		m.P1Wins, m.P2Wins = m.P2Wins, m.P1Wins
	}
	return m, nil
}

func (s *Store) scanMatches(rows *sql.Rows) ([]league.Match, error) {
	defer rows.Close()

	var matches []league.Match
	for rows.Next() {
		var m league.Match
		err := rows.Scan(&m.GroupNumber, &m.P1Wins, &m.P2Wins,
			&m.Player1.ID, &m.Player1.Name, &m.Player1.Rating,
			&m.Player2.ID, &m.Player2.Name, &m.Player2.Rating)
		if err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// MatchesByGroup returns one group's matches in the order they were
// scheduled.
func (s *Store) MatchesByGroup(sessionID int64, groupNumber int) ([]league.Match, error) {
	rows, err := s.db.Query(`
        select m.group_number, m.player_1_wins, m.player_2_wins,
               pa.player_id, pa.name, pa.rating,
               pb.player_id, pb.name, pb.rating
        from match m
        join player pa on pa.player_id = m.player_1_id
        join player pb on pb.player_id = m.player_2_id
        where m.session_id = ? and m.group_number = ?
        order by m.match_id asc`, sessionID, groupNumber)
	if err != nil {
		return nil, fmt.Errorf("listing group %d matches: %w", groupNumber, err)
	}
	return s.scanMatches(rows)
}

// SessionMatches returns every match in a session grouped then in schedule
// order.
func (s *Store) SessionMatches(sessionID int64) ([]league.Match, error) {
	rows, err := s.db.Query(`
        select m.group_number, m.player_1_wins, m.player_2_wins,
               pa.player_id, pa.name, pa.rating,
               pb.player_id, pb.name, pb.rating
        from match m
        join player pa on pa.player_id = m.player_1_id
        join player pb on pb.player_id = m.player_2_id
        where m.session_id = ?
        order by m.group_number asc, m.match_id asc`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing session %d matches: %w", sessionID, err)
	}
	return s.scanMatches(rows)
}

// MatchesByPlayer returns a player's matches with the subject always
// oriented as Player1, oldest session first. sinceSessionID of 0 returns the
// player's full history.
func (s *Store) MatchesByPlayer(playerID, sinceSessionID int64) ([]league.Match, error) {
	rows, err := s.db.Query(`
        select m.group_number, m.player_1_wins, m.player_2_wins,
               pa.player_id, pa.name, pa.rating,
               pb.player_id, pb.name, pb.rating,
               m.player_1_id
        from match m
        join player pa on pa.player_id = m.player_1_id
        join player pb on pb.player_id = m.player_2_id
        where (m.player_1_id = ? or m.player_2_id = ?)
          and m.session_id >= ?
        order by m.session_id asc, m.match_id asc`,
		playerID, playerID, sinceSessionID)
	if err != nil {
		return nil, fmt.Errorf("listing matches for player %d: %w", playerID, err)
	}
	defer rows.Close()

	var matches []league.Match
	for rows.Next() {
		var m league.Match
		var storedP1 int64
		err := rows.Scan(&m.GroupNumber, &m.P1Wins, &m.P2Wins,
			&m.Player1.ID, &m.Player1.Name, &m.Player1.Rating,
			&m.Player2.ID, &m.Player2.Name, &m.Player2.Rating,
			&storedP1)
		if err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		if storedP1 != playerID {
			m.Player1, m.Player2 = m.Player2, m.Player1
			m.P1Wins, m.P2Wins = m.P2Wins, m.P1Wins
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
