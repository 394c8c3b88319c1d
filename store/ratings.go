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

// SessionRating returns a player's rating row for one session, or
// ErrNotFound when none has been written yet.
func (s *Store) SessionRating(playerID, sessionID int64) (league.SessionRating, error) {
	var sr league.SessionRating
	err := s.db.QueryRow(`
        select player_id, session_id, previous_rating, rating, won_group
        from rating where player_id = ? and session_id = ?`,
		playerID, sessionID).Scan(
		&sr.PlayerID, &sr.SessionID, &sr.PreviousRating, &sr.Rating, &sr.WonGroup)
	if errors.Is(err, sql.ErrNoRows) {
		return league.SessionRating{}, fmt.Errorf(
			"rating for player %d in session %d: %w", playerID, sessionID, ErrNotFound)
	}
	if err != nil {
		return league.SessionRating{}, fmt.Errorf(
			"fetching rating for player %d: %w", playerID, err)
	}
	return sr, nil
}

// SessionRatings returns all rating rows written for a session, keyed by
// player id.
func (s *Store) SessionRatings(sessionID int64) (map[int64]league.SessionRating, error) {
	rows, err := s.db.Query(`
        select player_id, session_id, previous_rating, rating, won_group
        from rating where session_id = ?`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing session %d ratings: %w", sessionID, err)
	}
	defer rows.Close()

	ratings := make(map[int64]league.SessionRating)
	for rows.Next() {
		var sr league.SessionRating
		err := rows.Scan(&sr.PlayerID, &sr.SessionID, &sr.PreviousRating,
			&sr.Rating, &sr.WonGroup)
		if err != nil {
			return nil, fmt.Errorf("scanning rating: %w", err)
		}
		ratings[sr.PlayerID] = sr
	}
	return ratings, rows.Err()
}

// SetSessionRating writes a player's rating row for a session. A row already
// on record is left untouched so the per-session trail stays append-only and
// session close can be re-run safely.
func (s *Store) SetSessionRating(sr league.SessionRating) error {
	_, err := s.db.Exec(`
        insert into rating (player_id, session_id, previous_rating, rating, won_group)
        values (?, ?, ?, ?, ?)
        on conflict (player_id, session_id) do nothing`,
		sr.PlayerID, sr.SessionID, sr.PreviousRating, sr.Rating, sr.WonGroup)
	if err != nil {
		return fmt.Errorf("writing rating for player %d in session %d: %w",
			sr.PlayerID, sr.SessionID, err)
	}
	return nil
}

// LatestRating returns a player's most recent rating row, or ErrNotFound for
// a player with no closed sessions yet.
func (s *Store) LatestRating(playerID int64) (league.SessionRating, error) {
	var sr league.SessionRating
	err := s.db.QueryRow(`
        select player_id, session_id, previous_rating, rating, won_group
        from rating where player_id = ?
        order by session_id desc limit 1`,
		playerID).Scan(
		&sr.PlayerID, &sr.SessionID, &sr.PreviousRating, &sr.Rating, &sr.WonGroup)
	if errors.Is(err, sql.ErrNoRows) {
		return league.SessionRating{}, fmt.Errorf(
			"latest rating for player %d: %w", playerID, ErrNotFound)
	}
	if err != nil {
		return league.SessionRating{}, fmt.Errorf(
			"fetching latest rating for player %d: %w", playerID, err)
	}
	return sr, nil
}

// RatingHistory returns a player's per-session rating trail oldest first.
func (s *Store) RatingHistory(playerID int64) ([]league.SessionRating, error) {
	rows, err := s.db.Query(`
        select player_id, session_id, previous_rating, rating, won_group
        from rating where player_id = ?
        order by session_id asc`, playerID)
	if err != nil {
		return nil, fmt.Errorf("listing rating history for player %d: %w",
			playerID, err)
	}
	defer rows.Close()

	var history []league.SessionRating
	for rows.Next() {
		var sr league.SessionRating
		err := rows.Scan(&sr.PlayerID, &sr.SessionID, &sr.PreviousRating,
			&sr.Rating, &sr.WonGroup)
		if err != nil {
			return nil, fmt.Errorf("scanning rating history: %w", err)
		}
		history = append(history, sr)
	}
	return history, rows.Err()
}
