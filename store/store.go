/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

/* Package store persists one league's players, sessions, matches, and rating
 * history in a single SQLite database file. Each league gets its own file;
 * callers open the store for the league they are operating on and pass it
 * down explicitly rather than sharing any process-wide connection state.
 */
package store

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mikeb26/ttleague-tdbot/league"
)

//go:embed schema.sql
var schema string

// Store provides database access for one league.
type Store struct {
	db   *sql.DB
	path string
}

// Session is one dated league evening.
type Session struct {
	ID   int64
	Date string
}

// SessionPlayer is a player enrolled in a session along with their group
// assignment; GroupNumber is 0 until groups have been made.
type SessionPlayer struct {
	league.Player
	GroupNumber int
}

// Open opens (creating if necessary) the league database at dbPath and
// applies the schema.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening league database: %w", err)
	}

	// SQLite allows only one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying league schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path this store was opened with.
func (s *Store) Path() string {
	return s.path
}

// AddPlayer registers a new league member and returns their id. Hand and
// racket type are optional.
func (s *Store) AddPlayer(name string, rating int, dominantHand, racketType string) (int64, error) {
	res, err := s.db.Exec(`
        insert into player (name, rating, dominant_hand, racket_type)
        values (?, ?, nullif(?, ''), nullif(?, ''))`,
		name, rating, dominantHand, racketType)
	if err != nil {
		return 0, fmt.Errorf("adding player %q: %w", name, err)
	}
	return res.LastInsertId()
}

// GetPlayer returns one player by id.
func (s *Store) GetPlayer(playerID int64) (league.Player, error) {
	var p league.Player
	err := s.db.QueryRow(`
        select player_id, name, rating from player where player_id = ?`,
		playerID).Scan(&p.ID, &p.Name, &p.Rating)
	if err != nil {
		return league.Player{}, fmt.Errorf("fetching player %d: %w", playerID, err)
	}
	return p, nil
}

// ListPlayers returns every league member ordered by name.
func (s *Store) ListPlayers() ([]league.Player, error) {
	rows, err := s.db.Query(`
        select player_id, name, rating from player order by name asc`)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	defer rows.Close()

	var players []league.Player
	for rows.Next() {
		var p league.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Rating); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// UpdatePlayerRating moves a player's current rating pointer; invoked at
// session close after rating rows are written.
func (s *Store) UpdatePlayerRating(playerID int64, rating int) error {
	_, err := s.db.Exec(`update player set rating = ? where player_id = ?`,
		rating, playerID)
	if err != nil {
		return fmt.Errorf("updating rating for player %d: %w", playerID, err)
	}
	return nil
}

// SetUSATTID associates a league member with their USATT membership.
func (s *Store) SetUSATTID(playerID, usattID int64) error {
	_, err := s.db.Exec(`update player set usatt_id = ? where player_id = ?`,
		usattID, playerID)
	if err != nil {
		return fmt.Errorf("setting usatt id for player %d: %w", playerID, err)
	}
	return nil
}

// USATTMemberIDs returns the USATT membership ids of every league member who
// has one recorded.
func (s *Store) USATTMemberIDs() ([]int64, error) {
	rows, err := s.db.Query(`
        select distinct usatt_id from player
        where usatt_id is not null order by usatt_id asc`)
	if err != nil {
		return nil, fmt.Errorf("listing usatt ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning usatt id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AddSession creates a new dated session and returns its id.
func (s *Store) AddSession(date string) (int64, error) {
	res, err := s.db.Exec(`insert into session (session_date) values (?)`, date)
	if err != nil {
		return 0, fmt.Errorf("adding session %q: %w", date, err)
	}
	return res.LastInsertId()
}

// GetSession returns one session by id.
func (s *Store) GetSession(sessionID int64) (Session, error) {
	var sess Session
	err := s.db.QueryRow(`
        select session_id, session_date from session where session_id = ?`,
		sessionID).Scan(&sess.ID, &sess.Date)
	if err != nil {
		return Session{}, fmt.Errorf("fetching session %d: %w", sessionID, err)
	}
	return sess, nil
}

// ListSessions returns all sessions oldest first.
func (s *Store) ListSessions() ([]Session, error) {
	rows, err := s.db.Query(`
        select session_id, session_date from session order by session_id asc`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Date); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// EnrollPlayer adds a player to a session's roster.
func (s *Store) EnrollPlayer(sessionID, playerID int64) error {
	_, err := s.db.Exec(`
        insert into session_player (session_id, player_id) values (?, ?)`,
		sessionID, playerID)
	if err != nil {
		return fmt.Errorf("enrolling player %d in session %d: %w",
			playerID, sessionID, err)
	}
	return nil
}

// SessionPlayers returns a session's roster ordered by group then rating
// descending.
func (s *Store) SessionPlayers(sessionID int64) ([]SessionPlayer, error) {
	rows, err := s.db.Query(`
        select p.player_id, p.name, p.rating, coalesce(sp.group_number, 0)
        from session_player sp
        join player p on p.player_id = sp.player_id
        where sp.session_id = ?
        order by sp.group_number asc, p.rating desc`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing session %d roster: %w", sessionID, err)
	}
	defer rows.Close()

	var players []SessionPlayer
	for rows.Next() {
		var sp SessionPlayer
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Rating, &sp.GroupNumber); err != nil {
			return nil, fmt.Errorf("scanning session roster: %w", err)
		}
		players = append(players, sp)
	}
	return players, rows.Err()
}

// AssignGroup records a player's group number for a session, either from
// MakeGroups or from a manual reassignment.
func (s *Store) AssignGroup(sessionID, playerID int64, groupNumber int) error {
	_, err := s.db.Exec(`
        update session_player set group_number = ?
        where session_id = ? and player_id = ?`,
		groupNumber, sessionID, playerID)
	if err != nil {
		return fmt.Errorf("assigning player %d to group %d: %w",
			playerID, groupNumber, err)
	}
	return nil
}

// GroupPlayers returns one group's members ordered by rating descending.
func (s *Store) GroupPlayers(sessionID int64, groupNumber int) ([]league.Player, error) {
	rows, err := s.db.Query(`
        select p.player_id, p.name, p.rating
        from session_player sp
        join player p on p.player_id = sp.player_id
        where sp.session_id = ? and sp.group_number = ?
        order by p.rating desc`, sessionID, groupNumber)
	if err != nil {
		return nil, fmt.Errorf("listing group %d players: %w", groupNumber, err)
	}
	defer rows.Close()

	var players []league.Player
	for rows.Next() {
		var p league.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Rating); err != nil {
			return nil, fmt.Errorf("scanning group player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// GroupCount returns the number of distinct groups assigned in a session.
func (s *Store) GroupCount(sessionID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`
        select count(distinct group_number) from session_player
        where session_id = ? and group_number is not null`,
		sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting groups for session %d: %w", sessionID, err)
	}
	return count, nil
}
