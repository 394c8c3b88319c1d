/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mikeb26/ttleague-tdbot/internal"
	"github.com/mikeb26/ttleague-tdbot/league"
	"github.com/mikeb26/ttleague-tdbot/s3cache"
	"github.com/mikeb26/ttleague-tdbot/store"
)

// loadRoster returns a session's enrolled players with each player's
// group-win flag carried over from their most recent closed session.
func loadRoster(st *store.Store, sessionID int64) ([]league.Player, error) {
	roster, err := st.SessionPlayers(sessionID)
	if err != nil {
		return nil, err
	}

	players := make([]league.Player, 0, len(roster))
	for _, sp := range roster {
		p := sp.Player
		latest, err := st.LatestRating(p.ID)
		if err == nil && latest.SessionID < sessionID {
			p.WonGroup = latest.WonGroup
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

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

func handleGroups(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("groups", flag.ExitOnError)
	dbPath := dbFlag(fs)
	sessionID := fs.Int64("session", 0, "Session ID")
	numGroups := fs.Int("numgroups", 0, "Number of groups to form")
	minSize := fs.Int("min", 3, "Minimum players per group")
	maxSize := fs.Int("max", 8, "Maximum players per group")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *sessionID <= 0 || *numGroups <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide valid --session and --numgroups.")
		fs.Usage()
		os.Exit(1)
	}

	st := mustOpenStore(*dbPath)
	defer st.Close()

	players, err := loadRoster(st, *sessionID)
	if err != nil {
		log.Fatalf("Error loading session %d roster: %v", *sessionID, err)
	}

	groups, err := league.MakeGroups(players, *numGroups, *minSize, *maxSize)
	if err != nil {
		log.Fatalf("Error bracketing %d players into %d groups: %v",
			len(players), *numGroups, err)
	}

	for _, g := range groups {
		for _, p := range g.Players {
			if err := st.AssignGroup(*sessionID, p.ID, g.Number); err != nil {
				log.Fatalf("Error persisting group assignment: %v", err)
			}
		}
	}
	fmt.Print(league.BuildGroupsOutput(groups))
	fmt.Printf("Run '%s schedule --session %d' to schedule each group's matches\n",
		os.Args[0], *sessionID)
}

func handleSchedule(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("schedule", flag.ExitOnError)
	dbPath := dbFlag(fs)
	sessionID := fs.Int64("session", 0, "Session ID")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *sessionID <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --session ID.")
		fs.Usage()
		os.Exit(1)
	}

	st := mustOpenStore(*dbPath)
	defer st.Close()

	groups, err := loadGroups(st, *sessionID)
	if err != nil {
		log.Fatalf("Error loading session %d groups: %v", *sessionID, err)
	}

	for _, g := range groups {
		for _, pr := range g.MakeMatches() {
			err := st.AddMatch(*sessionID, g.Number, pr.Player1.ID, pr.Player2.ID)
			if err != nil {
				log.Fatalf("Error persisting schedule: %v", err)
			}
		}
	}
	fmt.Print(league.BuildScheduleOutput(groups))
}

func handleReport(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	dbPath := dbFlag(fs)
	sessionID := fs.Int64("session", 0, "Session ID")
	player1 := fs.Int64("player1", 0, "First player ID")
	player2 := fs.Int64("player2", 0, "Second player ID")
	wins1 := fs.Int("wins1", 0, "Games won by the first player")
	wins2 := fs.Int("wins2", 0, "Games won by the second player")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *sessionID <= 0 || *player1 <= 0 || *player2 <= 0 {
		fmt.Fprintln(os.Stderr,
			"Please provide valid --session, --player1, and --player2 IDs.")
		fs.Usage()
		os.Exit(1)
	}
	if *wins1 < 0 || *wins2 < 0 || (*wins1 == 0 && *wins2 == 0) {
		fmt.Fprintln(os.Stderr, "Please provide the game score via --wins1/--wins2.")
		fs.Usage()
		os.Exit(1)
	}

	st := mustOpenStore(*dbPath)
	defer st.Close()

	err := st.UpdateMatch(*sessionID, *player1, *player2, *wins1, *wins2)
	if err != nil {
		log.Fatalf("Error recording result: %v", err)
	}
	m, err := st.GetMatch(*sessionID, *player1, *player2)
	if err != nil {
		log.Fatalf("Error reading back result: %v", err)
	}
	fmt.Printf("Recorded %s %d - %d %s\n", m.Player1.Name, m.P1Wins, m.P2Wins,
		m.Player2.Name)
}

func handleStandings(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("standings", flag.ExitOnError)
	dbPath := dbFlag(fs)
	sessionID := fs.Int64("session", 0, "Session ID")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *sessionID <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --session ID.")
		fs.Usage()
		os.Exit(1)
	}

	st := mustOpenStore(*dbPath)
	defer st.Close()

	results, err := loadGroupResults(st, *sessionID)
	if err != nil {
		log.Fatalf("Error loading session %d results: %v", *sessionID, err)
	}
	fmt.Print(league.BuildStandingsOutput(results))
}

func handleClose(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("close", flag.ExitOnError)
	dbPath := dbFlag(fs)
	sessionID := fs.Int64("session", 0, "Session ID")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *sessionID <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --session ID.")
		fs.Usage()
		os.Exit(1)
	}

	st := mustOpenStore(*dbPath)
	defer st.Close()

	matches, err := st.SessionMatches(*sessionID)
	if err != nil {
		log.Fatalf("Error loading session %d matches: %v", *sessionID, err)
	}
	existing, err := st.SessionRatings(*sessionID)
	if err != nil {
		log.Fatalf("Error loading session %d ratings: %v", *sessionID, err)
	}

	changes, err := league.ApplySession(matches, existing)
	if err != nil {
		log.Fatalf("Error applying session %d results: %v", *sessionID, err)
	}

	results, err := loadGroupResults(st, *sessionID)
	if err != nil {
		log.Fatalf("Error loading session %d groups: %v", *sessionID, err)
	}

	// group winner takes the display bump into the next session; a group
	// whose top records are tied crowns nobody
	winners := make(map[int64]bool)
	for _, gr := range results {
		standings := gr.Standings()
		if len(standings) == 0 {
			continue
		}
		if len(standings) == 1 || standings[0].Wins > standings[1].Wins {
			winners[standings[0].Player.ID] = true
		}
	}

	for playerID, rc := range changes {
		err := st.SetSessionRating(league.SessionRating{
			PlayerID:       playerID,
			SessionID:      *sessionID,
			PreviousRating: rc.PreviousRating,
			Rating:         rc.NewRating,
			WonGroup:       winners[playerID],
		})
		if err != nil {
			log.Fatalf("Error persisting rating: %v", err)
		}
		if err := st.UpdatePlayerRating(playerID, rc.NewRating); err != nil {
			log.Fatalf("Error updating player rating: %v", err)
		}
	}

	fmt.Print(league.BuildResultsOutput(results, changes))
}

func handleResults(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("results", flag.ExitOnError)
	dbPath := dbFlag(fs)
	sessionID := fs.Int64("session", 0, "Session ID")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *sessionID <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --session ID.")
		fs.Usage()
		os.Exit(1)
	}

	st := mustOpenStore(*dbPath)
	defer st.Close()

	ratings, err := st.SessionRatings(*sessionID)
	if err != nil {
		log.Fatalf("Error loading session %d ratings: %v", *sessionID, err)
	}

	var changes map[int64]league.RatingChange
	if len(ratings) > 0 {
		changes = make(map[int64]league.RatingChange)
		for playerID, sr := range ratings {
			changes[playerID] = league.RatingChange{
				PreviousRating: sr.PreviousRating,
				NewRating:      sr.Rating,
			}
		}
	} else {
		// session not closed yet; aggregate without persisting anything
		matches, err := st.SessionMatches(*sessionID)
		if err != nil {
			log.Fatalf("Error loading session %d matches: %v", *sessionID, err)
		}
		changes, err = league.ApplySession(matches, nil)
		if err != nil {
			log.Fatalf("Error applying session %d results: %v", *sessionID, err)
		}
		fmt.Printf("Session %d is not closed; showing a preview. Run '%s close --session %d' to apply.\n\n",
			*sessionID, os.Args[0], *sessionID)
	}

	results, err := loadGroupResults(st, *sessionID)
	if err != nil {
		log.Fatalf("Error loading session %d groups: %v", *sessionID, err)
	}
	fmt.Print(league.BuildResultsOutput(results, changes))
}

func handleBackup(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	dbPath := dbFlag(fs)
	snapName := fs.String("name", "", "Snapshot name (defaults to a timestamp)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *snapName == "" {
		*snapName = time.Now().Format("20060102-150405")
	}

	data, err := os.ReadFile(*dbPath)
	if err != nil {
		log.Fatalf("Error reading league database %v: %v", *dbPath, err)
	}

	cache := s3cache.New(ctx, internal.SnapshotBucket, false, true)
	if err := cache.Init(); err != nil {
		log.Fatalf("Error initializing snapshot bucket: %v", err)
	}

	leagueName := snapshotLeagueName(*dbPath)
	if err := cache.PutSnapshot(leagueName, *snapName, data); err != nil {
		log.Fatalf("Error uploading snapshot: %v", err)
	}
	fmt.Printf("Backed up %v as %v/%v\n", *dbPath, leagueName, *snapName)
}

func handleRestore(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	dbPath := dbFlag(fs)
	snapName := fs.String("name", "", "Snapshot name to restore")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cache := s3cache.New(ctx, internal.SnapshotBucket, false, true)
	if err := cache.Init(); err != nil {
		log.Fatalf("Error initializing snapshot bucket: %v", err)
	}

	leagueName := snapshotLeagueName(*dbPath)
	if *snapName == "" {
		names, err := cache.ListSnapshots(leagueName)
		if err != nil {
			log.Fatalf("Error listing snapshots: %v", err)
		}
		if len(names) == 0 {
			log.Fatalf("No snapshots found for %v", leagueName)
		}
		fmt.Printf("Available snapshots for %v:\n", leagueName)
		for _, n := range names {
			fmt.Printf("  %v\n", n)
		}
		return
	}

	data, err := cache.GetSnapshot(leagueName, *snapName)
	if err != nil {
		log.Fatalf("Error downloading snapshot %v: %v", *snapName, err)
	}
	if err := os.WriteFile(*dbPath, data, 0600); err != nil {
		log.Fatalf("Error writing league database %v: %v", *dbPath, err)
	}
	fmt.Printf("Restored %v from %v/%v\n", *dbPath, leagueName, *snapName)
}

// snapshotLeagueName derives the per-league S3 prefix from the database file
// name.
func snapshotLeagueName(dbPath string) string {
	base := filepath.Base(dbPath)
	ext := filepath.Ext(base)
	if ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return base
}
