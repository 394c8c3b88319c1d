/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mikeb26/ttleague-tdbot/internal"
	"github.com/mikeb26/ttleague-tdbot/league"
	"github.com/mikeb26/ttleague-tdbot/store"
	"github.com/mikeb26/ttleague-tdbot/usatt"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":       handleHelp,
	"leagues":    handleLeagues,
	"newleague":  handleNewLeague,
	"players":    handlePlayers,
	"addplayer":  handleAddPlayer,
	"sessions":   handleSessions,
	"addsession": handleAddSession,
	"enroll":     handleEnroll,
	"groups":     handleGroups,
	"schedule":   handleSchedule,
	"report":     handleReport,
	"standings":  handleStandings,
	"close":      handleClose,
	"results":    handleResults,
	"history":    handleHistory,
	"stats":      handleStats,
	"lookup":     handleLookup,
	"backup":     handleBackup,
	"restore":    handleRestore,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// dbFlag registers the shared league database flag on a command's flag set.
// The default comes from $LEAGUETD_DB when set.
func dbFlag(fs *flag.FlagSet) *string {
	def := os.Getenv("LEAGUETD_DB")
	if def == "" {
		def = "league.db"
	}
	return fs.String("db", def, "League database file")
}

func mustOpenStore(dbPath string) *store.Store {
	st, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Error opening league database %v: %v", dbPath, err)
	}
	return st
}

// dataDir is where per-league database files live.
func dataDir() string {
	if dir := os.Getenv("LEAGUETD_DATA"); dir != "" {
		return dir
	}
	return "."
}

func handleLeagues(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("leagues", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	matches, err := filepath.Glob(filepath.Join(dataDir(), "*.db"))
	if err != nil {
		log.Fatalf("Error listing leagues: %v", err)
	}
	if len(matches) == 0 {
		fmt.Printf("No leagues found under %v. Run '%s newleague --name <name>' to create one.\n",
			dataDir(), os.Args[0])
		return
	}
	for _, m := range matches {
		name := filepath.Base(m)
		fmt.Println(name[:len(name)-len(".db")])
	}
}

func handleNewLeague(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("newleague", flag.ExitOnError)
	name := fs.String("name", "", "League name")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *name == "" {
		fmt.Fprintln(os.Stderr, "Please provide a --name for the new league.")
		fs.Usage()
		os.Exit(1)
	}

	dbPath := filepath.Join(dataDir(), *name+".db")
	if _, err := os.Stat(dbPath); err == nil {
		log.Fatalf("League %v already exists at %v", *name, dbPath)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Error creating league database %v: %v", dbPath, err)
	}
	st.Close()
	fmt.Printf("Created league %v at %v\n", *name, dbPath)
	fmt.Printf("Point LEAGUETD_DB (or --db) at %v to operate on it\n", dbPath)
}

func handlePlayers(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("players", flag.ExitOnError)
	dbPath := dbFlag(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	st := mustOpenStore(*dbPath)
	defer st.Close()

	players, err := st.ListPlayers()
	if err != nil {
		log.Fatalf("Error listing players: %v", err)
	}
	if len(players) == 0 {
		fmt.Println("No players registered yet.")
		return
	}

	maxN := len("Player")
	for _, p := range players {
		if l := len(p.Name); l > maxN {
			maxN = l
		}
	}
	fmt.Printf("%-4s  %-*s  %s\n", "ID", maxN, "Player", "Rating")
	for _, p := range players {
		fmt.Printf("%-4d  %-*s  %d\n", p.ID, maxN, p.Name, p.Rating)
	}
}

func handleAddPlayer(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("addplayer", flag.ExitOnError)
	dbPath := dbFlag(fs)
	name := fs.String("name", "", "Player name")
	rating := fs.Int("rating", 0, "Initial rating (defaults to USATT lookup or 1200)")
	usattID := fs.Int("usattid", 0, "USATT member id to look up name/rating from")
	hand := fs.String("hand", "", "Dominant hand (left/right)")
	racket := fs.String("racket", "", "Racket type (e.g. shakehand, penhold)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *name == "" && *usattID == 0 {
		fmt.Fprintln(os.Stderr, "Please provide --name or --usattid.")
		fs.Usage()
		os.Exit(1)
	}

	if *usattID != 0 {
		client := usatt.NewClient(ctx)
		p, err := client.FetchPlayer(ctx, usatt.MemID(*usattID))
		if err != nil {
			log.Fatalf("Error looking up USATT member %v: %v", *usattID, err)
		}
		if *name == "" {
			*name = p.Name
		}
		if *rating == 0 {
			*rating = p.Rating()
		}
	}
	if *rating == 0 {
		*rating = internal.DefaultNewRating
	}

	st := mustOpenStore(*dbPath)
	defer st.Close()

	id, err := st.AddPlayer(*name, *rating, *hand, *racket)
	if err != nil {
		log.Fatalf("Error adding player: %v", err)
	}
	if *usattID != 0 {
		if err := st.SetUSATTID(id, int64(*usattID)); err != nil {
			log.Fatalf("Error recording USATT id: %v", err)
		}
	}
	fmt.Printf("Added %s (id:%d) at rating %d\n", *name, id, *rating)
}

func handleSessions(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("sessions", flag.ExitOnError)
	dbPath := dbFlag(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	st := mustOpenStore(*dbPath)
	defer st.Close()

	sessions, err := st.ListSessions()
	if err != nil {
		log.Fatalf("Error listing sessions: %v", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions yet.")
		return
	}
	for _, sess := range sessions {
		fmt.Printf("%d  %s\n", sess.ID, sess.Date)
	}
	fmt.Printf("\nRun '%s groups --session <ID>' to bracket a session's roster\n",
		os.Args[0])
}

func handleAddSession(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("addsession", flag.ExitOnError)
	dbPath := dbFlag(fs)
	date := fs.String("date", "", "Session date (defaults to today)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	normalized, err := internal.NormalizeSessionDate(*date)
	if err != nil {
		log.Fatalf("Error parsing date %q: %v", *date, err)
	}

	st := mustOpenStore(*dbPath)
	defer st.Close()

	id, err := st.AddSession(normalized)
	if err != nil {
		log.Fatalf("Error adding session: %v", err)
	}
	fmt.Printf("Added session %d on %s\n", id, normalized)
}

func handleEnroll(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("enroll", flag.ExitOnError)
	dbPath := dbFlag(fs)
	sessionID := fs.Int64("session", 0, "Session ID")
	playerID := fs.Int64("player", 0, "Player ID")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *sessionID <= 0 || *playerID <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide valid --session and --player IDs.")
		fs.Usage()
		os.Exit(1)
	}

	st := mustOpenStore(*dbPath)
	defer st.Close()

	player, err := st.GetPlayer(*playerID)
	if err != nil {
		log.Fatalf("Error fetching player %d: %v", *playerID, err)
	}
	if err := st.EnrollPlayer(*sessionID, *playerID); err != nil {
		log.Fatalf("Error enrolling player %d: %v", *playerID, err)
	}
	fmt.Printf("Enrolled %s in session %d\n", player.Name, *sessionID)
}

func handleHistory(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	dbPath := dbFlag(fs)
	playerID := fs.Int64("player", 0, "Player ID")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *playerID <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --player ID.")
		fs.Usage()
		os.Exit(1)
	}

	st := mustOpenStore(*dbPath)
	defer st.Close()

	player, err := st.GetPlayer(*playerID)
	if err != nil {
		log.Fatalf("Error fetching player %d: %v", *playerID, err)
	}
	history, err := st.RatingHistory(*playerID)
	if err != nil {
		log.Fatalf("Error fetching rating history: %v", err)
	}

	var entries []league.HistoryEntry
	for _, sr := range history {
		sess, err := st.GetSession(sr.SessionID)
		if err != nil {
			log.Fatalf("Error fetching session %d: %v", sr.SessionID, err)
		}
		entries = append(entries, league.HistoryEntry{
			SessionDate: sess.Date,
			Rating:      sr.Rating,
		})
	}
	fmt.Print(league.BuildHistoryOutput(player.Name, entries))
}

func handleStats(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	dbPath := dbFlag(fs)
	playerID := fs.Int64("player", 0, "Player ID")
	since := fs.Int64("since", 0, "Only count sessions at or after this session ID")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *playerID <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --player ID.")
		fs.Usage()
		os.Exit(1)
	}

	st := mustOpenStore(*dbPath)
	defer st.Close()

	player, err := st.GetPlayer(*playerID)
	if err != nil {
		log.Fatalf("Error fetching player %d: %v", *playerID, err)
	}
	matches, err := st.MatchesByPlayer(*playerID, *since)
	if err != nil {
		log.Fatalf("Error fetching matches: %v", err)
	}
	fmt.Print(league.BuildStatsOutput(player.Name, league.MatchStats(matches)))
}

func handleLookup(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	memberID := fs.Int("id", 0, "USATT member id")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *memberID == 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --id <USATT member id>")
		fs.Usage()
		os.Exit(1)
	}

	client := usatt.NewClient(ctx)
	p, err := client.FetchPlayer(ctx, usatt.MemID(*memberID))
	if err != nil {
		log.Fatalf("Error fetching player %v: %v", *memberID, err)
	}

	fmt.Printf("Name: %s\n", p.Name)
	if p.TournamentRating != 0 {
		fmt.Printf("Tournament Rating: %d\n", p.TournamentRating)
	}
	if p.LeagueRating != 0 {
		fmt.Printf("League Rating: %d\n", p.LeagueRating)
	}
	if p.Rating() == 0 {
		fmt.Printf("Unrated\n")
	}
}
