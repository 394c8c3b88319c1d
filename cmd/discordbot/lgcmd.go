/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/ttleague-tdbot/league"
	"github.com/mikeb26/ttleague-tdbot/store"
)

type LgSubCommand string

const (
	LgAboutCmd     LgSubCommand = "about"
	LgHelpCmd      LgSubCommand = "help"
	LgSessionsCmd  LgSubCommand = "sessions"
	LgGroupsCmd    LgSubCommand = "groups"
	LgScheduleCmd  LgSubCommand = "schedule"
	LgStandingsCmd LgSubCommand = "standings"
	LgResultsCmd   LgSubCommand = "results"
	LgPlayerCmd    LgSubCommand = "player"
)

var lgSubCmdHdlrs = map[LgSubCommand]CmdHandler{
	LgAboutCmd:     lgAboutCmdHandler,
	LgHelpCmd:      lgHelpCmdHandler,
	LgSessionsCmd:  lgSessionsCmdHandler,
	LgGroupsCmd:    lgGroupsCmdHandler,
	LgScheduleCmd:  lgScheduleCmdHandler,
	LgStandingsCmd: lgStandingsCmdHandler,
	LgResultsCmd:   lgResultsCmdHandler,
	LgPlayerCmd:    lgPlayerCmdHandler,
}

func lgCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := lgHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := lgSubCmdHdlrs[LgSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

// openLeagueStore opens the league database named by $LEAGUETD_DB. Each
// interaction opens and closes its own handle.
func openLeagueStore() (*store.Store, error) {
	dbPath := os.Getenv("LEAGUETD_DB")
	if dbPath == "" {
		dbPath = "league.db"
	}
	return store.Open(dbPath)
}

// ephemeralResp returns the skeleton response all subcommands start from;
// only-visible-to-you until the broadcast option clears the flag.
func ephemeralResp() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// subCmdOptions extracts the session/playerid/broadcast options common to the
// league subcommands.
func subCmdOptions(inter *discordgo.Interaction) (sessionID int64,
	playerID int64, broadcast bool) {

	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return 0, 0, false
	}
	for _, opt := range data.Options[0].Options {
		switch opt.Name {
		case "session":
			sessionID = opt.IntValue()
		case "playerid":
			playerID = opt.IntValue()
		case "broadcast":
			broadcast = opt.BoolValue()
		}
	}
	return sessionID, playerID, broadcast
}

//go:embed about.txt
var aboutText string

func lgAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := ephemeralResp()
	resp.Data.Content = truncateContent(aboutText)

	return resp
}

//go:embed help.md
var helpText string

func lgHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := ephemeralResp()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

func lgSessionsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := ephemeralResp()
	_, _, broadcast := subCmdOptions(inter)

	st, err := openLeagueStore()
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error opening league database: %v", err)
		log.Printf("discordbot.sessions: %v", resp.Data.Content)
		return resp
	}
	defer st.Close()

	sessions, err := st.ListSessions()
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error listing sessions: %v", err)
		log.Printf("discordbot.sessions: %v", resp.Data.Content)
		return resp
	}
	if len(sessions) == 0 {
		resp.Data.Content = "No sessions yet."
		return resp
	}

	var sb strings.Builder
	for _, sess := range sessions {
		sb.WriteString(fmt.Sprintf("**%v** (SessionID:%v)\n", sess.Date, sess.ID))
	}
	sb.WriteString("\nRun /league groups <SessionID> to see a session's groups\n")
	resp.Data.Content = truncateContent(sb.String())

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// lgGroupsCmdHandler handles the /league groups command to display a
// session's rating groups
func lgGroupsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := ephemeralResp()
	sessionID, _, broadcast := subCmdOptions(inter)
	if sessionID == 0 {
		resp.Data.Content = "Please provide a session ID."
		log.Printf("discordbot.groups: %v", resp.Data.Content)
		return resp
	}

	st, err := openLeagueStore()
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error opening league database: %v", err)
		log.Printf("discordbot.groups: %v", resp.Data.Content)
		return resp
	}
	defer st.Close()

	groups, err := loadGroups(st, sessionID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching groups for session %d: %v",
			sessionID, err)
		log.Printf("discordbot.groups: %v", resp.Data.Content)
		return resp
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(league.BuildGroupsOutput(groups)))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// lgScheduleCmdHandler handles the /league schedule command to display each
// group's round robin order
func lgScheduleCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := ephemeralResp()
	sessionID, _, broadcast := subCmdOptions(inter)
	if sessionID == 0 {
		resp.Data.Content = "Please provide a session ID."
		log.Printf("discordbot.schedule: %v", resp.Data.Content)
		return resp
	}

	st, err := openLeagueStore()
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error opening league database: %v", err)
		log.Printf("discordbot.schedule: %v", resp.Data.Content)
		return resp
	}
	defer st.Close()

	groups, err := loadGroups(st, sessionID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching schedule for session %d: %v",
			sessionID, err)
		log.Printf("discordbot.schedule: %v", resp.Data.Content)
		return resp
	}

	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(league.BuildScheduleOutput(groups)))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// lgStandingsCmdHandler handles the /league standings command to display
// current per-group standings
func lgStandingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := ephemeralResp()
	sessionID, _, broadcast := subCmdOptions(inter)
	if sessionID == 0 {
		resp.Data.Content = "Please provide a session ID."
		log.Printf("discordbot.standings: %v", resp.Data.Content)
		return resp
	}

	st, err := openLeagueStore()
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error opening league database: %v", err)
		log.Printf("discordbot.standings: %v", resp.Data.Content)
		return resp
	}
	defer st.Close()

	results, err := loadGroupResults(st, sessionID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching standings for session %d: %v",
			sessionID, err)
		log.Printf("discordbot.standings: %v", resp.Data.Content)
		return resp
	}

	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(league.BuildStandingsOutput(results)))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// lgResultsCmdHandler handles the /league results command to display a closed
// session's rating changes
func lgResultsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := ephemeralResp()
	sessionID, _, broadcast := subCmdOptions(inter)
	if sessionID == 0 {
		resp.Data.Content = "Please provide a session ID."
		log.Printf("discordbot.results: %v", resp.Data.Content)
		return resp
	}

	st, err := openLeagueStore()
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error opening league database: %v", err)
		log.Printf("discordbot.results: %v", resp.Data.Content)
		return resp
	}
	defer st.Close()

	ratings, err := st.SessionRatings(sessionID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching ratings for session %d: %v",
			sessionID, err)
		log.Printf("discordbot.results: %v", resp.Data.Content)
		return resp
	}
	if len(ratings) == 0 {
		resp.Data.Content = fmt.Sprintf("Session %d has not been closed yet.",
			sessionID)
		return resp
	}

	changes := make(map[int64]league.RatingChange)
	for playerID, sr := range ratings {
		changes[playerID] = league.RatingChange{
			PreviousRating: sr.PreviousRating,
			NewRating:      sr.Rating,
		}
	}

	results, err := loadGroupResults(st, sessionID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching groups for session %d: %v",
			sessionID, err)
		log.Printf("discordbot.results: %v", resp.Data.Content)
		return resp
	}

	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(league.BuildResultsOutput(results, changes)))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// lgPlayerCmdHandler handles the /league player command to display a
// player's rating history and per-opponent record
func lgPlayerCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := ephemeralResp()
	_, playerID, broadcast := subCmdOptions(inter)
	if playerID == 0 {
		resp.Data.Content = "Please provide a league player ID."
		log.Printf("discordbot.player: %v", resp.Data.Content)
		return resp
	}

	st, err := openLeagueStore()
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error opening league database: %v", err)
		log.Printf("discordbot.player: %v", resp.Data.Content)
		return resp
	}
	defer st.Close()

	player, err := st.GetPlayer(playerID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching player %d: %v",
			playerID, err)
		log.Printf("discordbot.player: %v", resp.Data.Content)
		return resp
	}

	history, err := st.RatingHistory(playerID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching history for player %d: %v",
			playerID, err)
		log.Printf("discordbot.player: %v", resp.Data.Content)
		return resp
	}
	var entries []league.HistoryEntry
	for _, sr := range history {
		sess, err := st.GetSession(sr.SessionID)
		if err != nil {
			resp.Data.Content = fmt.Sprintf("Error fetching session %d: %v",
				sr.SessionID, err)
			log.Printf("discordbot.player: %v", resp.Data.Content)
			return resp
		}
		entries = append(entries, league.HistoryEntry{
			SessionDate: sess.Date,
			Rating:      sr.Rating,
		})
	}

	matches, err := st.MatchesByPlayer(playerID, 0)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching matches for player %d: %v",
			playerID, err)
		log.Printf("discordbot.player: %v", resp.Data.Content)
		return resp
	}

	var sb strings.Builder
	sb.WriteString(league.BuildHistoryOutput(player.Name, entries))
	sb.WriteString("\n")
	sb.WriteString(league.BuildStatsOutput(player.Name, league.MatchStats(matches)))

	resp.Data.Content = fmt.Sprintf("```\n%s```", truncateContent(sb.String()))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
