/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"

	_ "embed"
)

var botPubKey ed25519.PublicKey
var botAppId string

var client *discordgo.Session

type TopLevelCommand string

const (
	LgCmd TopLevelCommand = "league"
)

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	LgCmd: lgCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		hdlr, ok :=
			topLevelCmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'",
					inter.ApplicationCommandData().Name),
				Flags: discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(ctx, &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interation type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(rawResp)
	if err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func init() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
}

// initCreds loads the bot's credentials from the environment. Kept out of
// init() so the package remains testable without credentials configured.
func initCreds() {
	pubKeyText := os.Getenv("DISCORD_PUBLIC_KEY")
	if pubKeyText == "" {
		log.Fatalf("discordbot.init: DISCORD_PUBLIC_KEY is not set")
	}
	pubKeyBytes, err := hex.DecodeString(pubKeyText)
	if err != nil {
		log.Fatalf("discordbot.init: Failed to parse DISCORD_PUBLIC_KEY: %v", err)
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)

	botAppId = os.Getenv("DISCORD_APP_ID")
	if botAppId == "" {
		log.Fatalf("discordbot.init: DISCORD_APP_ID is not set")
	}

	client, err = discordgo.New("Bot " + os.Getenv("DISCORD_BOT_TOKEN"))
	if err != nil {
		log.Fatalf("dicordbot.init: Failed to initialize discord client: %v", err)
	}
}

//go:embed lastupdate.hash
var lastCmdUpdateHash string

func shouldUpdateCmdRegistration(cmd *discordgo.ApplicationCommand) bool {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		log.Fatalf("discordbot.reg: failed to marshal cmd: %v", err)
		return false
	}
	hasher := sha256.New()
	hasher.Write(cmdJson)
	hash := hasher.Sum(nil)
	hexString := hex.EncodeToString(hash)

	shouldUpdate := (hexString != lastCmdUpdateHash)

	if shouldUpdate {
		log.Printf("discordbot.reg: updating cmd reg; please update	lastupdate.hash to %v",
			hexString)
	}

	return shouldUpdate
}

func registerSlashCommands() {
	sessionOpt := func(desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "session",
			Description: desc,
			Required:    true,
		}
	}
	broadcastOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}

	lgCmd := &discordgo.ApplicationCommand{
		Name:        string(LgCmd),
		Description: "League director commands; try /league help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LgHelpCmd),
				Description: "Show usage for league",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LgAboutCmd),
				Description: "Show information about ttleague-tdbot",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LgSessionsCmd),
				Description: "Show league session nights",
				Options: []*discordgo.ApplicationCommandOption{
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LgGroupsCmd),
				Description: "Show a session's rating groups",
				Options: []*discordgo.ApplicationCommandOption{
					sessionOpt("Session id (as returned by sessions)"),
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LgScheduleCmd),
				Description: "Show a session's match schedule",
				Options: []*discordgo.ApplicationCommandOption{
					sessionOpt("Session id (as returned by sessions)"),
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LgStandingsCmd),
				Description: "Show a session's current group standings",
				Options: []*discordgo.ApplicationCommandOption{
					sessionOpt("Session id (as returned by sessions)"),
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LgResultsCmd),
				Description: "Show a closed session's rating changes",
				Options: []*discordgo.ApplicationCommandOption{
					sessionOpt("Session id (as returned by sessions)"),
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LgPlayerCmd),
				Description: "Show a player's rating history and match record",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "playerid",
						Description: "League player id",
						Required:    true,
					},
					broadcastOpt,
				},
			},
		},
	}

	cmdId := os.Getenv("DISCORD_LEAGUE_CMD_ID")
	if cmdId == "" {
		cmd, err := client.ApplicationCommandCreate(botAppId, "", lgCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", lgCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v)", cmd.Name, cmd.ID)
	} else if shouldUpdateCmdRegistration(lgCmd) {
		cmd, err := client.ApplicationCommandEdit(botAppId, "", cmdId, lgCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to update %v: %v", lgCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
	}
}

func main() {
	initCreds()
	go registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v:8080", hostname)

	http.HandleFunc("/DiscordBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
