/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/ttleague-tdbot/store"
)

// seedTestLeague creates a throwaway league database with one bracketed
// session and points $LEAGUETD_DB at it.
func seedTestLeague(t *testing.T) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "league.db")
	t.Setenv("LEAGUETD_DB", dbPath)

	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("opening test league database: %v", err)
	}
	defer st.Close()

	sessID, err := st.AddSession("2025-06-12")
	if err != nil {
		t.Fatalf("AddSession: %v", err)
	}
	for _, p := range []struct {
		name   string
		rating int
	}{
		{"Alice", 1900}, {"Bob", 1850}, {"Carol", 1500}, {"Dave", 1450},
	} {
		id, err := st.AddPlayer(p.name, p.rating, "", "")
		if err != nil {
			t.Fatalf("AddPlayer: %v", err)
		}
		if err := st.EnrollPlayer(sessID, id); err != nil {
			t.Fatalf("EnrollPlayer: %v", err)
		}
		group := 1
		if p.rating < 1600 {
			group = 2
		}
		if err := st.AssignGroup(sessID, id, group); err != nil {
			t.Fatalf("AssignGroup: %v", err)
		}
	}
}

func subCmdInteraction(sub string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{
					Name:    sub,
					Type:    discordgo.ApplicationCommandOptionSubCommand,
					Options: opts,
				},
			},
		},
	}
}

func TestLgSessionsCmdHandler(t *testing.T) {
	seedTestLeague(t)
	ctx := context.Background()

	resp := lgSessionsCmdHandler(ctx, subCmdInteraction("sessions"))
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response with Data")
	}
	if resp.Type != discordgo.InteractionResponseChannelMessageWithSource {
		t.Errorf("Expected response type %v, got %v",
			discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	}
	if !strings.Contains(resp.Data.Content, "2025-06-12") {
		t.Errorf("Expected session date in content, got %q", resp.Data.Content)
	}
	if resp.Data.Flags != discordgo.MessageFlagsEphemeral {
		t.Errorf("Expected ephemeral response by default")
	}
}

func TestLgGroupsCmdHandler(t *testing.T) {
	seedTestLeague(t)
	ctx := context.Background()

	inter := subCmdInteraction("groups",
		&discordgo.ApplicationCommandInteractionDataOption{
			Name:  "session",
			Type:  discordgo.ApplicationCommandOptionInteger,
			Value: 1.0,
		})

	resp := lgGroupsCmdHandler(ctx, inter)
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response with Data")
	}
	for _, want := range []string{"Group 1", "Group 2", "Alice", "Dave"} {
		if !strings.Contains(resp.Data.Content, want) {
			t.Errorf("Expected %q in content, got %q", want, resp.Data.Content)
		}
	}
}

func TestLgGroupsCmdHandlerMissingSession(t *testing.T) {
	seedTestLeague(t)
	ctx := context.Background()

	resp := lgGroupsCmdHandler(ctx, subCmdInteraction("groups"))
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response with Data")
	}
	if !strings.Contains(resp.Data.Content, "session ID") {
		t.Errorf("Expected prompt for session ID, got %q", resp.Data.Content)
	}
}

func TestLgResultsCmdHandlerUnclosedSession(t *testing.T) {
	seedTestLeague(t)
	ctx := context.Background()

	inter := subCmdInteraction("results",
		&discordgo.ApplicationCommandInteractionDataOption{
			Name:  "session",
			Type:  discordgo.ApplicationCommandOptionInteger,
			Value: 1.0,
		})

	resp := lgResultsCmdHandler(ctx, inter)
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response with Data")
	}
	if !strings.Contains(resp.Data.Content, "not been closed") {
		t.Errorf("Expected unclosed-session message, got %q", resp.Data.Content)
	}
}

func TestTruncateContent(t *testing.T) {
	short := "short message"
	if got := truncateContent(short); got != short {
		t.Errorf("short content should pass through unchanged")
	}

	long := strings.Repeat("x", 3000)
	got := truncateContent(long)
	if len([]rune(got)) > 2000 {
		t.Errorf("truncated content still exceeds the message limit: %d runes",
			len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated content should end with an ellipsis")
	}
}
