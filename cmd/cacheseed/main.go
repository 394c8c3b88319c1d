/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mikeb26/ttleague-tdbot/store"
	"github.com/mikeb26/ttleague-tdbot/usatt"
)

// this program exists just to seed the http cache for league members'
// USATT profiles

func main() {
	ctx := context.Background()

	dbPath := os.Getenv("LEAGUETD_DB")
	if dbPath == "" {
		dbPath = "league.db"
	}
	st, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("cacheseed.main: unable to open league database %v: %v",
			dbPath, err)
	}
	defer st.Close()

	memberIDs, err := st.USATTMemberIDs()
	if err != nil {
		log.Fatalf("cacheseed.main: unable to list usatt members: %v", err)
	}

	client := usatt.NewClient(ctx)
	for _, memId := range memberIDs {
		player, err := client.FetchPlayer(ctx, usatt.MemID(memId))
		time.Sleep(2 * time.Second) // avoid pegging usatt.simplycompete.com
		if err != nil {
			// best effort
			continue
		}

		fmt.Printf("seeded %v player data\n", player.Name)
	}
}
