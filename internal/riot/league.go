package riot

import (
	"context"
	"fmt"
)

// QueueTypeRankedSolo identifies the solo/duo entry in League-V4 responses
const QueueTypeRankedSolo = "RANKED_SOLO_5x5"

// LeagueEntry represents a ranked queue entry from the League-V4 API
type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
}

// GetLeagueEntries retrieves ranked data for a player
func (c *Client) GetLeagueEntries(ctx context.Context, puuid, region string) ([]LeagueEntry, error) {
	host, err := platformHost(region)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", host, puuid)

	var entries []LeagueEntry
	if err := c.get(ctx, endpoint, &entries); err != nil {
		return nil, fmt.Errorf("failed to get league entries: %w", err)
	}

	return entries, nil
}

// FindSoloEntry returns the ranked solo/duo entry from a set of league
// entries, or nil if the player has no solo queue rank.
func FindSoloEntry(entries []LeagueEntry) *LeagueEntry {
	for i := range entries {
		if entries[i].QueueType == QueueTypeRankedSolo {
			return &entries[i]
		}
	}
	return nil
}
