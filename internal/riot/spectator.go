package riot

import (
	"context"
	"errors"
	"fmt"
)

// ActiveGame represents a live game from the Spectator-V5 API
type ActiveGame struct {
	GameID            int64                   `json:"gameId"`
	GameMode          string                  `json:"gameMode"`
	GameQueueConfigID int                     `json:"gameQueueConfigId"`
	GameLength        int64                   `json:"gameLength"`
	Participants      []ActiveGameParticipant `json:"participants"`
}

// ActiveGameParticipant represents a player in a live game
type ActiveGameParticipant struct {
	PUUID      string `json:"puuid"`
	ChampionID int    `json:"championId"`
	TeamID     int64  `json:"teamId"`
	RiotID     string `json:"riotId"`
}

// GetActiveGame retrieves the current live game for a player. A nil
// game with nil error means the player is not in a game right now;
// not-found is not an error condition for this endpoint.
func (c *Client) GetActiveGame(ctx context.Context, puuid, region string) (*ActiveGame, error) {
	host, err := platformHost(region)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/lol/spectator/v5/active-games/by-summoner/%s", host, puuid)

	var game ActiveGame
	if err := c.get(ctx, endpoint, &game); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active game: %w", err)
	}

	return &game, nil
}
