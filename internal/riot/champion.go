package riot

import (
	"context"
	"fmt"
	"strconv"
)

// Data Dragon static data
const (
	DDragonVersion = "14.1.1"
	DDragonBaseURL = "https://ddragon.leagueoflegends.com/cdn/" + DDragonVersion
)

type championData struct {
	Data map[string]struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"data"`
}

// loadChampions fetches champion.json from Data Dragon and builds the
// champion ID to name lookup. Static data for a pinned version, so one
// fetch per process is enough.
func (c *Client) loadChampions(ctx context.Context) error {
	endpoint := DDragonBaseURL + "/data/en_US/champion.json"

	var data championData
	if err := c.get(ctx, endpoint, &data); err != nil {
		return fmt.Errorf("failed to fetch champion data: %w", err)
	}

	names := make(map[int]string, len(data.Data))
	for _, champ := range data.Data {
		key, err := strconv.Atoi(champ.Key)
		if err != nil {
			continue
		}
		names[key] = champ.Name
	}

	c.championID = names
	return nil
}

// ChampionName resolves a champion ID to its display name, fetching
// and caching Data Dragon static data on first use
func (c *Client) ChampionName(ctx context.Context, championID int) (string, error) {
	c.champMu.Lock()
	defer c.champMu.Unlock()

	if c.championID == nil {
		if err := c.loadChampions(ctx); err != nil {
			return "", err
		}
	}

	if name, ok := c.championID[championID]; ok {
		return name, nil
	}
	return "Unknown Champion", nil
}

// ChampionIconURL returns the Data Dragon icon URL for a champion
func ChampionIconURL(championName string) string {
	return fmt.Sprintf("%s/img/champion/%s.png", DDragonBaseURL, championName)
}

// ProfileIconURL returns the Data Dragon URL for a profile icon
func ProfileIconURL(iconID int) string {
	return fmt.Sprintf("%s/img/profileicon/%d.png", DDragonBaseURL, iconID)
}
