package riot

import (
	"context"
	"fmt"
)

// Summoner represents summoner data from the Summoner-V4 API
type Summoner struct {
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int64  `json:"summonerLevel"`
	RevisionDate  int64  `json:"revisionDate"`
}

// GetSummonerByPUUID retrieves summoner data by PUUID
func (c *Client) GetSummonerByPUUID(ctx context.Context, puuid, region string) (*Summoner, error) {
	host, err := platformHost(region)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", host, puuid)

	var summoner Summoner
	if err := c.get(ctx, endpoint, &summoner); err != nil {
		return nil, fmt.Errorf("failed to get summoner: %w", err)
	}

	return &summoner, nil
}
