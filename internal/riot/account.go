package riot

import (
	"context"
	"fmt"
	"net/url"
)

// Account represents a Riot account from the Account-V1 API
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// RiotID formats the account as GameName#TagLine
func (a *Account) RiotID() string {
	return fmt.Sprintf("%s#%s", a.GameName, a.TagLine)
}

// GetAccountByRiotID retrieves account information by Riot ID
// Uses the Account-V1 API endpoint
func (c *Client) GetAccountByRiotID(ctx context.Context, gameName, tagLine, region string) (*Account, error) {
	host, err := regionalHost(region)
	if err != nil {
		return nil, err
	}

	// URL encode the parameters
	encodedGameName := url.PathEscape(gameName)
	encodedTagLine := url.PathEscape(tagLine)

	endpoint := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		host, encodedGameName, encodedTagLine)

	var account Account
	if err := c.get(ctx, endpoint, &account); err != nil {
		return nil, fmt.Errorf("failed to get account by Riot ID: %w", err)
	}

	return &account, nil
}

// GetAccountByPUUID retrieves account information by PUUID
func (c *Client) GetAccountByPUUID(ctx context.Context, puuid, region string) (*Account, error) {
	host, err := regionalHost(region)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/riot/account/v1/accounts/by-puuid/%s", host, puuid)

	var account Account
	if err := c.get(ctx, endpoint, &account); err != nil {
		return nil, fmt.Errorf("failed to get account by PUUID: %w", err)
	}

	return &account, nil
}
