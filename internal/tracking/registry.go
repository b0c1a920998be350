package tracking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Registry errors returned by the invariant-enforcing mutators
var (
	ErrNoChannel      = errors.New("no stalking channel set")
	ErrPlayersTracked = errors.New("players are still being stalked")
	ErrAlreadyTracked = errors.New("player is already being stalked")
	ErrNotTracked     = errors.New("player is not being stalked")
)

// RankSnapshot is a point-in-time observation of a player's solo queue rank
type RankSnapshot struct {
	Tier string `json:"tier"`
	Rank string `json:"rank"`
	LP   int    `json:"lp"`
}

// Clone returns a copy of the snapshot
func (s *RankSnapshot) Clone() *RankSnapshot {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// DuoPartner counts how often a teammate has appeared on the tracked
// player's team. Counters only ever grow.
type DuoPartner struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TrackedPlayer is one monitored account and its polling cursors
type TrackedPlayer struct {
	PUUID     string    `json:"puuid"`
	GameName  string    `json:"game_name"`
	TagLine   string    `json:"tag_line"`
	Region    string    `json:"region"`
	ThreadID  string    `json:"thread_id"`
	TrackedAt time.Time `json:"tracked_at"`
	TrackedBy string    `json:"tracked_by"`

	// Monitoring cursors, mutated only by the poll cycle. A nil rank
	// snapshot or empty match id means "never observed yet".
	LastMatchID  string                 `json:"last_match_id,omitempty"`
	IsInGame     bool                   `json:"is_in_game"`
	DuoPartners  map[string]*DuoPartner `json:"duo_partners,omitempty"`
	LastRank     *RankSnapshot          `json:"last_rank,omitempty"`
	PrevLastRank *RankSnapshot          `json:"prev_last_rank,omitempty"`
}

// RiotID formats the player's display name as GameName#TagLine
func (p *TrackedPlayer) RiotID() string {
	return fmt.Sprintf("%s#%s", p.GameName, p.TagLine)
}

// Registry is the persisted tracking state: the configured stalking
// channel plus all tracked players.
type Registry struct {
	TrackingChannelID string           `json:"tracking_channel_id,omitempty"`
	TrackedPlayers    []*TrackedPlayer `json:"tracked_players"`
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// SetChannel configures the channel where player threads are created
func (r *Registry) SetChannel(channelID string) {
	r.TrackingChannelID = channelID
}

// UnsetChannel clears the stalking channel. Rejected while any player
// is still tracked so no thread is ever orphaned.
func (r *Registry) UnsetChannel() error {
	if r.TrackingChannelID == "" {
		return ErrNoChannel
	}
	if len(r.TrackedPlayers) > 0 {
		return fmt.Errorf("%w: %d player(s)", ErrPlayersTracked, len(r.TrackedPlayers))
	}
	r.TrackingChannelID = ""
	return nil
}

// FindByPUUID returns the tracked player with the given PUUID, or nil
func (r *Registry) FindByPUUID(puuid string) *TrackedPlayer {
	for _, p := range r.TrackedPlayers {
		if p.PUUID == puuid {
			return p
		}
	}
	return nil
}

// FindByName returns the tracked player matching the given game name
// and tag, compared case-insensitively, or nil
func (r *Registry) FindByName(gameName, tagLine string) *TrackedPlayer {
	for _, p := range r.TrackedPlayers {
		if strings.EqualFold(p.GameName, gameName) && strings.EqualFold(p.TagLine, tagLine) {
			return p
		}
	}
	return nil
}

// AddPlayer inserts a new tracked player. Requires a configured
// channel and rejects duplicates by PUUID.
func (r *Registry) AddPlayer(p *TrackedPlayer) error {
	if r.TrackingChannelID == "" {
		return ErrNoChannel
	}
	if r.FindByPUUID(p.PUUID) != nil {
		return ErrAlreadyTracked
	}
	r.TrackedPlayers = append(r.TrackedPlayers, p)
	return nil
}

// RemovePlayer deletes a tracked player, matched case-insensitively by
// game name and tag, and returns the removed entry.
//
// Note the asymmetry with AddPlayer: duplicates are guarded by PUUID
// but removal matches on display name, so a player who renamed since
// being added can only be removed under their stored name.
func (r *Registry) RemovePlayer(gameName, tagLine string) (*TrackedPlayer, error) {
	for i, p := range r.TrackedPlayers {
		if strings.EqualFold(p.GameName, gameName) && strings.EqualFold(p.TagLine, tagLine) {
			r.TrackedPlayers = append(r.TrackedPlayers[:i], r.TrackedPlayers[i+1:]...)
			return p, nil
		}
	}
	return nil, ErrNotTracked
}
