package tracking

import "context"

// Event is a change detected for a tracked player during a poll cycle
type Event interface {
	// Kind returns a short event name for logging
	Kind() string
}

// GameStarted fires when a player enters a live game
type GameStarted struct {
	Champion string
	GameMode string
}

func (GameStarted) Kind() string { return "game_started" }

// DuoHighlight surfaces a recurring teammate in a completed match
type DuoHighlight struct {
	Name     string
	Champion string
	Count    int
}

// MatchCompleted fires when a new completed match is detected
type MatchCompleted struct {
	MatchID     string
	Champion    string
	Kills       int
	Deaths      int
	Assists     int
	KDARatio    string // "6.00", or a whole number when deathless
	Win         bool
	DurationMin int64
	GameMode    string
	RankChange  string // formatted rank line, empty when unavailable
	DuoPartners []DuoHighlight
}

func (MatchCompleted) Kind() string { return "match_completed" }

// Promotion fires when a player crosses a tier/division boundary upward
type Promotion struct {
	Tier string
	Rank string
}

func (Promotion) Kind() string { return "promotion" }

// Demotion fires when a player crosses a tier/division boundary downward
type Demotion struct {
	Tier string
	Rank string
}

func (Demotion) Kind() string { return "demotion" }

// Notifier delivers events to the thread associated with a player
type Notifier interface {
	Post(ctx context.Context, player *TrackedPlayer, ev Event) error
}
