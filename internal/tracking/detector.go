package tracking

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/AlexTheSomething/lol-discord-bot/internal/riot"
)

// Provider is the slice of the Riot API the detector consumes.
// *riot.Client satisfies it; tests substitute a fake.
type Provider interface {
	GetActiveGame(ctx context.Context, puuid, region string) (*riot.ActiveGame, error)
	GetMatchIDs(ctx context.Context, puuid, region string, count int) ([]string, error)
	GetMatch(ctx context.Context, matchID, region string) (*riot.Match, error)
	GetLeagueEntries(ctx context.Context, puuid, region string) ([]riot.LeagueEntry, error)
	ChampionName(ctx context.Context, championID int) (string, error)
}

// Detector evaluates one tracked player per call, comparing fresh
// Provider data against the player's stored cursors. It mutates the
// cursor fields in place and returns the events that occurred.
type Detector struct {
	provider Provider
}

// NewDetector creates a detector backed by the given provider
func NewDetector(provider Provider) *Detector {
	return &Detector{provider: provider}
}

// Evaluate runs the live-game and match-history checks for a player.
// Each check isolates and logs its own failures so one bad API call
// never blocks the rest of the poll cycle; a failed check simply
// leaves the player's state for the next cycle.
func (d *Detector) Evaluate(ctx context.Context, p *TrackedPlayer) []Event {
	var events []Event

	if ev := d.checkLiveGame(ctx, p); ev != nil {
		events = append(events, ev)
	}
	events = append(events, d.checkNewMatch(ctx, p)...)

	return events
}

// checkLiveGame drives the in-game flag. Entering a game emits a
// GameStarted event; leaving one is only logged.
func (d *Detector) checkLiveGame(ctx context.Context, p *TrackedPlayer) Event {
	game, err := d.provider.GetActiveGame(ctx, p.PUUID, p.Region)
	if err != nil {
		slog.Error("Failed to check live game", "player", p.RiotID(), "error", err)
		return nil
	}

	switch {
	case game != nil && !p.IsInGame:
		p.IsInGame = true

		champion := "Unknown"
		for _, part := range game.Participants {
			if part.PUUID == p.PUUID {
				champion = d.championName(ctx, part.ChampionID)
				break
			}
		}

		gameMode := riot.QueueName(game.GameQueueConfigID)
		slog.Info("Player started a game", "player", p.RiotID(), "champion", champion, "gameMode", gameMode)
		return GameStarted{Champion: champion, GameMode: gameMode}

	case game == nil && p.IsInGame:
		p.IsInGame = false
		slog.Info("Player finished their game", "player", p.RiotID())
	}

	return nil
}

// checkNewMatch inspects the single most recent match id and, when it
// differs from the cursor, reports the completed match along with any
// duo, rank and promotion findings.
func (d *Detector) checkNewMatch(ctx context.Context, p *TrackedPlayer) []Event {
	ids, err := d.provider.GetMatchIDs(ctx, p.PUUID, p.Region, 1)
	if err != nil {
		slog.Error("Failed to check match history", "player", p.RiotID(), "error", err)
		return nil
	}
	if len(ids) == 0 {
		return nil
	}

	latest := ids[0]
	if latest == p.LastMatchID {
		return nil
	}
	if !newerMatch(latest, p.LastMatchID) {
		slog.Warn("Ignoring stale match id", "player", p.RiotID(), "matchID", latest, "cursor", p.LastMatchID)
		return nil
	}

	// Advance the cursor before fetching details so a failed fetch is
	// not retried forever against the same match.
	p.LastMatchID = latest

	match, err := d.provider.GetMatch(ctx, latest, p.Region)
	if err != nil {
		slog.Error("Failed to fetch match details", "player", p.RiotID(), "matchID", latest, "error", err)
		return nil
	}

	participant := match.FindParticipant(p.PUUID)
	if participant == nil {
		slog.Error("Tracked player missing from match participants", "player", p.RiotID(), "matchID", latest)
		return nil
	}

	isRankedSolo := match.Info.QueueID == riot.QueueRankedSolo

	ev := MatchCompleted{
		MatchID:     latest,
		Champion:    d.championName(ctx, participant.ChampionID),
		Kills:       participant.Kills,
		Deaths:      participant.Deaths,
		Assists:     participant.Assists,
		KDARatio:    formatKDARatio(participant.Kills, participant.Deaths, participant.Assists),
		Win:         participant.Win,
		DurationMin: match.Info.GameDuration / 60,
		GameMode:    riot.QueueName(match.Info.QueueID),
		DuoPartners: d.detectDuoPartners(ctx, match, p, participant.TeamID),
	}

	if isRankedSolo {
		ev.RankChange = d.checkRankChange(ctx, p)
	}

	events := []Event{ev}

	if isRankedSolo {
		if promo := checkPromotion(p); promo != nil {
			events = append(events, promo)
		}
	}

	result := "Defeat"
	if participant.Win {
		result = "Victory"
	}
	slog.Info("Player finished a match", "player", p.RiotID(), "result", result, "champion", ev.Champion, "gameMode", ev.GameMode)

	return events
}

// detectDuoPartners bumps the games-together counter for every
// same-team participant and highlights teammates seen 3+ times
func (d *Detector) detectDuoPartners(ctx context.Context, match *riot.Match, p *TrackedPlayer, teamID int) []DuoHighlight {
	if p.DuoPartners == nil {
		p.DuoPartners = make(map[string]*DuoPartner)
	}

	var highlights []DuoHighlight
	for i := range match.Info.Participants {
		mate := &match.Info.Participants[i]
		if mate.PUUID == p.PUUID || mate.TeamID != teamID {
			continue
		}

		partner, ok := p.DuoPartners[mate.PUUID]
		if !ok {
			p.DuoPartners[mate.PUUID] = &DuoPartner{Name: mate.RiotID(), Count: 1}
			continue
		}

		partner.Count++
		if partner.Count >= 3 {
			highlights = append(highlights, DuoHighlight{
				Name:     partner.Name,
				Champion: d.championName(ctx, mate.ChampionID),
				Count:    partner.Count,
			})
		}
	}

	return highlights
}

// checkRankChange syncs the solo queue rank snapshot and returns the
// formatted rank line for the match embed, or "" when there is
// nothing to show. The snapshot is always updated to the latest
// observation, whether or not a change is reported.
func (d *Detector) checkRankChange(ctx context.Context, p *TrackedPlayer) string {
	entries, err := d.provider.GetLeagueEntries(ctx, p.PUUID, p.Region)
	if err != nil {
		slog.Error("Failed to check rank change", "player", p.RiotID(), "error", err)
		return ""
	}

	solo := riot.FindSoloEntry(entries)
	if solo == nil {
		return "" // not ranked
	}

	current := &RankSnapshot{Tier: solo.Tier, Rank: solo.Rank, LP: solo.LeaguePoints}

	// First observation ever: store the baseline, nothing to compare
	if p.LastRank == nil {
		p.LastRank = current
		return ""
	}

	lpChange := current.LP - p.LastRank.LP
	p.LastRank = current

	display := FormatRank(current)
	if lpChange == 0 {
		return display
	}

	arrow := "📈"
	sign := "+"
	if lpChange < 0 {
		arrow = "📉"
		sign = ""
	}
	return fmt.Sprintf("%s (%s%d LP) %s", display, sign, lpChange, arrow)
}

// checkPromotion compares the freshly synced rank snapshot against the
// snapshot of the previous comparison and emits a Promotion or
// Demotion event on a strict tier/division ordinal change. The
// comparison snapshot is always rolled forward afterwards.
func checkPromotion(p *TrackedPlayer) Event {
	if p.LastRank == nil {
		return nil
	}
	if p.PrevLastRank == nil {
		// Seed the comparison baseline; nothing to report yet
		p.PrevLastRank = p.LastRank.Clone()
		return nil
	}

	prev := p.PrevLastRank
	current := p.LastRank
	p.PrevLastRank = current.Clone()

	switch compareRanks(prev, current) {
	case 1:
		return Promotion{Tier: current.Tier, Rank: current.Rank}
	case -1:
		return Demotion{Tier: current.Tier, Rank: current.Rank}
	}
	return nil
}

// championName resolves a champion ID, falling back to a placeholder
// when static data is unavailable
func (d *Detector) championName(ctx context.Context, championID int) string {
	name, err := d.provider.ChampionName(ctx, championID)
	if err != nil {
		slog.Error("Failed to resolve champion name", "championID", championID, "error", err)
		return "Unknown Champion"
	}
	return name
}

// formatKDARatio renders (kills+assists)/deaths with two decimals, or
// kills+assists as a plain whole number for deathless games
func formatKDARatio(kills, deaths, assists int) string {
	if deaths > 0 {
		return strconv.FormatFloat(float64(kills+assists)/float64(deaths), 'f', 2, 64)
	}
	return strconv.Itoa(kills + assists)
}

// matchNumber extracts the numeric portion of a match id such as
// "EUN1_3674428943"
func matchNumber(id string) (int64, bool) {
	_, num, found := strings.Cut(id, "_")
	if !found {
		return 0, false
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// newerMatch reports whether candidate is more recent than the stored
// cursor, so the cursor never regresses when the API serves stale
// data. Ids that don't follow the expected format are assumed newer.
func newerMatch(candidate, cursor string) bool {
	if cursor == "" {
		return true
	}
	cand, ok1 := matchNumber(candidate)
	cur, ok2 := matchNumber(cursor)
	if !ok1 || !ok2 {
		return true
	}
	return cand > cur
}
