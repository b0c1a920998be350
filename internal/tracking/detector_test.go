package tracking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/AlexTheSomething/lol-discord-bot/internal/riot"
)

const (
	testPUUID  = "abc"
	testRegion = "eun1"
)

// fakeProvider is a scriptable Provider for detector tests
type fakeProvider struct {
	activeGame    *riot.ActiveGame
	activeGameErr error

	matchIDs    []string
	matchIDsErr error

	matches  map[string]*riot.Match
	matchErr error

	entries    []riot.LeagueEntry
	entriesErr error

	champions map[int]string
}

func (f *fakeProvider) GetActiveGame(ctx context.Context, puuid, region string) (*riot.ActiveGame, error) {
	return f.activeGame, f.activeGameErr
}

func (f *fakeProvider) GetMatchIDs(ctx context.Context, puuid, region string, count int) ([]string, error) {
	return f.matchIDs, f.matchIDsErr
}

func (f *fakeProvider) GetMatch(ctx context.Context, matchID, region string) (*riot.Match, error) {
	if f.matchErr != nil {
		return nil, f.matchErr
	}
	m, ok := f.matches[matchID]
	if !ok {
		return nil, errors.New("no such match")
	}
	return m, nil
}

func (f *fakeProvider) GetLeagueEntries(ctx context.Context, puuid, region string) ([]riot.LeagueEntry, error) {
	return f.entries, f.entriesErr
}

func (f *fakeProvider) ChampionName(ctx context.Context, championID int) (string, error) {
	if name, ok := f.champions[championID]; ok {
		return name, nil
	}
	return "Unknown Champion", nil
}

func newTestPlayer() *TrackedPlayer {
	return &TrackedPlayer{
		PUUID:    testPUUID,
		GameName: "Faker",
		TagLine:  "KR1",
		Region:   testRegion,
		ThreadID: "thread-1",
	}
}

// buildMatch creates a match with the tracked player on team 100 and
// the given teammates alongside them
func buildMatch(matchID string, queueID int, win bool, teammates ...riot.Participant) *riot.Match {
	participants := []riot.Participant{
		{
			PUUID:          testPUUID,
			RiotIDGameName: "Faker",
			RiotIDTagline:  "KR1",
			ChampionID:     1,
			TeamID:         100,
			Win:            win,
			Kills:          5,
			Deaths:         2,
			Assists:        7,
		},
	}
	participants = append(participants, teammates...)
	return &riot.Match{
		Metadata: riot.MatchMetadata{MatchID: matchID},
		Info: riot.MatchInfo{
			QueueID:      queueID,
			GameDuration: 1543,
			Participants: participants,
		},
	}
}

func teammate(puuid, name string, championID int) riot.Participant {
	return riot.Participant{
		PUUID:          puuid,
		RiotIDGameName: name,
		RiotIDTagline:  "EUW",
		ChampionID:     championID,
		TeamID:         100,
	}
}

func soloEntry(tier, rank string, lp int) riot.LeagueEntry {
	return riot.LeagueEntry{
		QueueType:    riot.QueueTypeRankedSolo,
		Tier:         tier,
		Rank:         rank,
		LeaguePoints: lp,
	}
}

func matchEvents(t *testing.T, events []Event) []MatchCompleted {
	t.Helper()
	var out []MatchCompleted
	for _, ev := range events {
		if m, ok := ev.(MatchCompleted); ok {
			out = append(out, m)
		}
	}
	return out
}

func TestLiveGameTransitions(t *testing.T) {
	provider := &fakeProvider{
		champions: map[int]string{10: "Kayle"},
		activeGame: &riot.ActiveGame{
			GameQueueConfigID: 450,
			Participants: []riot.ActiveGameParticipant{
				{PUUID: testPUUID, ChampionID: 10},
			},
		},
	}
	d := NewDetector(provider)
	p := newTestPlayer()

	// Cycle K: player enters a game
	events := d.Evaluate(context.Background(), p)
	if len(events) != 1 {
		t.Fatalf("want 1 event, got %d", len(events))
	}
	started, ok := events[0].(GameStarted)
	if !ok {
		t.Fatalf("want GameStarted, got %T", events[0])
	}
	if started.Champion != "Kayle" {
		t.Errorf("champion = %q, want Kayle", started.Champion)
	}
	if started.GameMode != "ARAM" {
		t.Errorf("game mode = %q, want ARAM", started.GameMode)
	}
	if !p.IsInGame {
		t.Error("in-game flag not set")
	}

	// Cycle K+1: still in the same game, no new event
	if events := d.Evaluate(context.Background(), p); len(events) != 0 {
		t.Fatalf("want 0 events while still in game, got %d", len(events))
	}

	// Game ends: flag clears, nothing is posted
	provider.activeGame = nil
	if events := d.Evaluate(context.Background(), p); len(events) != 0 {
		t.Fatalf("want 0 events on game end, got %d", len(events))
	}
	if p.IsInGame {
		t.Error("in-game flag not cleared")
	}
}

func TestLiveGameUnknownParticipant(t *testing.T) {
	provider := &fakeProvider{
		activeGame: &riot.ActiveGame{
			GameQueueConfigID: 99999,
			Participants: []riot.ActiveGameParticipant{
				{PUUID: "someone-else", ChampionID: 10},
			},
		},
	}
	d := NewDetector(provider)
	p := newTestPlayer()

	events := d.Evaluate(context.Background(), p)
	if len(events) != 1 {
		t.Fatalf("want 1 event, got %d", len(events))
	}
	started := events[0].(GameStarted)
	if started.Champion != "Unknown" {
		t.Errorf("champion = %q, want Unknown", started.Champion)
	}
	if started.GameMode != "Unknown Mode (99999)" {
		t.Errorf("game mode = %q, want Unknown Mode (99999)", started.GameMode)
	}
}

func TestNewMatchIdempotent(t *testing.T) {
	provider := &fakeProvider{
		matchIDs: []string{"EUN1_100"},
		matches: map[string]*riot.Match{
			"EUN1_100": buildMatch("EUN1_100", 450, true),
		},
	}
	d := NewDetector(provider)
	p := newTestPlayer()

	// Cycle 1: the match is reported
	events := d.Evaluate(context.Background(), p)
	completed := matchEvents(t, events)
	if len(completed) != 1 {
		t.Fatalf("want 1 MatchCompleted, got %d", len(completed))
	}
	if p.LastMatchID != "EUN1_100" {
		t.Errorf("cursor = %q, want EUN1_100", p.LastMatchID)
	}
	ev := completed[0]
	if !ev.Win || ev.Kills != 5 || ev.Deaths != 2 || ev.Assists != 7 {
		t.Errorf("unexpected match stats: %+v", ev)
	}
	if ev.KDARatio != "6.00" {
		t.Errorf("KDA ratio = %q, want 6.00", ev.KDARatio)
	}
	if ev.DurationMin != 25 {
		t.Errorf("duration = %d, want 25", ev.DurationMin)
	}

	// Cycle 2: same match id, nothing new
	if events := d.Evaluate(context.Background(), p); len(events) != 0 {
		t.Fatalf("want 0 events on repeated match id, got %d", len(events))
	}
}

func TestCursorNeverRegresses(t *testing.T) {
	provider := &fakeProvider{
		matchIDs: []string{"EUN1_200"},
		matches: map[string]*riot.Match{
			"EUN1_200": buildMatch("EUN1_200", 450, true),
			"EUN1_150": buildMatch("EUN1_150", 450, false),
		},
	}
	d := NewDetector(provider)
	p := newTestPlayer()

	d.Evaluate(context.Background(), p)
	if p.LastMatchID != "EUN1_200" {
		t.Fatalf("cursor = %q, want EUN1_200", p.LastMatchID)
	}

	// Provider serves a stale, older match id
	provider.matchIDs = []string{"EUN1_150"}
	events := d.Evaluate(context.Background(), p)
	if len(events) != 0 {
		t.Fatalf("want 0 events for stale match id, got %d", len(events))
	}
	if p.LastMatchID != "EUN1_200" {
		t.Errorf("cursor regressed to %q", p.LastMatchID)
	}
}

func TestMissingParticipantAbortsMatchCheck(t *testing.T) {
	match := buildMatch("EUN1_300", 450, true)
	match.Info.Participants = match.Info.Participants[1:] // drop the tracked player

	provider := &fakeProvider{
		matchIDs: []string{"EUN1_300"},
		matches:  map[string]*riot.Match{"EUN1_300": match},
	}
	d := NewDetector(provider)
	p := newTestPlayer()

	events := d.Evaluate(context.Background(), p)
	if len(events) != 0 {
		t.Fatalf("want 0 events, got %d", len(events))
	}
	// The cursor still advances so the bad match is not refetched forever
	if p.LastMatchID != "EUN1_300" {
		t.Errorf("cursor = %q, want EUN1_300", p.LastMatchID)
	}
}

func TestProviderFailureLeavesStateUntouched(t *testing.T) {
	provider := &fakeProvider{
		activeGameErr: errors.New("boom"),
		matchIDsErr:   errors.New("boom"),
	}
	d := NewDetector(provider)
	p := newTestPlayer()
	p.LastMatchID = "EUN1_400"
	p.IsInGame = true

	events := d.Evaluate(context.Background(), p)
	if len(events) != 0 {
		t.Fatalf("want 0 events, got %d", len(events))
	}
	if p.LastMatchID != "EUN1_400" || !p.IsInGame {
		t.Errorf("state changed on provider failure: %+v", p)
	}
}

func TestDuoCounterAndHighlightThreshold(t *testing.T) {
	provider := &fakeProvider{
		champions: map[int]string{2: "Annie"},
	}
	d := NewDetector(provider)
	p := newTestPlayer()

	const games = 4
	for n := 1; n <= games; n++ {
		id := fmt.Sprintf("EUN1_%d", n)
		provider.matchIDs = []string{id}
		provider.matches = map[string]*riot.Match{
			id: buildMatch(id, 450, true,
				teammate("duo-1", "Buddy", 2),
				riot.Participant{PUUID: "enemy-1", TeamID: 200, ChampionID: 3},
			),
		}

		events := matchEvents(t, d.Evaluate(context.Background(), p))
		if len(events) != 1 {
			t.Fatalf("cycle %d: want 1 MatchCompleted, got %d", n, len(events))
		}

		partner := p.DuoPartners["duo-1"]
		if partner == nil || partner.Count != n {
			t.Fatalf("cycle %d: duo count = %+v, want %d", n, partner, n)
		}
		if _, tracked := p.DuoPartners["enemy-1"]; tracked {
			t.Fatal("enemy team participant was counted as a duo partner")
		}

		highlights := events[0].DuoPartners
		if n < 3 {
			if len(highlights) != 0 {
				t.Fatalf("cycle %d: want no highlight below threshold, got %v", n, highlights)
			}
			continue
		}
		if len(highlights) != 1 {
			t.Fatalf("cycle %d: want 1 highlight, got %d", n, len(highlights))
		}
		h := highlights[0]
		if h.Count != n || h.Name != "Buddy#EUW" || h.Champion != "Annie" {
			t.Errorf("cycle %d: highlight = %+v", n, h)
		}
	}
}

func TestRankChangeFirstObservationSeedsSnapshot(t *testing.T) {
	provider := &fakeProvider{
		matchIDs: []string{"EUN1_500"},
		matches:  map[string]*riot.Match{"EUN1_500": buildMatch("EUN1_500", riot.QueueRankedSolo, true)},
		entries:  []riot.LeagueEntry{soloEntry("GOLD", "II", 40)},
	}
	d := NewDetector(provider)
	p := newTestPlayer()

	events := matchEvents(t, d.Evaluate(context.Background(), p))
	if len(events) != 1 {
		t.Fatalf("want 1 MatchCompleted, got %d", len(events))
	}
	if events[0].RankChange != "" {
		t.Errorf("first observation should report no rank change, got %q", events[0].RankChange)
	}
	if p.LastRank == nil || p.LastRank.LP != 40 {
		t.Errorf("snapshot not seeded: %+v", p.LastRank)
	}
}

func TestRankChangeLPDelta(t *testing.T) {
	tests := []struct {
		name    string
		prevLP  int
		curLP   int
		want    string
	}{
		{"gain", 40, 55, "Gold II 55 LP (+15 LP) 📈"},
		{"loss", 40, 22, "Gold II 22 LP (-18 LP) 📉"},
		{"no change", 40, 40, "Gold II 40 LP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{
				matchIDs: []string{"EUN1_600"},
				matches:  map[string]*riot.Match{"EUN1_600": buildMatch("EUN1_600", riot.QueueRankedSolo, true)},
				entries:  []riot.LeagueEntry{soloEntry("GOLD", "II", tt.curLP)},
			}
			d := NewDetector(provider)
			p := newTestPlayer()
			p.LastRank = &RankSnapshot{Tier: "GOLD", Rank: "II", LP: tt.prevLP}

			events := matchEvents(t, d.Evaluate(context.Background(), p))
			if len(events) != 1 {
				t.Fatalf("want 1 MatchCompleted, got %d", len(events))
			}
			if events[0].RankChange != tt.want {
				t.Errorf("rank change = %q, want %q", events[0].RankChange, tt.want)
			}
			if p.LastRank.LP != tt.curLP {
				t.Errorf("snapshot not synced, LP = %d", p.LastRank.LP)
			}
		})
	}
}

func TestRankChangeSkippedForUnrankedQueues(t *testing.T) {
	provider := &fakeProvider{
		matchIDs: []string{"EUN1_700"},
		matches:  map[string]*riot.Match{"EUN1_700": buildMatch("EUN1_700", 450, true)},
		entries:  []riot.LeagueEntry{soloEntry("GOLD", "II", 77)},
	}
	d := NewDetector(provider)
	p := newTestPlayer()

	events := matchEvents(t, d.Evaluate(context.Background(), p))
	if events[0].RankChange != "" {
		t.Errorf("ARAM match should not report rank info, got %q", events[0].RankChange)
	}
	if p.LastRank != nil {
		t.Errorf("snapshot must not be touched for unranked queues: %+v", p.LastRank)
	}
}

func TestPromotionAndDemotion(t *testing.T) {
	tests := []struct {
		name string
		prev RankSnapshot
		cur  RankSnapshot
		want string // "", "promotion" or "demotion"
	}{
		{"division up", RankSnapshot{"GOLD", "II", 75}, RankSnapshot{"GOLD", "I", 10}, "promotion"},
		{"tier up", RankSnapshot{"GOLD", "I", 100}, RankSnapshot{"PLATINUM", "IV", 0}, "promotion"},
		{"tier up any division", RankSnapshot{"GOLD", "I", 100}, RankSnapshot{"PLATINUM", "II", 0}, "promotion"},
		{"division down", RankSnapshot{"GOLD", "I", 0}, RankSnapshot{"GOLD", "II", 75}, "demotion"},
		{"tier down", RankSnapshot{"PLATINUM", "IV", 0}, RankSnapshot{"GOLD", "I", 50}, "demotion"},
		{"lp only", RankSnapshot{"GOLD", "II", 40}, RankSnapshot{"GOLD", "II", 55}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{
				matchIDs: []string{"EUN1_800"},
				matches:  map[string]*riot.Match{"EUN1_800": buildMatch("EUN1_800", riot.QueueRankedSolo, true)},
				entries:  []riot.LeagueEntry{soloEntry(tt.cur.Tier, tt.cur.Rank, tt.cur.LP)},
			}
			d := NewDetector(provider)
			p := newTestPlayer()
			p.LastRank = tt.prev.Clone()
			p.PrevLastRank = tt.prev.Clone()

			events := d.Evaluate(context.Background(), p)

			var got string
			for _, ev := range events {
				switch ev.(type) {
				case Promotion:
					got = "promotion"
				case Demotion:
					got = "demotion"
				}
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			// The comparison baseline always rolls forward
			if p.PrevLastRank == nil || p.PrevLastRank.Tier != tt.cur.Tier || p.PrevLastRank.Rank != tt.cur.Rank {
				t.Errorf("baseline not rolled forward: %+v", p.PrevLastRank)
			}
		})
	}
}

func TestPromotionFiresExactlyOnce(t *testing.T) {
	provider := &fakeProvider{
		entries: []riot.LeagueEntry{soloEntry("GOLD", "I", 10)},
	}
	d := NewDetector(provider)
	p := newTestPlayer()
	p.LastRank = &RankSnapshot{Tier: "GOLD", Rank: "II", LP: 75}
	p.PrevLastRank = &RankSnapshot{Tier: "GOLD", Rank: "II", LP: 75}

	countPromotions := func(events []Event) int {
		n := 0
		for _, ev := range events {
			if _, ok := ev.(Promotion); ok {
				n++
			}
		}
		return n
	}

	// Cycle 1: Gold II -> Gold I
	provider.matchIDs = []string{"EUN1_900"}
	provider.matches = map[string]*riot.Match{"EUN1_900": buildMatch("EUN1_900", riot.QueueRankedSolo, true)}
	if n := countPromotions(d.Evaluate(context.Background(), p)); n != 1 {
		t.Fatalf("cycle 1: want 1 promotion, got %d", n)
	}

	// Cycle 2: still Gold I, no repeat
	provider.matchIDs = []string{"EUN1_901"}
	provider.matches = map[string]*riot.Match{"EUN1_901": buildMatch("EUN1_901", riot.QueueRankedSolo, true)}
	if n := countPromotions(d.Evaluate(context.Background(), p)); n != 0 {
		t.Fatalf("cycle 2: want 0 promotions, got %d", n)
	}
}

func TestPromotionBaselineSeededSilently(t *testing.T) {
	provider := &fakeProvider{
		matchIDs: []string{"EUN1_950"},
		matches:  map[string]*riot.Match{"EUN1_950": buildMatch("EUN1_950", riot.QueueRankedSolo, true)},
		entries:  []riot.LeagueEntry{soloEntry("GOLD", "II", 40)},
	}
	d := NewDetector(provider)
	p := newTestPlayer()
	p.LastRank = &RankSnapshot{Tier: "GOLD", Rank: "II", LP: 20}

	events := d.Evaluate(context.Background(), p)
	for _, ev := range events {
		if _, ok := ev.(Promotion); ok {
			t.Fatal("promotion reported while seeding the baseline")
		}
		if _, ok := ev.(Demotion); ok {
			t.Fatal("demotion reported while seeding the baseline")
		}
	}
	if p.PrevLastRank == nil {
		t.Fatal("baseline not seeded")
	}
}

func TestFormatKDARatio(t *testing.T) {
	tests := []struct {
		kills, deaths, assists int
		want                   string
	}{
		{5, 2, 7, "6.00"},
		{10, 3, 5, "5.00"},
		{7, 2, 4, "5.50"},
		{5, 0, 7, "12"},
		{0, 0, 0, "0"},
	}
	for _, tt := range tests {
		if got := formatKDARatio(tt.kills, tt.deaths, tt.assists); got != tt.want {
			t.Errorf("formatKDARatio(%d,%d,%d) = %q, want %q", tt.kills, tt.deaths, tt.assists, got, tt.want)
		}
	}
}

func TestNewerMatch(t *testing.T) {
	tests := []struct {
		candidate, cursor string
		want              bool
	}{
		{"EUN1_200", "", true},
		{"EUN1_200", "EUN1_100", true},
		{"EUN1_100", "EUN1_200", false},
		{"EUN1_100", "EUN1_100", false},
		{"weird-id", "EUN1_100", true},
		{"EUN1_200", "weird-id", true},
	}
	for _, tt := range tests {
		if got := newerMatch(tt.candidate, tt.cursor); got != tt.want {
			t.Errorf("newerMatch(%q, %q) = %v, want %v", tt.candidate, tt.cursor, got, tt.want)
		}
	}
}

func TestMatchEventGameModeLabel(t *testing.T) {
	provider := &fakeProvider{
		matchIDs: []string{"EUN1_990"},
		matches:  map[string]*riot.Match{"EUN1_990": buildMatch("EUN1_990", 1700, true)},
	}
	d := NewDetector(provider)
	p := newTestPlayer()

	events := matchEvents(t, d.Evaluate(context.Background(), p))
	if len(events) != 1 {
		t.Fatalf("want 1 event, got %d", len(events))
	}
	if events[0].GameMode != "Arena" {
		t.Errorf("game mode = %q, want Arena", events[0].GameMode)
	}
	if !strings.HasPrefix(events[0].MatchID, "EUN1_") {
		t.Errorf("match id = %q", events[0].MatchID)
	}
}
