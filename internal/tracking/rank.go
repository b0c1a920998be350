package tracking

import (
	"fmt"
	"strings"
)

// Fixed ordinal ladders for promotion/demotion detection. Unknown
// tiers and divisions map to 0 and sort below everything.
var tierOrder = map[string]int{
	"IRON":        1,
	"BRONZE":      2,
	"SILVER":      3,
	"GOLD":        4,
	"PLATINUM":    5,
	"EMERALD":     6,
	"DIAMOND":     7,
	"MASTER":      8,
	"GRANDMASTER": 9,
	"CHALLENGER":  10,
}

var divisionOrder = map[string]int{
	"IV":  1,
	"III": 2,
	"II":  3,
	"I":   4,
}

// compareRanks reports whether cur sits above (+1), below (-1) or
// level (0) with prev on the tier/division ladder. League points are
// not part of the comparison.
func compareRanks(prev, cur *RankSnapshot) int {
	prevTier := tierOrder[prev.Tier]
	curTier := tierOrder[cur.Tier]

	if curTier != prevTier {
		if curTier > prevTier {
			return 1
		}
		return -1
	}

	prevDiv := divisionOrder[prev.Rank]
	curDiv := divisionOrder[cur.Rank]
	switch {
	case curDiv > prevDiv:
		return 1
	case curDiv < prevDiv:
		return -1
	default:
		return 0
	}
}

// FormatRank renders a snapshot like "Gold II 55 LP"
func FormatRank(s *RankSnapshot) string {
	return fmt.Sprintf("%s %s %d LP", capitalize(s.Tier), s.Rank, s.LP)
}

// capitalize turns an API tier name like "GOLD" into "Gold"
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
