package riot

import "fmt"

// QueueRankedSolo is the queue ID for Ranked Solo/Duo, the only queue
// that feeds rank change and promotion detection.
const QueueRankedSolo = 420

var queueNames = map[int]string{
	0:    "Custom Game",
	400:  "Normal Draft",
	420:  "Ranked Solo/Duo",
	430:  "Normal Blind",
	440:  "Ranked Flex",
	450:  "ARAM",
	700:  "Clash",
	830:  "Co-op vs AI (Intro)",
	840:  "Co-op vs AI (Beginner)",
	850:  "Co-op vs AI (Intermediate)",
	900:  "URF",
	1020: "One For All",
	1300: "Nexus Blitz",
	1400: "Ultimate Spellbook",
	1700: "Arena",
	1900: "Pick URF",
	2000: "Tutorial",
}

// QueueName converts a queue ID to a readable game mode name
func QueueName(queueID int) string {
	if name, ok := queueNames[queueID]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Mode (%d)", queueID)
}
