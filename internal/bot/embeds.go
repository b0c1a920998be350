package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/AlexTheSomething/lol-discord-bot/internal/riot"
)

// Embed colors
const (
	embedColor   = 0x0397AB // Riot Games blue
	colorVictory = 0x00FF00
	colorDefeat  = 0xFF0000
	colorError   = 0xE74C3C
)

// basicEmbed creates an embed with the standard bot color
func basicEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       embedColor,
	}
}

// errorEmbed creates a red error embed
func errorEmbed(description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "❌ Error",
		Description: description,
		Color:       colorError,
	}
}

// summonerEmbed shows basic account info for a thread's intro post
func summonerEmbed(account *riot.Account, summoner *riot.Summoner, region string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: account.RiotID(),
		Color: embedColor,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: riot.ProfileIconURL(summoner.ProfileIconID),
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Level", Value: fmt.Sprintf("%d", summoner.SummonerLevel), Inline: true},
			{Name: "Region", Value: strings.ToUpper(region), Inline: true},
		},
	}
}

// rankEmbed shows a player's ranked standing across queues
func rankEmbed(fullName string, entries []riot.LeagueEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🏆 Ranked Stats - %s", fullName),
		Color: embedColor,
	}

	if len(entries) == 0 {
		embed.Description = "This player is unranked in all queues."
		return embed
	}

	for _, entry := range entries {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   queueDisplayName(entry.QueueType),
			Value:  formatLeagueEntry(entry),
			Inline: false,
		})
	}

	return embed
}

// queueDisplayName translates League-V4 queue types to labels
func queueDisplayName(queueType string) string {
	switch queueType {
	case riot.QueueTypeRankedSolo:
		return "Ranked Solo/Duo"
	case "RANKED_FLEX_SR":
		return "Ranked Flex"
	default:
		return queueType
	}
}

// formatLeagueEntry renders one ranked entry like
// "Gold II - 45 LP\n120W / 110L (52.2% WR)"
func formatLeagueEntry(entry riot.LeagueEntry) string {
	tier := entry.Tier
	if tier == "" {
		return "Unranked"
	}
	tier = strings.ToUpper(tier[:1]) + strings.ToLower(tier[1:])

	line := fmt.Sprintf("%s %s - %d LP", tier, entry.Rank, entry.LeaguePoints)

	total := entry.Wins + entry.Losses
	if total > 0 {
		winrate := float64(entry.Wins) / float64(total) * 100
		line += fmt.Sprintf("\n%dW / %dL (%.1f%% WR)", entry.Wins, entry.Losses, winrate)
	}
	if entry.HotStreak {
		line += " 🔥"
	}
	return line
}
