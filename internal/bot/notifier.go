package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/AlexTheSomething/lol-discord-bot/internal/tracking"
)

// Notifier posts detector events into each player's thread
type Notifier struct {
	session *discordgo.Session
}

// NewNotifier creates a Notifier bound to a Discord session
func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{session: session}
}

// Post delivers one event to the player's thread
func (n *Notifier) Post(ctx context.Context, player *tracking.TrackedPlayer, ev tracking.Event) error {
	switch e := ev.(type) {
	case tracking.GameStarted:
		return n.postGameStarted(player, e)
	case tracking.MatchCompleted:
		return n.postMatchCompleted(player, e)
	case tracking.Promotion:
		return n.postMessage(player, fmt.Sprintf("🎉 **PROMOTION!** %s has been promoted to **%s %s**! 🎉",
			player.RiotID(), capitalizeTier(e.Tier), e.Rank))
	case tracking.Demotion:
		return n.postMessage(player, fmt.Sprintf("😢 %s was demoted to **%s %s**",
			player.RiotID(), capitalizeTier(e.Tier), e.Rank))
	default:
		return fmt.Errorf("unknown event kind: %s", ev.Kind())
	}
}

func (n *Notifier) postGameStarted(player *tracking.TrackedPlayer, e tracking.GameStarted) error {
	embed := &discordgo.MessageEmbed{
		Title:       "🎮 Live Game Started!",
		Description: fmt.Sprintf("**%s** is now in game!", player.RiotID()),
		Color:       colorVictory,
		Timestamp:   time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Playing As", Value: e.Champion, Inline: true},
			{Name: "Game Mode", Value: e.GameMode, Inline: true},
		},
	}

	_, err := n.session.ChannelMessageSendEmbed(player.ThreadID, embed)
	return err
}

func (n *Notifier) postMatchCompleted(player *tracking.TrackedPlayer, e tracking.MatchCompleted) error {
	color := colorDefeat
	resultText := "❌ Defeat"
	if e.Win {
		color = colorVictory
		resultText = "✅ Victory"
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s - New Match Detected!", resultText),
		Description: fmt.Sprintf("**%s** just finished a match!", player.RiotID()),
		Color:       color,
		Timestamp:   time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Champion", Value: e.Champion, Inline: true},
			{Name: "KDA", Value: fmt.Sprintf("%d/%d/%d (%s)", e.Kills, e.Deaths, e.Assists, e.KDARatio), Inline: true},
			{Name: "Game Mode", Value: e.GameMode, Inline: true},
			{Name: "Duration", Value: fmt.Sprintf("%dmin", e.DurationMin), Inline: true},
		},
	}

	if e.RankChange != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "📊 Rank Change", Value: e.RankChange, Inline: false,
		})
	}

	if len(e.DuoPartners) > 0 {
		lines := make([]string, len(e.DuoPartners))
		for idx, duo := range e.DuoPartners {
			lines[idx] = fmt.Sprintf("**%s** (%s) - %d games together", duo.Name, duo.Champion, duo.Count)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "🤝 Duo Partners", Value: strings.Join(lines, "\n"), Inline: false,
		})
	}

	_, err := n.session.ChannelMessageSendEmbed(player.ThreadID, embed)
	return err
}

func (n *Notifier) postMessage(player *tracking.TrackedPlayer, content string) error {
	_, err := n.session.ChannelMessageSend(player.ThreadID, content)
	return err
}

func capitalizeTier(tier string) string {
	if tier == "" {
		return tier
	}
	return strings.ToUpper(tier[:1]) + strings.ToLower(tier[1:])
}
