package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/AlexTheSomething/lol-discord-bot/internal/riot"
	"github.com/AlexTheSomething/lol-discord-bot/internal/tracking"
)

const lookupTimeout = 10 * time.Second

// Slash command definitions
func (b *Bot) getCommandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "stalk",
			Description: "Player stalking system",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Set the stalking channel (forum or text channel)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "channel",
							Description: "The channel where player threads will be created",
							Required:    true,
							ChannelTypes: []discordgo.ChannelType{
								discordgo.ChannelTypeGuildText,
								discordgo.ChannelTypeGuildForum,
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "unset",
					Description: "Remove the stalking channel configuration",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add a player to stalk (creates a thread)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "game_name",
							Description: "Player's game name (without tag)",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "tag_line",
							Description: "Player's tag (without #)",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List all stalked players",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Stop stalking a player (archives the thread)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "game_name",
							Description: "Player's game name (without tag)",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "tag_line",
							Description: "Player's tag (without #)",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "rank",
			Description: "Show a player's current ranked standing",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "game_name",
					Description: "Player's game name (without tag)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "tag_line",
					Description: "Player's tag (without #)",
					Required:    true,
				},
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	slog.Info("Registering slash commands")

	commandDefinitions := b.getCommandDefinitions()
	registeredCommands := make([]*discordgo.ApplicationCommand, 0, len(commandDefinitions))

	for _, cmd := range commandDefinitions {
		registered, err := b.session.ApplicationCommandCreate(
			b.session.State.User.ID,
			"", // Empty string = global command
			cmd,
		)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		registeredCommands = append(registeredCommands, registered)
		slog.Debug("Registered command", "name", cmd.Name)
	}

	b.commands = registeredCommands
	slog.Info("Slash commands registered", "count", len(registeredCommands))
	return nil
}

// deferResponse acknowledges the interaction so the handler has time
// for API calls
func (b *Bot) deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		slog.Error("Failed to defer interaction", "error", err)
	}
}

// respondEmbed edits the deferred response with an embed
func (b *Bot) respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// respondError edits the deferred response with an error embed
func (b *Bot) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, format string, args ...any) {
	b.respondEmbed(s, i, errorEmbed(fmt.Sprintf(format, args...)))
}

// handleStalk dispatches the /stalk subcommands
func (b *Bot) handleStalk(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub := i.ApplicationCommandData().Options[0]

	b.deferResponse(s, i)

	switch sub.Name {
	case "set":
		b.handleStalkSet(s, i, sub)
	case "unset":
		b.handleStalkUnset(s, i)
	case "add":
		b.handleStalkAdd(s, i, sub)
	case "list":
		b.handleStalkList(s, i)
	case "remove":
		b.handleStalkRemove(s, i, sub)
	default:
		slog.Warn("Unknown stalk subcommand", "subcommand", sub.Name)
	}
}

// handleStalkSet handles /stalk set
func (b *Bot) handleStalkSet(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	channel := sub.Options[0].ChannelValue(s)
	if channel == nil {
		b.respondError(s, i, "Could not resolve that channel.")
		return
	}

	// The bot must be able to create threads there before we accept it
	perms, err := s.UserChannelPermissions(s.State.User.ID, channel.ID)
	if err != nil {
		b.respondError(s, i, "Could not check my permissions in that channel: %s", err)
		return
	}

	if channel.Type == discordgo.ChannelTypeGuildForum {
		if perms&discordgo.PermissionSendMessages == 0 {
			b.respondError(s, i, "I don't have permission to create posts in that forum channel!\n\nRequired permissions:\n• Send Messages")
			return
		}
	} else {
		if perms&discordgo.PermissionSendMessages == 0 || perms&discordgo.PermissionCreatePublicThreads == 0 {
			b.respondError(s, i, "I don't have permission to send messages and create threads in that channel!\n\nRequired permissions:\n• Send Messages\n• Create Public Threads")
			return
		}
	}

	err = b.store.Update(func(reg *tracking.Registry) (bool, error) {
		reg.SetChannel(channel.ID)
		return true, nil
	})
	if err != nil {
		b.respondError(s, i, "Failed to save the stalking channel: %s", err)
		return
	}

	channelType := "text channel"
	if channel.Type == discordgo.ChannelTypeGuildForum {
		channelType = "forum"
	}

	b.respondEmbed(s, i, basicEmbed(
		"✅ Stalking Channel Set",
		fmt.Sprintf("Player stalking threads will be created in <#%s> (%s)\n\nUse `/stalk add` to start stalking players!",
			channel.ID, channelType),
	))
}

// handleStalkUnset handles /stalk unset
func (b *Bot) handleStalkUnset(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var removedChannel string
	err := b.store.Update(func(reg *tracking.Registry) (bool, error) {
		removedChannel = reg.TrackingChannelID
		if err := reg.UnsetChannel(); err != nil {
			return false, err
		}
		return true, nil
	})

	switch {
	case errors.Is(err, tracking.ErrNoChannel):
		b.respondError(s, i, "No stalking channel is currently set.\n\nUse `/stalk set` to set one first.")
		return
	case errors.Is(err, tracking.ErrPlayersTracked):
		b.respondError(s, i, "⚠️ Cannot unset stalking channel!\n\nThere are players currently being stalked.\n\nPlease remove all tracked players first using `/stalk remove`.\nUse `/stalk list` to see all tracked players.")
		return
	case err != nil:
		b.respondError(s, i, "An error occurred: %s", err)
		return
	}

	b.respondEmbed(s, i, basicEmbed(
		"✅ Stalking Channel Removed",
		fmt.Sprintf("The stalking channel (<#%s>) has been unset.\n\nUse `/stalk set` to set a new channel when needed.", removedChannel),
	))
}

// handleStalkAdd handles /stalk add
func (b *Bot) handleStalkAdd(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	gameName := sub.Options[0].StringValue()
	tagLine := sub.Options[1].StringValue()
	region := b.config.DefaultRegion

	var channelID string
	if err := b.store.View(func(reg *tracking.Registry) { channelID = reg.TrackingChannelID }); err != nil {
		b.respondError(s, i, "Failed to load tracking data: %s", err)
		return
	}
	if channelID == "" {
		b.respondError(s, i, "No stalking channel set!\n\nUse `/stalk set` to set a channel first.")
		return
	}

	channel, err := s.Channel(channelID)
	if err != nil {
		b.respondError(s, i, "The stalking channel no longer exists!\n\nUse `/stalk set` to set a new channel.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	// Verify the account exists before touching the registry
	account, err := b.riot.GetAccountByRiotID(ctx, gameName, tagLine, region)
	if err != nil {
		b.respondError(s, i, "%s", riotErrorMessage(err))
		return
	}
	fullName := account.RiotID()

	var existingThread string
	if err := b.store.View(func(reg *tracking.Registry) {
		if p := reg.FindByPUUID(account.PUUID); p != nil {
			existingThread = p.ThreadID
		}
	}); err != nil {
		b.respondError(s, i, "Failed to load tracking data: %s", err)
		return
	}
	if existingThread != "" {
		b.respondError(s, i, "**%s** is already being stalked!\n\nThread: <#%s>", fullName, existingThread)
		return
	}

	// Rank and summoner data for the thread's pinned intro post
	entries, err := b.riot.GetLeagueEntries(ctx, account.PUUID, region)
	if err != nil {
		b.respondError(s, i, "%s", riotErrorMessage(err))
		return
	}
	summoner, err := b.riot.GetSummonerByPUUID(ctx, account.PUUID, region)
	if err != nil {
		b.respondError(s, i, "%s", riotErrorMessage(err))
		return
	}

	thread, err := b.createPlayerThread(s, i, channel, fullName, account, summoner, entries)
	if err != nil {
		b.respondError(s, i, "Failed to create a thread for **%s**: %s", fullName, err)
		return
	}

	player := &tracking.TrackedPlayer{
		PUUID:     account.PUUID,
		GameName:  account.GameName,
		TagLine:   account.TagLine,
		Region:    region,
		ThreadID:  thread.ID,
		TrackedAt: time.Now(),
		TrackedBy: interactionUserID(i),
	}

	err = b.store.Update(func(reg *tracking.Registry) (bool, error) {
		if err := reg.AddPlayer(player); err != nil {
			return false, err
		}
		return true, nil
	})
	switch {
	case errors.Is(err, tracking.ErrAlreadyTracked):
		b.respondError(s, i, "**%s** is already being stalked!", fullName)
		return
	case errors.Is(err, tracking.ErrNoChannel):
		b.respondError(s, i, "No stalking channel set!\n\nUse `/stalk set` to set a channel first.")
		return
	case err != nil:
		b.respondError(s, i, "Failed to save tracking data: %s", err)
		return
	}

	b.respondEmbed(s, i, basicEmbed(
		"✅ Player Stalked",
		fmt.Sprintf("**%s** is now being stalked!\n\nThread created: <#%s>\nRegion: %s",
			fullName, thread.ID, strings.ToUpper(region)),
	))
}

// createPlayerThread creates the per-player thread: a forum post for
// forum channels, a public thread with a pinned intro message for
// text channels
func (b *Bot) createPlayerThread(s *discordgo.Session, i *discordgo.InteractionCreate, channel *discordgo.Channel, fullName string, account *riot.Account, summoner *riot.Summoner, entries []riot.LeagueEntry) (*discordgo.Channel, error) {
	initialContent := fmt.Sprintf("**Now stalking %s**\nRegion: %s\nAdded by: <@%s>",
		fullName, strings.ToUpper(b.config.DefaultRegion), interactionUserID(i))
	embeds := []*discordgo.MessageEmbed{
		summonerEmbed(account, summoner, b.config.DefaultRegion),
		rankEmbed(fullName, entries),
	}

	if channel.Type == discordgo.ChannelTypeGuildForum {
		return s.ForumThreadStartComplex(channel.ID, &discordgo.ThreadStart{
			Name:                "👁️ " + fullName,
			AutoArchiveDuration: 10080,
		}, &discordgo.MessageSend{
			Content: initialContent,
			Embeds:  embeds,
		})
	}

	thread, err := s.ThreadStart(channel.ID, "👁️ "+fullName, discordgo.ChannelTypeGuildPublicThread, 10080)
	if err != nil {
		return nil, err
	}

	msg, err := s.ChannelMessageSendComplex(thread.ID, &discordgo.MessageSend{
		Content: initialContent,
		Embeds:  embeds,
	})
	if err != nil {
		return nil, err
	}

	// Pin the intro message (only possible in text channel threads)
	if err := s.ChannelMessagePin(thread.ID, msg.ID); err != nil {
		slog.Warn("Failed to pin intro message", "thread", thread.ID, "error", err)
	}

	return thread, nil
}

// handleStalkList handles /stalk list
func (b *Bot) handleStalkList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var reg tracking.Registry
	err := b.store.View(func(r *tracking.Registry) {
		reg = *r
	})
	if err != nil {
		b.respondError(s, i, "Failed to load tracking data: %s", err)
		return
	}

	if len(reg.TrackedPlayers) == 0 {
		b.respondEmbed(s, i, basicEmbed(
			"📋 Stalked Players",
			"No players are currently being stalked.\n\nUse `/stalk add` to start stalking!",
		))
		return
	}

	channelMention := "None set"
	if reg.TrackingChannelID != "" {
		channelMention = fmt.Sprintf("<#%s>", reg.TrackingChannelID)
	}

	embed := basicEmbed(
		"📋 Stalked Players",
		fmt.Sprintf("**Stalking Channel:** %s\n\n**%d player(s) stalked:**",
			channelMention, len(reg.TrackedPlayers)),
	)

	for n, p := range reg.TrackedPlayers {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%d. %s", n+1, p.RiotID()),
			Value: fmt.Sprintf("Region: %s | Thread: <#%s>\nTracked: %s",
				strings.ToUpper(p.Region), p.ThreadID, p.TrackedAt.Format("2006-01-02")),
			Inline: false,
		})
	}

	b.respondEmbed(s, i, embed)
}

// handleStalkRemove handles /stalk remove
func (b *Bot) handleStalkRemove(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	gameName := sub.Options[0].StringValue()
	tagLine := sub.Options[1].StringValue()

	var removed *tracking.TrackedPlayer
	err := b.store.Update(func(reg *tracking.Registry) (bool, error) {
		p, err := reg.RemovePlayer(gameName, tagLine)
		if err != nil {
			return false, err
		}
		removed = p
		return true, nil
	})
	switch {
	case errors.Is(err, tracking.ErrNotTracked):
		b.respondError(s, i, "**%s#%s** is not being stalked.", gameName, tagLine)
		return
	case err != nil:
		b.respondError(s, i, "An error occurred: %s", err)
		return
	}

	// Best effort: the thread may already be gone
	archived := true
	locked := true
	if _, err := s.ChannelEditComplex(removed.ThreadID, &discordgo.ChannelEdit{
		Archived: &archived,
		Locked:   &locked,
	}); err != nil {
		slog.Warn("Failed to archive thread", "thread", removed.ThreadID, "error", err)
	}

	b.respondEmbed(s, i, basicEmbed(
		"✅ Player Removed",
		fmt.Sprintf("**%s** is no longer being stalked.\n\nTheir thread has been archived.", removed.RiotID()),
	))
}

// handleRank handles the /rank command
func (b *Bot) handleRank(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	gameName := options[0].StringValue()
	tagLine := options[1].StringValue()
	region := b.config.DefaultRegion

	b.deferResponse(s, i)

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	account, err := b.riot.GetAccountByRiotID(ctx, gameName, tagLine, region)
	if err != nil {
		b.respondError(s, i, "%s", riotErrorMessage(err))
		return
	}

	entries, err := b.riot.GetLeagueEntries(ctx, account.PUUID, region)
	if err != nil {
		b.respondError(s, i, "%s", riotErrorMessage(err))
		return
	}

	b.respondEmbed(s, i, rankEmbed(account.RiotID(), entries))
}

// interactionUserID returns the invoking user's ID for both guild and
// DM interactions
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// riotErrorMessage maps Riot API errors to user-facing messages
func riotErrorMessage(err error) string {
	switch {
	case errors.Is(err, riot.ErrNotFound):
		return "Player or data not found. Please check the name and tag and try again."
	case errors.Is(err, riot.ErrForbidden):
		return "The bot's Riot API credentials were rejected. Please contact the bot owner."
	case errors.Is(err, riot.ErrRateLimited):
		return "The Riot API rate limit was exceeded. Please try again in a moment."
	default:
		return fmt.Sprintf("An unexpected error occurred: %s", err)
	}
}
