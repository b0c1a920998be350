package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/AlexTheSomething/lol-discord-bot/internal/config"
	"github.com/AlexTheSomething/lol-discord-bot/internal/poller"
	"github.com/AlexTheSomething/lol-discord-bot/internal/riot"
	"github.com/AlexTheSomething/lol-discord-bot/internal/tracking"
)

// Bot represents the Discord bot instance
type Bot struct {
	config   *config.Config
	session  *discordgo.Session
	store    *tracking.Store
	riot     *riot.Client
	poller   *poller.Poller
	commands []*discordgo.ApplicationCommand
}

// New creates a new Bot instance
func New(cfg *config.Config) (*Bot, error) {
	// Create Discord session
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Set intents
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	store := tracking.NewStore(cfg.DataFile)
	riotClient := riot.NewClient(cfg.RiotAPIKey)

	b := &Bot{
		config:  cfg,
		session: session,
		store:   store,
		riot:    riotClient,
	}

	detector := tracking.NewDetector(riotClient)
	b.poller = poller.New(store, detector, NewNotifier(session), cfg.PollIntervalSeconds)

	return b, nil
}

// Start opens the Discord connection and starts background tasks
func (b *Bot) Start(ctx context.Context) error {
	b.session.AddHandler(b.handleInteraction)

	// The poller only starts once the gateway confirms readiness;
	// Poller.Start guards against the Ready replays on reconnect.
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Bot is ready", "user", r.User.Username, "guilds", len(r.Guilds))
		go b.poller.Start(ctx)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	// Register slash commands
	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	return nil
}

// Stop gracefully shuts down the bot
func (b *Bot) Stop() error {
	// Stop the poller and wait for the in-flight cycle
	if b.poller != nil {
		b.poller.Stop()
	}

	// Close Discord session
	if b.session != nil {
		return b.session.Close()
	}

	return nil
}

// handleInteraction processes slash command interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	slog.Debug("Received command", "command", data.Name, "guild", i.GuildID)

	switch data.Name {
	case "stalk":
		b.handleStalk(s, i)
	case "rank":
		b.handleRank(s, i)
	default:
		slog.Warn("Unknown command", "command", data.Name)
	}
}
