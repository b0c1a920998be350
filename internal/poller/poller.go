package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AlexTheSomething/lol-discord-bot/internal/tracking"
)

// Poller periodically checks all stalked players for live games, new
// matches and rank changes
type Poller struct {
	store    *tracking.Store
	detector *tracking.Detector
	notifier tracking.Notifier
	interval time.Duration

	started  atomic.Bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new Poller
func New(store *tracking.Store, detector *tracking.Detector, notifier tracking.Notifier, intervalSeconds int) *Poller {
	return &Poller{
		store:    store,
		detector: detector,
		notifier: notifier,
		interval: time.Duration(intervalSeconds) * time.Second,
		stopChan: make(chan struct{}),
	}
}

// Start begins the polling loop. Calling Start again while a loop is
// already running is a no-op; the gateway fires Ready on every
// reconnect and only the first one may start the loop.
func (p *Poller) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		slog.Debug("Poller already running")
		return
	}

	slog.Info("Starting poller", "interval", p.interval)

	p.wg.Add(1)
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Initial poll
	p.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Poller stopped (context cancelled)")
			return
		case <-p.stopChan:
			slog.Info("Poller stopped")
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// Stop signals the poller to stop and waits for the in-flight cycle
func (p *Poller) Stop() {
	close(p.stopChan)
	p.wg.Wait()
}

// poll runs one monitoring cycle. The whole cycle holds the store
// lock: the registry is loaded once, every player is evaluated
// against it, and it is saved exactly once at the end. A registry
// load failure abandons the cycle without persisting anything.
func (p *Poller) poll(ctx context.Context) {
	err := p.store.Update(func(reg *tracking.Registry) (bool, error) {
		if reg.TrackingChannelID == "" || len(reg.TrackedPlayers) == 0 {
			slog.Debug("No players to monitor")
			return false, nil
		}

		slog.Debug("Checking stalked players", "count", len(reg.TrackedPlayers))

		for _, player := range reg.TrackedPlayers {
			select {
			case <-ctx.Done():
				return true, nil
			default:
			}
			p.checkPlayer(ctx, player)
		}

		return true, nil
	})
	if err != nil {
		slog.Error("Poll cycle failed", "error", err)
	}
}

// checkPlayer evaluates a single player and posts any resulting
// events to the player's thread. Failures are logged and isolated so
// the remaining players still get checked this cycle.
func (p *Poller) checkPlayer(ctx context.Context, player *tracking.TrackedPlayer) {
	events := p.detector.Evaluate(ctx, player)

	for _, ev := range events {
		if err := p.notifier.Post(ctx, player, ev); err != nil {
			slog.Error("Failed to post event",
				"player", player.RiotID(), "event", ev.Kind(), "error", err)
		}
	}
}
