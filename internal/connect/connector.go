package connect

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/openn02/Tend/internal/client"
	"github.com/openn02/Tend/internal/session"
)

// Providers the settings page knows about.
var Providers = []string{"slack", "google", "zoom"}

// api is the slice of the API client the connector needs.
type api interface {
	IntegrationStatus(ctx context.Context, provider string) (client.IntegrationStatus, error)
	IntegrationAuthURL(ctx context.Context, provider string) (string, error)
}

// Connector drives the settings page integrations: it fetches per-provider
// connection status and starts the OAuth handoff. A status fetch that fails
// degrades that provider to disconnected instead of breaking the page, and
// responses arriving after the page moved on are discarded.
type Connector struct {
	api    api
	nav    session.Navigator
	logger zerolog.Logger

	mu       sync.Mutex
	busy     map[string]bool
	statuses map[string]client.IntegrationStatus
}

// New creates a connector.
func New(apiClient api, nav session.Navigator, logger zerolog.Logger) *Connector {
	return &Connector{
		api:      apiClient,
		nav:      nav,
		logger:   logger,
		busy:     make(map[string]bool),
		statuses: make(map[string]client.IntegrationStatus),
	}
}

// Statuses fetches every provider's status concurrently. Per-provider
// failures are logged and reported as disconnected; the call itself only
// fails on context cancellation, in which case no state is recorded.
func (c *Connector) Statuses(ctx context.Context, providers []string) (map[string]client.IntegrationStatus, error) {
	results := make([]client.IntegrationStatus, len(providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, provider := range providers {
		i, provider := i, provider
		g.Go(func() error {
			status, err := c.api.IntegrationStatus(gctx, provider)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				c.logger.Warn().Err(err).Str("provider", provider).Msg("integration status fetch failed")
				results[i] = client.IntegrationStatus{Connected: false}
				return nil
			}
			results[i] = status
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	out := make(map[string]client.IntegrationStatus, len(providers))
	c.mu.Lock()
	for i, provider := range providers {
		c.statuses[provider] = results[i]
		out[provider] = results[i]
	}
	c.mu.Unlock()
	return out, nil
}

// Status returns the last known status for a provider.
func (c *Connector) Status(provider string) (client.IntegrationStatus, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	status, ok := c.statuses[provider]
	return status, ok
}

// Busy reports whether a connect is in flight for the provider, for
// disabling its button.
func (c *Connector) Busy(provider string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy[provider]
}

// Connect fetches the provider authorization URL and navigates to it. The
// per-provider busy flag is set for the duration and cleared on every exit
// path. Only the requested provider's button is affected.
func (c *Connector) Connect(ctx context.Context, provider string) error {
	c.mu.Lock()
	if c.busy[provider] {
		c.mu.Unlock()
		return nil
	}
	c.busy[provider] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy[provider] = false
		c.mu.Unlock()
	}()

	authURL, err := c.api.IntegrationAuthURL(ctx, provider)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Error().Err(err).Str("provider", provider).Msg("fetching authorization url failed")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	c.nav.Navigate(authURL)
	return nil
}
