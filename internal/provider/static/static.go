// Package static provides an in-memory card provider for dev mode and the TUI.
package static

import (
	"context"
	"time"

	"github.com/avolkov/cardscreen/internal/model"
)

// Provider returns a fixed card, optionally after an artificial delay so the
// loading phase is visible in the UI.
type Provider struct {
	details model.CardDetails
	delay   time.Duration
}

// New constructs a provider serving the given card.
func New(details model.CardDetails, delay time.Duration) *Provider {
	return &Provider{details: details, delay: delay}
}

// Demo returns the built-in demo card used when no data source is configured.
func Demo(delay time.Duration) *Provider {
	return New(model.CardDetails{
		Number: "4532 7612 3456 7890",
		Holder: "ALEX MORGAN",
		Expiry: "09/29",
		CVV:    "407",
	}, delay)
}

// FetchCardDetails returns the configured card after the configured delay.
func (p *Provider) FetchCardDetails(ctx context.Context) (model.CardDetails, error) {
	if p.delay > 0 {
		t := time.NewTimer(p.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return model.CardDetails{}, ctx.Err()
		}
	}
	return p.details, nil
}
