// Package provider declares the card data source port implemented by adapters.
package provider

import (
	"context"

	"github.com/avolkov/cardscreen/internal/model"
)

// CardProvider supplies raw card fields. It holds no state between calls;
// callers cache the result if they want to avoid refetching.
type CardProvider interface {
	// FetchCardDetails returns the card's raw fields. Blocking; honor ctx.
	FetchCardDetails(ctx context.Context) (model.CardDetails, error)
}
