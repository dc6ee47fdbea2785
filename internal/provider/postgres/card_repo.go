package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/avolkov/cardscreen/internal/errs"
	"github.com/avolkov/cardscreen/internal/model"
)

// CardRepo implements provider.CardProvider by reading one card row.
// The card identity is fixed at construction; the display screen shows a
// single card per session.
type CardRepo struct {
	db     *DB
	cardID uuid.UUID
}

// NewCardRepo constructs a card provider bound to the given card row.
func NewCardRepo(db *DB, cardID uuid.UUID) *CardRepo {
	return &CardRepo{db: db, cardID: cardID}
}

// FetchCardDetails loads the raw card fields for the configured card.
func (r *CardRepo) FetchCardDetails(ctx context.Context) (model.CardDetails, error) {
	const q = `
SELECT number, holder, expiry, cvv
FROM cards WHERE id=$1`
	row := r.db.Pool.QueryRow(ctx, q, r.cardID)
	var d model.CardDetails
	if err := row.Scan(&d.Number, &d.Holder, &d.Expiry, &d.CVV); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CardDetails{}, errs.ErrNotFound
		}
		return model.CardDetails{}, err
	}
	return d, nil
}
