package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/cardscreen/internal/errs"
	"github.com/avolkov/cardscreen/internal/model"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func TestCardRepo_FetchCardDetails_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()

	cardID := uuid.Must(uuid.NewV4())
	r := NewCardRepo(db, cardID)

	mock.ExpectQuery(`SELECT number, holder, expiry, cvv\s+FROM cards WHERE id=\$1`).
		WithArgs(cardID).
		WillReturnRows(pgxmock.NewRows([]string{"number", "holder", "expiry", "cvv"}).
			AddRow("1234 5678 9012 3456", "J. APPLESEED", "12/28", "123"))

	d, err := r.FetchCardDetails(context.Background())
	require.NoError(t, err)
	require.Equal(t, model.CardDetails{
		Number: "1234 5678 9012 3456",
		Holder: "J. APPLESEED",
		Expiry: "12/28",
		CVV:    "123",
	}, d)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepo_FetchCardDetails_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()

	cardID := uuid.Must(uuid.NewV4())
	r := NewCardRepo(db, cardID)

	mock.ExpectQuery(`SELECT number, holder, expiry, cvv\s+FROM cards WHERE id=\$1`).
		WithArgs(cardID).
		WillReturnError(pgx.ErrNoRows)

	_, err := r.FetchCardDetails(context.Background())
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCardRepo_FetchCardDetails_DBError(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()

	cardID := uuid.Must(uuid.NewV4())
	r := NewCardRepo(db, cardID)

	boom := errors.New("connection reset")
	mock.ExpectQuery(`SELECT number, holder, expiry, cvv\s+FROM cards WHERE id=\$1`).
		WithArgs(cardID).
		WillReturnError(boom)

	_, err := r.FetchCardDetails(context.Background())
	require.ErrorIs(t, err, boom)
}
