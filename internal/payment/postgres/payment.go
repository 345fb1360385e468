package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cast"

	apperrors "github.com/mbRabaa/microservice-paiement/internal"
	"github.com/mbRabaa/microservice-paiement/internal/core/datamodel/payment"
)

const probeQuery = `SELECT 1`

const insertPaymentQuery = `
	INSERT INTO payments (
		amount, payment_mode, client_email,
		client_name, route, card_last4, card_brand, status
	) VALUES (
		:amount, :payment_mode, :client_email,
		:client_name, :route, :card_last4, :card_brand, 'completed'
	)
	RETURNING id, amount, status, created_at`

// PaymentStore is the payments table gateway. It owns no connection; the pool
// is injected.
type PaymentStore struct {
	db *sqlx.DB
}

func NewPaymentStore(db *sqlx.DB) *PaymentStore {
	return &PaymentStore{db: db}
}

// Ping runs the availability probe.
func (s *PaymentStore) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowxContext(ctx, probeQuery).Scan(&one); err != nil {
		return storeError(err)
	}
	return nil
}

// Insert stores p in a single statement and returns it with the generated id,
// status and creation time.
func (s *PaymentStore) Insert(ctx context.Context, p *payment.Payment) (*payment.Payment, error) {
	rows, err := s.db.NamedQueryContext(ctx, insertPaymentQuery, p)
	if err != nil {
		return nil, storeError(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, storeError(err)
		}
		return nil, storeError(sql.ErrNoRows)
	}

	var row insertedRow
	if err := rows.StructScan(&row); err != nil {
		return nil, storeError(err)
	}

	stored := *p
	stored.ID = row.ID
	stored.Amount = row.Amount
	stored.Status = row.Status
	stored.CreatedAt = row.CreatedAt.Time
	return &stored, nil
}

type insertedRow struct {
	ID        int64     `db:"id"`
	Amount    float64   `db:"amount"`
	Status    string    `db:"status"`
	CreatedAt timestamp `db:"created_at"`
}

// timestamp accepts created_at as time.Time from pgx or as SQL text from
// drivers that report RETURNING columns untyped.
type timestamp struct {
	time.Time
}

func (t *timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case []byte:
		src = string(v)
	}
	parsed, err := cast.ToTimeE(src)
	if err != nil {
		return fmt.Errorf("scan created_at: %w", err)
	}
	t.Time = parsed
	return nil
}

// storeError keeps the store's own SQLSTATE and message.
func storeError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		se := apperrors.NewStoreError(pgErr.Code, err)
		se.Message = pgErr.Message
		return se
	}
	return apperrors.NewStoreError("", err)
}
