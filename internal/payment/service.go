package payment

import (
	"context"
	"log/slog"

	paymentDatamodel "github.com/mbRabaa/microservice-paiement/internal/core/datamodel/payment"
	"github.com/mbRabaa/microservice-paiement/pkg/metrics"
)

// Store is the relational store capability: a liveness probe and a single insert.
type Store interface {
	Ping(ctx context.Context) error
	Insert(ctx context.Context, p *paymentDatamodel.Payment) (*paymentDatamodel.Payment, error)
}

type ServiceAPI interface {
	RecordPayment(ctx context.Context, s *Submission) (*Record, error)
}

type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(store Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		logger:  logger,
		metrics: m,
	}
}

// RecordPayment validates the submission and stores it once. Nothing is
// written when validation fails.
func (s *Service) RecordPayment(ctx context.Context, submission *Submission) (*Record, error) {
	normalized, err := Validate(submission)
	if err != nil {
		s.logger.Warn("payment submission rejected", "error", err)
		return nil, err
	}

	stored, err := s.store.Insert(ctx, ToDataModel(normalized))
	if err != nil {
		s.logger.Error("failed to insert payment", "error", err, "payment_mode", normalized.PaymentMode)
		return nil, err
	}

	s.logger.Info("payment recorded",
		"payment_id", stored.ID,
		"amount", stored.Amount,
		"payment_mode", normalized.PaymentMode)
	s.metrics.PaymentRecorded(normalized.PaymentMode)

	return FromDataModel(stored), nil
}
