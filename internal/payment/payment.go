package payment

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/mbRabaa/microservice-paiement/internal/core/common/validation"
	paymentDatamodel "github.com/mbRabaa/microservice-paiement/internal/core/datamodel/payment"
)

const (
	ModeCredit = "credit"
	ModeDebit  = "debit"
)

// Submission is the untrusted body of a payment request. Amount stays loosely
// typed until Validate has coerced it.
type Submission struct {
	Amount      interface{} `json:"amount"`
	PaymentMode string      `json:"paymentMode"`
	ClientEmail string      `json:"clientEmail"`
	ClientName  string      `json:"clientName"`
	Route       string      `json:"route"`
	CardLast4   string      `json:"cardLast4,omitempty"`
	CardBrand   string      `json:"cardBrand,omitempty"`
}

// NormalizedPayment is a submission that passed validation and is ready to be stored.
type NormalizedPayment struct {
	Amount      float64
	PaymentMode string
	ClientEmail string
	ClientName  string
	Route       string
	CardLast4   *string
	CardBrand   *string
}

type Record struct {
	ID        int64
	Amount    float64
	Status    string
	CreatedAt time.Time
}

func (r *Record) ToResponse() RecordResponse {
	return RecordResponse{
		ID:        r.ID,
		Amount:    r.Amount,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

// Validate checks presence first, then the amount, then the payment mode, and
// reports only the first failure.
func Validate(s *Submission) (*NormalizedPayment, error) {
	if s == nil {
		s = &Submission{}
	}

	validator := validation.NewValidator()

	validator.Field("amount", s.Amount).Required("number")
	validator.Field("paymentMode", s.PaymentMode).Required("['credit','debit']")
	validator.Field("clientEmail", s.ClientEmail).Required("string")
	validator.Field("clientName", s.ClientName).Required("string")
	validator.Field("route", s.Route).Required("string")

	validator.Field("amount", s.Amount).Number()
	validator.Field("paymentMode", s.PaymentMode).OneOf(ModeCredit, ModeDebit)

	if appErr := validator.Validate(); appErr != nil {
		return nil, appErr
	}

	amount, err := validation.ToNumber(s.Amount)
	if err != nil {
		return nil, err
	}

	return &NormalizedPayment{
		Amount:      amount,
		PaymentMode: s.PaymentMode,
		ClientEmail: s.ClientEmail,
		ClientName:  s.ClientName,
		Route:       s.Route,
		CardLast4:   NormalizeCardLast4(s.CardLast4),
		CardBrand:   optional(s.CardBrand),
	}, nil
}

// NormalizeCardLast4 keeps the last four digits of raw. It returns nil when
// raw holds no digit at all.
func NormalizeCardLast4(raw string) *string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return nil
	}
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return &digits
}

func ReceiptURL(id int64) string {
	return fmt.Sprintf("/payments/%d/receipt", id)
}

func optional(s string) *string {
	if strings.TrimFunc(s, unicode.IsSpace) == "" {
		return nil
	}
	return &s
}

func ToDataModel(n *NormalizedPayment) *paymentDatamodel.Payment {
	return &paymentDatamodel.Payment{
		Amount:      n.Amount,
		PaymentMode: n.PaymentMode,
		ClientEmail: n.ClientEmail,
		ClientName:  n.ClientName,
		Route:       n.Route,
		CardLast4:   n.CardLast4,
		CardBrand:   n.CardBrand,
		Status:      paymentDatamodel.StatusCompleted,
	}
}

func FromDataModel(p *paymentDatamodel.Payment) *Record {
	return &Record{
		ID:        p.ID,
		Amount:    p.Amount,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}
