package payment

import "time"

type RecordResponse struct {
	ID        int64     `json:"id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreatePaymentResponse is the 201 body of POST /payments.
type CreatePaymentResponse struct {
	Success    bool           `json:"success"`
	Payment    RecordResponse `json:"payment"`
	ReceiptURL string         `json:"receiptUrl"`
}
