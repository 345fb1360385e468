package payment

import "time"

// StatusCompleted is the only status a stored payment ever carries.
const StatusCompleted = "completed"

type Payment struct {
	ID          int64     `db:"id" gorm:"primaryKey"`
	Amount      float64   `db:"amount" gorm:"column:amount;type:numeric;not null"`
	PaymentMode string    `db:"payment_mode" gorm:"column:payment_mode;not null"`
	ClientEmail string    `db:"client_email" gorm:"column:client_email;not null"`
	ClientName  string    `db:"client_name" gorm:"column:client_name;not null"`
	Route       string    `db:"route" gorm:"column:route;not null"`
	CardLast4   *string   `db:"card_last4" gorm:"column:card_last4;size:4"`
	CardBrand   *string   `db:"card_brand" gorm:"column:card_brand"`
	Status      string    `db:"status" gorm:"column:status;not null;default:completed"`
	CreatedAt   time.Time `db:"created_at" gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
}

func (Payment) TableName() string {
	return "payments"
}
