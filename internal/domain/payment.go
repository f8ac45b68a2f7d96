package domain

import "time"

type LedgerStatus string

const (
	LedgerCompleted LedgerStatus = "completed"
	LedgerFailed    LedgerStatus = "failed"
)

// Payment is a ledger entry recording a completed payment or refund for a
// booking. Ledger rows are append-only.
type Payment struct {
	ID            int64        `json:"id"`
	BookingID     int64        `json:"booking_id" gorm:"not null;index"`
	Amount        float64      `json:"amount"`
	Method        string       `json:"method"`
	TransactionID string       `json:"transaction_id" gorm:"index"`
	Status        LedgerStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
