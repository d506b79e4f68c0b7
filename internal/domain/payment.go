package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentTarget string

const (
	PaymentForOrder       PaymentTarget = "order"
	PaymentForReservation PaymentTarget = "reservation"
)

// Payment records money received against an order or a reservation. Nothing
// is charged; the record only moves montantPaye.
type Payment struct {
	ID         uint            `json:"id"`
	HostID     uint            `json:"hostId"`
	TargetType PaymentTarget   `json:"targetType"`
	TargetID   uint            `json:"targetId"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
