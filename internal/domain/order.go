package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderReady, OrderCompleted, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCompleted, OrderCancelled},
	OrderReady:     {OrderCompleted, OrderCancelled},
	OrderCompleted: nil,
	OrderCancelled: nil,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := orderTransitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// IsActive is true for orders still shown on the production display.
func (s OrderStatus) IsActive() bool {
	return !s.IsTerminal()
}

// CountsTowardSpend is true for the statuses summed into a client's spend.
func (s OrderStatus) CountsTowardSpend() bool {
	return s == OrderCompleted || s == OrderConfirmed
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ID         uint            `json:"id,omitempty"`
	MenuItemID *uint           `json:"menuItemId,omitempty"`
	ProductID  *uint           `json:"productId,omitempty"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalOf is Σ(price × quantity) over the items.
func TotalOf(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

type Order struct {
	ID                uint                `json:"id"`
	ServiceID         *uint               `json:"serviceId,omitempty"`
	MenuItemID        *uint               `json:"menuItemId,omitempty"`
	HostID            uint                `json:"hostId"`
	ChambreTableID    *uint               `json:"chambreTableId,omitempty"`
	ClientNom         string              `json:"clientNom,omitempty"`
	UserID            *uint               `json:"userId,omitempty"`
	ClientID          *uint               `json:"clientId,omitempty"`
	Status            OrderStatus         `json:"status"`
	Items             []OrderItem         `json:"items,omitempty"`
	PrixTotal         decimal.NullDecimal `json:"prixTotal"`
	Currency          string              `json:"currency,omitempty"`
	DonneesFormulaire string              `json:"donneesFormulaire,omitempty"`
	MontantPaye       decimal.NullDecimal `json:"montantPaye"`
	SoldeDu           decimal.NullDecimal `json:"soldeDu"`
	Notes             string              `json:"notes,omitempty"`
	DateHeure         time.Time           `json:"dateHeure"`
	Version           uint                `json:"version"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

func (o *Order) Validate() error {
	if o.ServiceID == nil && o.MenuItemID == nil && len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	return nil
}

func (o *Order) transition(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: order %d %s -> %s", ErrInvalidTransition, o.ID, o.Status, next)
	}
	o.Status = next
	return nil
}

// Confirm accepts a pending order.
func (o *Order) Confirm() error { return o.transition(OrderConfirmed) }

// StartPreparing requires a confirmed order.
func (o *Order) StartPreparing() error { return o.transition(OrderPreparing) }

// MarkReady requires a confirmed or preparing order.
func (o *Order) MarkReady() error { return o.transition(OrderReady) }

// Complete requires a confirmed, preparing or ready order.
func (o *Order) Complete() error { return o.transition(OrderCompleted) }

// Cancel is allowed from any non-terminal status.
func (o *Order) Cancel() error { return o.transition(OrderCancelled) }

// ApplyStatus routes a requested target status to its transition function.
func (o *Order) ApplyStatus(target OrderStatus) error {
	switch target {
	case OrderConfirmed:
		return o.Confirm()
	case OrderPreparing:
		return o.StartPreparing()
	case OrderReady:
		return o.MarkReady()
	case OrderCompleted:
		return o.Complete()
	case OrderCancelled:
		return o.Cancel()
	}
	return fmt.Errorf("%w: cannot move an order to %q", ErrInvalidTransition, target)
}

func (o *Order) RefreshBalance() {
	o.SoldeDu = BalanceDue(o.PrixTotal, o.MontantPaye)
}

func (o *Order) RecordPayment(amount decimal.Decimal) error {
	if o.Status == OrderCancelled {
		return fmt.Errorf("%w: order %d is cancelled", ErrInvalidTransition, o.ID)
	}

	paid, err := addPaid(o.MontantPaye, amount)
	if err != nil {
		return err
	}
	o.MontantPaye = paid
	o.RefreshBalance()
	return nil
}
