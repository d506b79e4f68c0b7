package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderspot/connecthost-api/internal/domain"
)

type PaymentFinder interface {
	FindByTarget(ctx context.Context, target domain.PaymentTarget, id uint) ([]domain.Payment, error)
}

type OrderGetter interface {
	FindByID(ctx context.Context, id uint) (domain.Order, error)
}

type ReservationGetter interface {
	FindByID(ctx context.Context, id uint) (domain.Reservation, error)
}

type InvoiceLine struct {
	Label     string `json:"label"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Amount    string `json:"amount"`
}

// Invoice is a read-only billing view of one order or reservation. Amounts
// are formatted with the currency symbol, "N/A" when undefined.
type Invoice struct {
	Number            string           `json:"number"`
	Kind              string           `json:"kind"`
	Status            string           `json:"status"`
	IssuedAt          time.Time        `json:"issuedAt"`
	HostName          string           `json:"hostName"`
	HostEmail         string           `json:"hostEmail,omitempty"`
	LocationName      string           `json:"locationName"`
	ClientDisplayName string           `json:"clientDisplayName"`
	CurrencySymbol    string           `json:"currencySymbol"`
	Lines             []InvoiceLine    `json:"lines"`
	Total             string           `json:"total"`
	Paid              string           `json:"paid"`
	BalanceDue        string           `json:"balanceDue"`
	Payments          []domain.Payment `json:"payments"`
}

type InvoiceService struct {
	orders       OrderGetter
	reservations ReservationGetter
	payments     PaymentFinder
	hosts        HostLookup
	enricher     *Enricher
}

func NewInvoiceService(orders OrderGetter, reservations ReservationGetter, payments PaymentFinder, hosts HostLookup, enricher *Enricher) *InvoiceService {
	return &InvoiceService{
		orders:       orders,
		reservations: reservations,
		payments:     payments,
		hosts:        hosts,
		enricher:     enricher,
	}
}

func (s *InvoiceService) OrderInvoice(ctx context.Context, id uint) (Invoice, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return Invoice{}, fmt.Errorf("s.orders.FindByID -> %w", err)
	}

	enriched, err := s.enricher.Orders(ctx, []domain.Order{order})
	if err != nil {
		return Invoice{}, fmt.Errorf("s.enricher.Orders -> %w", err)
	}
	eo := enriched[0]

	payments, err := s.payments.FindByTarget(ctx, domain.PaymentForOrder, order.ID)
	if err != nil {
		return Invoice{}, fmt.Errorf("s.payments.FindByTarget -> %w", err)
	}

	sym := eo.CurrencySymbol
	inv := Invoice{
		Number:            fmt.Sprintf("ORD-%06d", order.ID),
		Kind:              string(domain.PaymentForOrder),
		Status:            string(order.Status),
		IssuedAt:          order.DateHeure,
		HostName:          eo.HostName,
		LocationName:      eo.LocationName,
		ClientDisplayName: eo.ClientDisplayName,
		CurrencySymbol:    sym,
		Total:             eo.TotalDisplay,
		Paid:              domain.FormatAmount(order.MontantPaye, sym),
		BalanceDue:        eo.BalanceDisplay,
		Payments:          payments,
	}

	if len(order.Items) > 0 {
		for _, item := range order.Items {
			inv.Lines = append(inv.Lines, InvoiceLine{
				Label:     item.Name,
				Quantity:  item.Quantity,
				UnitPrice: formatDecimal(item.Price, sym),
				Amount:    formatDecimal(item.Subtotal(), sym),
			})
		}
	} else {
		inv.Lines = []InvoiceLine{{
			Label:     eo.ServiceName,
			Quantity:  1,
			UnitPrice: eo.TotalDisplay,
			Amount:    eo.TotalDisplay,
		}}
	}

	if err = s.addHostEmail(ctx, order.HostID, &inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

func (s *InvoiceService) ReservationInvoice(ctx context.Context, id uint) (Invoice, error) {
	r, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return Invoice{}, fmt.Errorf("s.reservations.FindByID -> %w", err)
	}

	enriched, err := s.enricher.Reservations(ctx, []domain.Reservation{r})
	if err != nil {
		return Invoice{}, fmt.Errorf("s.enricher.Reservations -> %w", err)
	}
	er := enriched[0]

	payments, err := s.payments.FindByTarget(ctx, domain.PaymentForReservation, r.ID)
	if err != nil {
		return Invoice{}, fmt.Errorf("s.payments.FindByTarget -> %w", err)
	}

	sym := er.CurrencySymbol
	line := InvoiceLine{
		Label:     fmt.Sprintf("%s %s", r.Type, er.LocationName),
		Quantity:  1,
		UnitPrice: er.TotalDisplay,
		Amount:    er.TotalDisplay,
	}
	if nights := r.Nights(); nights > 0 {
		line.Quantity = nights
		if r.PrixTotal.Valid {
			line.UnitPrice = formatDecimal(r.PrixTotal.Decimal.Div(decimal.NewFromInt(int64(nights))), sym)
		}
	}

	inv := Invoice{
		Number:            fmt.Sprintf("RES-%06d", r.ID),
		Kind:              string(domain.PaymentForReservation),
		Status:            string(r.Status),
		IssuedAt:          r.DateArrivee,
		HostName:          er.HostName,
		LocationName:      er.LocationName,
		ClientDisplayName: er.ClientDisplayName,
		CurrencySymbol:    sym,
		Lines:             []InvoiceLine{line},
		Total:             er.TotalDisplay,
		Paid:              domain.FormatAmount(r.MontantPaye, sym),
		BalanceDue:        er.BalanceDisplay,
		Payments:          payments,
	}
	if r.CheckedOutAt != nil {
		inv.IssuedAt = *r.CheckedOutAt
	}

	if err = s.addHostEmail(ctx, r.HostID, &inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

func (s *InvoiceService) addHostEmail(ctx context.Context, hostID uint, inv *Invoice) error {
	host, err := s.hosts.FindByID(ctx, hostID)
	if err != nil {
		return fmt.Errorf("s.hosts.FindByID -> %w", err)
	}
	inv.HostEmail = host.Email
	return nil
}

func formatDecimal(d decimal.Decimal, symbol string) string {
	return domain.FormatAmount(decimal.NewNullDecimal(d), symbol)
}
