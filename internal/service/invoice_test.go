package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceService_OrderInvoice(t *testing.T) {
	s := newStack(t)

	inv, err := s.invoices.OrderInvoice(context.Background(), spaOrderID)
	require.NoError(t, err)

	assert.Equal(t, "ORD-000001", inv.Number)
	assert.Equal(t, "Hotel Azur", inv.HostName)
	assert.Equal(t, "contact@hotel-azur.local", inv.HostEmail)
	assert.Equal(t, "Room 101", inv.LocationName)
	assert.Equal(t, "Camille Martin", inv.ClientDisplayName)
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, "Spa access", inv.Lines[0].Label)
	assert.Equal(t, "35.00 €", inv.Total)
	assert.Equal(t, "0.00 €", inv.BalanceDue)
	assert.Empty(t, inv.Payments)

	_, err = s.invoices.OrderInvoice(context.Background(), 404)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestInvoiceService_ReservationInvoice(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	_, err := s.reservations.RecordPayment(ctx, stayID, dec("50"), "card")
	require.NoError(t, err)

	inv, err := s.invoices.ReservationInvoice(ctx, stayID)
	require.NoError(t, err)

	assert.Equal(t, "RES-000001", inv.Number)
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, "Chambre Room 101", inv.Lines[0].Label)
	assert.Equal(t, 3, inv.Lines[0].Quantity)
	assert.Equal(t, "120.00 €", inv.Lines[0].UnitPrice)
	assert.Equal(t, "360.00 €", inv.Total)
	assert.Equal(t, "150.00 €", inv.Paid)
	assert.Equal(t, "210.00 €", inv.BalanceDue)
	require.Len(t, inv.Payments, 1)
}
