package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository"
	"github.com/orderspot/connecthost-api/internal/repository/dao"
	"github.com/orderspot/connecthost-api/internal/session"
)

func TestOrderService_PlaceServiceOrder(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	answers := domain.FormAnswers{"slot": "2026-07-02", "allergies": "peanuts", "oils": []any{"lavender"}}
	order, err := s.orders.PlaceServiceOrder(ctx, ServiceOrderInput{
		HostID:    azurID,
		RefID:     dao.SeedRoomRefID,
		ServiceID: spaID,
		Answers:   answers,
		ClientNom: "Room 101 guest",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, roomID, *order.ChambreTableID)
	assert.True(t, order.PrixTotal.Decimal.Equal(dec("35")))
	assert.True(t, order.SoldeDu.Decimal.Equal(dec("35")))
	assert.True(t, fixedNow.Equal(order.DateHeure))
	assert.Nil(t, order.UserID)

	decoded, err := domain.DecodeFormAnswers(order.DonneesFormulaire)
	require.NoError(t, err)
	assert.Equal(t, answers, decoded)
}

func TestOrderService_PlaceServiceOrderRejections(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   ServiceOrderInput
		want error
	}{
		{
			name: "missing required answer",
			in:   ServiceOrderInput{HostID: azurID, RefID: dao.SeedRoomRefID, ServiceID: spaID, Answers: domain.FormAnswers{}},
			want: domain.ErrInvalidFormAnswers,
		},
		{
			name: "service not offered at a table",
			in:   ServiceOrderInput{HostID: azurID, RefID: dao.SeedTableRefID, ServiceID: spaID},
			want: ErrServiceUnavailable,
		},
		{
			name: "login required",
			in:   ServiceOrderInput{HostID: azurID, RefID: dao.SeedTableRefID, ServiceID: shuttleID},
			want: ErrLoginRequired,
		},
		{
			name: "unknown reference",
			in:   ServiceOrderInput{HostID: azurID, RefID: "nope", ServiceID: spaID},
			want: ErrLocationNotFound,
		},
		{
			name: "service of another host",
			in:   ServiceOrderInput{HostID: paulID, RefID: dao.SeedRoomRefID, ServiceID: spaID},
			want: ErrLocationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.orders.PlaceServiceOrder(ctx, tt.in, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOrderService_SignedInOrderLinksClient(t *testing.T) {
	s := newStack(t)

	sess := &session.Session{UserID: guestID, Role: domain.RoleClient}
	order, err := s.orders.PlaceServiceOrder(context.Background(), ServiceOrderInput{
		HostID:    azurID,
		RefID:     dao.SeedTableRefID,
		ServiceID: shuttleID,
	}, sess)
	require.NoError(t, err)

	require.NotNil(t, order.UserID)
	assert.Equal(t, guestID, *order.UserID)
	require.NotNil(t, order.ClientID)
	assert.Equal(t, azurClient, *order.ClientID)
}

func TestOrderService_PlaceMenuOrder(t *testing.T) {
	s := newStack(t)

	order, err := s.orders.PlaceMenuOrder(context.Background(), MenuOrderInput{
		HostID:     azurID,
		RefID:      dao.SeedTableRefID,
		MenuItemID: burgerID,
		Quantity:   2,
		Options:    domain.FormAnswers{"cuisson": "rare"},
	}, nil)
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "Burger", order.Items[0].Name)
	assert.True(t, order.PrixTotal.Decimal.Equal(dec("37")))
	assert.Equal(t, burgerID, *order.MenuItemID)

	_, err = s.orders.PlaceMenuOrder(context.Background(), MenuOrderInput{
		HostID: azurID, RefID: dao.SeedTableRefID, MenuItemID: burgerID, Quantity: -1,
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestOrderService_CreateLegacyOrderComputesTotal(t *testing.T) {
	s := newStack(t)

	order, err := s.orders.CreateLegacyOrder(context.Background(), LegacyOrderInput{
		UserID: guestID,
		Items: []domain.OrderItem{
			{ProductID: uintPtr(1), Price: dec("2.5"), Quantity: 2},
			{Name: "Croissant", Price: dec("1.8"), Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "6.80", order.PrixTotal.Decimal.StringFixed(2))
	assert.Equal(t, "Espresso", order.Items[0].Name)
	assert.Equal(t, guestID, *order.UserID)

	_, err = s.orders.CreateLegacyOrder(context.Background(), LegacyOrderInput{UserID: guestID})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestOrderService_ChangeStatus(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	_, err := s.orders.ChangeStatus(ctx, burgerOrd, "shipped", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = s.orders.ChangeStatus(ctx, spaOrderID, "cancelled", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = s.orders.ChangeStatus(ctx, burgerOrd, "ready", uintPtr(7))
	assert.ErrorIs(t, err, ErrStaleWrite)

	ready, err := s.orders.ChangeStatus(ctx, burgerOrd, "ready", uintPtr(1))
	require.NoError(t, err)
	assert.Equal(t, domain.OrderReady, ready.Status)
	assert.Equal(t, uint(2), ready.Version)

	done, err := s.orders.ChangeStatus(ctx, burgerOrd, "completed", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCompleted, done.Status)

	_, err = s.orders.ChangeStatus(ctx, 404, "ready", nil)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_RecordPayment(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	order, err := s.orders.RecordPayment(ctx, burgerOrd, dec("10"), "cash")
	require.NoError(t, err)
	assert.True(t, order.MontantPaye.Decimal.Equal(dec("10")))
	assert.True(t, order.SoldeDu.Decimal.Equal(dec("8.5")))

	payments, err := s.payments.FindByTarget(ctx, domain.PaymentForOrder, burgerOrd)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "cash", payments[0].Method)

	_, err = s.orders.RecordPayment(ctx, burgerOrd, dec("0"), "cash")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	list, err := s.orders.ListOrders(ctx, repository.OrderFilter{HostID: azurID, Statuses: []domain.OrderStatus{domain.OrderPreparing}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, burgerOrd, list[0].ID)
}
