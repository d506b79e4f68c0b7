package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository"
)

func TestHostService_CreateHostDefaults(t *testing.T) {
	s := newStack(t)

	host, err := s.hostSvc.CreateHost(context.Background(), domain.Host{Name: "Motel Rive", Email: "rive@motel.local"})
	require.NoError(t, err)

	assert.True(t, host.Reservation.EnableRoomReservations)
	assert.True(t, host.Reservation.EnableTableReservations)
	assert.Equal(t, domain.RoundFloor, host.Loyalty.Rounding)
	assert.True(t, host.Loyalty.PointsPerUnit.Equal(dec("1")))
}

func TestHostService_UpdateSettingsRejectsNoReservationType(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	before, err := s.hostSvc.GetHost(ctx, azurID)
	require.NoError(t, err)

	got, err := s.hostSvc.UpdateSettings(ctx, azurID, domain.ReservationSettings{}, domain.LoyaltySettings{})
	assert.ErrorIs(t, err, ErrNoReservationType)
	assert.Equal(t, before.Reservation, got.Reservation)

	stored, err := s.hostSvc.GetHost(ctx, azurID)
	require.NoError(t, err)
	assert.Equal(t, before.Reservation, stored.Reservation)
	assert.True(t, before.Loyalty.PointsPerUnit.Equal(stored.Loyalty.PointsPerUnit))
}

func TestHostService_UpdateSettings(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	updated, err := s.hostSvc.UpdateSettings(ctx, azurID,
		domain.ReservationSettings{EnableTableReservations: true, HeroImageURL: "terrace.jpg"},
		domain.LoyaltySettings{Enabled: true, PointsPerUnit: dec("0.1")},
	)
	require.NoError(t, err)

	assert.False(t, updated.Reservation.EnableRoomReservations)
	assert.True(t, updated.Reservation.EnableTableReservations)
	assert.Equal(t, domain.RoundFloor, updated.Loyalty.Rounding)

	_, err = s.hostSvc.UpdateSettings(ctx, 404, domain.ReservationSettings{EnableTableReservations: true}, domain.LoyaltySettings{})
	assert.ErrorIs(t, err, ErrHostNotFound)
}

func TestHostService_DeleteCascades(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	require.NoError(t, s.hostSvc.DeleteHost(ctx, azurID))

	_, err := s.hostSvc.GetHost(ctx, azurID)
	assert.ErrorIs(t, err, ErrHostNotFound)

	sites, err := s.venueSvc.ListSites(ctx, azurID)
	require.NoError(t, err)
	assert.Empty(t, sites)

	services, err := s.catalog.ListServices(ctx, azurID)
	require.NoError(t, err)
	assert.Empty(t, services)

	orders, err := s.orders.ListOrders(ctx, repository.OrderFilter{HostID: azurID})
	require.NoError(t, err)
	assert.Len(t, orders, 2, "orders are kept for accounting")

	_, err = s.auth.Login(ctx, "host@hotel-azur.local", "demo1234")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, s.hostSvc.DeleteHost(ctx, azurID), ErrHostNotFound)
}
