package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository"
)

func TestReservationService_CreateRoomUsesStayPrice(t *testing.T) {
	s := newStack(t)

	arrival := time.Date(2026, 8, 1, 15, 0, 0, 0, time.UTC)
	departure := arrival.Add(48 * time.Hour)

	r, err := s.reservations.CreateReservation(context.Background(), ReservationInput{
		HostID:          azurID,
		LocationID:      roomID,
		ClientID:        uintPtr(azurClient),
		DateArrivee:     arrival,
		DateDepart:      &departure,
		NombrePersonnes: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ReservationRoom, r.Type)
	assert.Equal(t, domain.ReservationPending, r.Status)
	assert.Equal(t, "Camille Martin", r.ClientName)
	assert.True(t, r.PrixTotal.Decimal.Equal(dec("240")))
	assert.True(t, r.SoldeDu.Decimal.Equal(dec("240")))
}

func TestReservationService_CreateRejections(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	arrival := time.Date(2026, 8, 1, 15, 0, 0, 0, time.UTC)

	_, err := s.reservations.CreateReservation(ctx, ReservationInput{HostID: azurID, LocationID: roomID, DateArrivee: arrival})
	assert.ErrorIs(t, err, domain.ErrInvalidStayDates)

	_, err = s.reservations.CreateReservation(ctx, ReservationInput{HostID: paulID, LocationID: tableID, DateArrivee: arrival})
	assert.ErrorIs(t, err, ErrForeignHost)

	_, err = s.reservations.CreateReservation(ctx, ReservationInput{HostID: azurID, LocationID: 404, DateArrivee: arrival})
	assert.ErrorIs(t, err, ErrLocationNotFound)

	_, err = s.hostSvc.UpdateSettings(ctx, azurID, domain.ReservationSettings{EnableRoomReservations: true}, domain.DefaultLoyaltySettings())
	require.NoError(t, err)

	_, err = s.reservations.CreateReservation(ctx, ReservationInput{HostID: azurID, LocationID: tableID, DateArrivee: arrival})
	assert.ErrorIs(t, err, ErrReservationTypeDisabled)
}

func TestReservationService_TableWithoutPriceHasNoBalance(t *testing.T) {
	s := newStack(t)

	arrival := time.Date(2026, 8, 1, 20, 0, 0, 0, time.UTC)
	r, err := s.reservations.CreateReservation(context.Background(), ReservationInput{
		HostID: azurID, LocationID: tableID, ClientName: "Dupont", DateArrivee: arrival, NombrePersonnes: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ReservationTable, r.Type)
	assert.Nil(t, r.DateDepart)
	assert.False(t, r.PrixTotal.Valid)
	assert.Equal(t, domain.NotAvailable, domain.FormatAmount(r.SoldeDu, "€"))
}

func TestReservationService_CheckOutCreditsLoyalty(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	r, err := s.reservations.ChangeStatus(ctx, stayID, "checked-out", "late checkout", uintPtr(1))
	require.NoError(t, err)

	assert.Equal(t, domain.ReservationCheckedOut, r.Status)
	assert.Equal(t, 360, r.LoyaltyPointsEarned)
	assert.Equal(t, "late checkout", r.CheckoutNotes)
	require.NotNil(t, r.CheckedOutAt)

	client, err := s.clientRepo.FindByID(ctx, azurClient)
	require.NoError(t, err)
	assert.Equal(t, 400, client.Points())

	_, err = s.reservations.ChangeStatus(ctx, stayID, "cancelled", "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReservationService_StaleVersion(t *testing.T) {
	s := newStack(t)

	_, err := s.reservations.ChangeStatus(context.Background(), stayID, "checked-in", "", uintPtr(3))
	assert.ErrorIs(t, err, ErrStaleWrite)

	_, err = s.reservations.ChangeStatus(context.Background(), stayID, "arrived", "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestReservationService_PublicCheckoutIsIdempotent(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	first, err := s.reservations.PublicCheckout(ctx, stayID, "")
	require.NoError(t, err)
	assert.False(t, first.AlreadyDone)
	assert.Equal(t, domain.ReservationCheckedOut, first.Reservation.Status)

	second, err := s.reservations.PublicCheckout(ctx, stayID, "")
	require.NoError(t, err)
	assert.True(t, second.AlreadyDone)

	client, err := s.clientRepo.FindByID(ctx, azurClient)
	require.NoError(t, err)
	assert.Equal(t, 400, client.Points(), "points are credited once")
}

func TestReservationService_OnlineCheckinAndPayment(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	r, err := s.reservations.SubmitOnlineCheckin(ctx, stayID, domain.FormAnswers{"passport": "X123", "eta": "18:00"})
	require.NoError(t, err)
	assert.Equal(t, domain.CheckinSubmitted, r.OnlineCheckinStatus)
	assert.Equal(t, "X123", r.OnlineCheckinData["passport"])

	r, err = s.reservations.RecordPayment(ctx, stayID, dec("60"), "card")
	require.NoError(t, err)
	assert.True(t, r.MontantPaye.Decimal.Equal(dec("160")))
	assert.True(t, r.SoldeDu.Decimal.Equal(dec("200")))

	r, err = s.reservations.ChangeStatus(ctx, stayID, "checked-in", "", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.CheckinCompleted, r.OnlineCheckinStatus)

	list, err := s.reservations.ListReservations(ctx, repository.ReservationFilter{HostID: azurID})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
