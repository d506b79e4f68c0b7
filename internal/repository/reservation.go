package repository

import (
	"context"
	"fmt"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository/dao"
)

type ReservationDAO interface {
	Insert(ctx context.Context, r dao.Reservation) (dao.Reservation, error)
	FindByID(ctx context.Context, id uint) (dao.Reservation, error)
	Find(ctx context.Context, f dao.ReservationFilter) ([]dao.Reservation, error)
	Update(ctx context.Context, r dao.Reservation, expectedVersion uint, payment *dao.Payment, credit *dao.LoyaltyCredit) (dao.Reservation, error)
}

type ReservationFilter struct {
	HostID     uint
	LocationID uint
	ClientID   uint
	Statuses   []domain.ReservationStatus
}

// ReservationUpdate carries the side effects committed with a reservation
// write.
type ReservationUpdate struct {
	Payment         *domain.Payment
	LoyaltyClientID *uint
	LoyaltyPoints   int
}

type ReservationRepository struct {
	dao ReservationDAO
}

func NewReservationRepository(dao ReservationDAO) *ReservationRepository {
	return &ReservationRepository{dao: dao}
}

func (r *ReservationRepository) Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	d, err := reservationToDao(res)
	if err != nil {
		return domain.Reservation{}, err
	}

	created, err := r.dao.Insert(ctx, d)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}
	return reservationToDomain(created)
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uint) (domain.Reservation, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}
	return reservationToDomain(found)
}

func (r *ReservationRepository) Find(ctx context.Context, f ReservationFilter) ([]domain.Reservation, error) {
	statuses := make([]string, 0, len(f.Statuses))
	for _, s := range f.Statuses {
		statuses = append(statuses, string(s))
	}

	found, err := r.dao.Find(ctx, dao.ReservationFilter{
		HostID:     f.HostID,
		LocationID: f.LocationID,
		ClientID:   f.ClientID,
		Statuses:   statuses,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	reservations := make([]domain.Reservation, 0, len(found))
	for _, d := range found {
		res, err := reservationToDomain(d)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, nil
}

func (r *ReservationRepository) Update(ctx context.Context, res domain.Reservation, expectedVersion uint, extra ReservationUpdate) (domain.Reservation, error) {
	d, err := reservationToDao(res)
	if err != nil {
		return domain.Reservation{}, err
	}

	var credit *dao.LoyaltyCredit
	if extra.LoyaltyClientID != nil && extra.LoyaltyPoints != 0 {
		credit = &dao.LoyaltyCredit{ClientID: *extra.LoyaltyClientID, Points: extra.LoyaltyPoints}
	}

	updated, err := r.dao.Update(ctx, d, expectedVersion, paymentToDao(extra.Payment), credit)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.Update -> %w", err)
	}
	return reservationToDomain(updated)
}

func reservationToDao(r domain.Reservation) (dao.Reservation, error) {
	d := dao.Reservation{
		ID:                  r.ID,
		HostID:              r.HostID,
		LocationID:          r.LocationID,
		Type:                string(r.Type),
		ClientName:          r.ClientName,
		ClientID:            r.ClientID,
		DateArrivee:         r.DateArrivee,
		DateDepart:          r.DateDepart,
		Status:              string(r.Status),
		NombrePersonnes:     r.NombrePersonnes,
		PrixTotal:           r.PrixTotal,
		MontantPaye:         r.MontantPaye,
		SoldeDu:             r.SoldeDu,
		Currency:            r.Currency,
		OnlineCheckinStatus: string(r.OnlineCheckinStatus),
		CheckoutNotes:       r.CheckoutNotes,
		CheckedOutAt:        r.CheckedOutAt,
		LoyaltyPointsEarned: r.LoyaltyPointsEarned,
		Version:             r.Version,
	}

	if len(r.OnlineCheckinData) > 0 {
		data, err := encodeJSON(r.OnlineCheckinData)
		if err != nil {
			return dao.Reservation{}, err
		}
		d.OnlineCheckinData = data
	}
	return d, nil
}

func reservationToDomain(r dao.Reservation) (domain.Reservation, error) {
	res := domain.Reservation{
		ID:                  r.ID,
		HostID:              r.HostID,
		LocationID:          r.LocationID,
		Type:                domain.ReservationType(r.Type),
		ClientName:          r.ClientName,
		ClientID:            r.ClientID,
		DateArrivee:         r.DateArrivee,
		DateDepart:          r.DateDepart,
		Status:              domain.ReservationStatus(r.Status),
		NombrePersonnes:     r.NombrePersonnes,
		PrixTotal:           r.PrixTotal,
		MontantPaye:         r.MontantPaye,
		SoldeDu:             r.SoldeDu,
		Currency:            r.Currency,
		OnlineCheckinStatus: domain.CheckinStatus(r.OnlineCheckinStatus),
		CheckoutNotes:       r.CheckoutNotes,
		CheckedOutAt:        r.CheckedOutAt,
		LoyaltyPointsEarned: r.LoyaltyPointsEarned,
		Version:             r.Version,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}

	if err := decodeJSON(r.OnlineCheckinData, &res.OnlineCheckinData); err != nil {
		return domain.Reservation{}, fmt.Errorf("reservation %d check-in data: %w", r.ID, err)
	}
	return res, nil
}
