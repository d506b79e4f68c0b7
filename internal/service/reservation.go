package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/metrics"
	"github.com/orderspot/connecthost-api/internal/repository"
)

var (
	ErrReservationNotFound     = repository.ErrReservationNotFound
	ErrReservationTypeDisabled = errors.New("this reservation type is disabled for the host")
)

type ReservationRepository interface {
	Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error)
	FindByID(ctx context.Context, id uint) (domain.Reservation, error)
	Find(ctx context.Context, f repository.ReservationFilter) ([]domain.Reservation, error)
	Update(ctx context.Context, res domain.Reservation, expectedVersion uint, extra repository.ReservationUpdate) (domain.Reservation, error)
}

type ClientFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Client, error)
}

type ReservationService struct {
	repo      ReservationRepository
	hosts     HostLookup
	locations LocationFinder
	clients   ClientFinder
	now       func() time.Time
}

func NewReservationService(repo ReservationRepository, hosts HostLookup, locations LocationFinder, clients ClientFinder) *ReservationService {
	return &ReservationService{
		repo:      repo,
		hosts:     hosts,
		locations: locations,
		clients:   clients,
		now:       time.Now,
	}
}

type ReservationInput struct {
	HostID          uint
	LocationID      uint
	ClientName      string
	ClientID        *uint
	DateArrivee     time.Time
	DateDepart      *time.Time
	NombrePersonnes int
	PrixTotal       decimal.NullDecimal
	Currency        string
}

// CreateReservation books a room or a table. The reservation type follows
// the location and must be enabled in the host's settings. Without an
// explicit total the location's stay price is used.
func (s *ReservationService) CreateReservation(ctx context.Context, in ReservationInput) (domain.Reservation, error) {
	host, err := s.hosts.FindByID(ctx, in.HostID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.hosts.FindByID -> %w", err)
	}

	loc, err := s.locations.FindLocationByID(ctx, in.LocationID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.locations.FindLocationByID -> %w", err)
	}
	if loc.HostID != host.ID {
		return domain.Reservation{}, fmt.Errorf("%w: location %d", ErrForeignHost, loc.ID)
	}

	resType, err := domain.ParseReservationType(string(loc.Type))
	if err != nil {
		return domain.Reservation{}, err
	}
	if !host.Reservation.Allows(resType) {
		return domain.Reservation{}, ErrReservationTypeDisabled
	}

	if in.ClientID != nil {
		client, err := s.clients.FindByID(ctx, *in.ClientID)
		if err != nil {
			return domain.Reservation{}, fmt.Errorf("s.clients.FindByID -> %w", err)
		}
		if client.HostID != host.ID {
			return domain.Reservation{}, fmt.Errorf("%w: client %d", ErrForeignHost, client.ID)
		}
		if in.ClientName == "" {
			in.ClientName = client.Name
		}
	}

	r := domain.Reservation{
		HostID:          host.ID,
		LocationID:      loc.ID,
		Type:            resType,
		ClientName:      in.ClientName,
		ClientID:        in.ClientID,
		DateArrivee:     in.DateArrivee,
		DateDepart:      in.DateDepart,
		Status:          domain.ReservationPending,
		NombrePersonnes: in.NombrePersonnes,
		PrixTotal:       in.PrixTotal,
		MontantPaye:     decimal.NewNullDecimal(decimal.Zero),
		Currency:        in.Currency,
	}
	if err = r.Validate(); err != nil {
		return domain.Reservation{}, err
	}
	if !r.PrixTotal.Valid {
		r.PrixTotal = loc.StayPrice(r.Nights())
	}
	r.RefreshBalance()

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id uint) (domain.Reservation, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return r, nil
}

func (s *ReservationService) ListReservations(ctx context.Context, f repository.ReservationFilter) ([]domain.Reservation, error) {
	reservations, err := s.repo.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return reservations, nil
}

// ChangeStatus moves a reservation to target. A check-out credits the
// loyalty points of the stay to the linked client in the same write.
func (s *ReservationService) ChangeStatus(ctx context.Context, id uint, target, notes string, expectedVersion *uint) (domain.Reservation, error) {
	status, err := domain.ParseReservationStatus(target)
	if err != nil {
		return domain.Reservation{}, err
	}

	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if expectedVersion != nil && *expectedVersion != r.Version {
		return domain.Reservation{}, ErrStaleWrite
	}

	return s.transition(ctx, r, status, notes)
}

// CheckoutOutcome is the result of the public check-out page. AlreadyDone
// reports a reservation that was closed before the request.
type CheckoutOutcome struct {
	Reservation domain.Reservation `json:"reservation"`
	AlreadyDone bool               `json:"already_done"`
}

func (s *ReservationService) PublicCheckout(ctx context.Context, id uint, notes string) (CheckoutOutcome, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CheckoutOutcome{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if r.Status.IsTerminal() {
		return CheckoutOutcome{Reservation: r, AlreadyDone: true}, nil
	}

	updated, err := s.transition(ctx, r, domain.ReservationCheckedOut, notes)
	if err != nil {
		return CheckoutOutcome{}, err
	}

	return CheckoutOutcome{Reservation: updated}, nil
}

func (s *ReservationService) SubmitOnlineCheckin(ctx context.Context, id uint, data domain.FormAnswers) (domain.Reservation, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	version := r.Version
	if err = r.SubmitOnlineCheckin(data); err != nil {
		return domain.Reservation{}, err
	}

	updated, err := s.repo.Update(ctx, r, version, repository.ReservationUpdate{})
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ReservationService) RecordPayment(ctx context.Context, id uint, amount decimal.Decimal, method string) (domain.Reservation, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	version := r.Version
	if err = r.RecordPayment(amount); err != nil {
		return domain.Reservation{}, err
	}

	updated, err := s.repo.Update(ctx, r, version, repository.ReservationUpdate{
		Payment: &domain.Payment{
			HostID:     r.HostID,
			TargetType: domain.PaymentForReservation,
			TargetID:   r.ID,
			Amount:     amount,
			Method:     method,
		},
	})
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ReservationService) transition(ctx context.Context, r domain.Reservation, status domain.ReservationStatus, notes string) (domain.Reservation, error) {
	version := r.Version
	if err := r.ApplyStatus(status, notes, s.now()); err != nil {
		return domain.Reservation{}, err
	}

	var extra repository.ReservationUpdate
	if status == domain.ReservationCheckedOut {
		host, err := s.hosts.FindByID(ctx, r.HostID)
		if err != nil {
			return domain.Reservation{}, fmt.Errorf("s.hosts.FindByID -> %w", err)
		}

		// Points are only kept on the stay when someone receives them.
		if points := host.Loyalty.PointsFor(domain.OrZero(r.PrixTotal)); points > 0 && r.ClientID != nil {
			r.LoyaltyPointsEarned = points
			extra.LoyaltyClientID = r.ClientID
			extra.LoyaltyPoints = points
		}
	}

	updated, err := s.repo.Update(ctx, r, version, extra)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	metrics.ReservationTransitions.WithLabelValues(string(status)).Inc()
	if extra.LoyaltyPoints > 0 {
		metrics.LoyaltyPointsAwarded.Add(float64(extra.LoyaltyPoints))
		zap.L().Info("loyalty points credited",
			zap.Uint("reservation_id", r.ID),
			zap.Uint("client_id", *extra.LoyaltyClientID),
			zap.Int("points", extra.LoyaltyPoints),
		)
	}

	return updated, nil
}
