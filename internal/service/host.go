package service

import (
	"context"
	"fmt"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository"
)

var (
	ErrHostNotFound      = repository.ErrHostNotFound
	ErrNoReservationType = domain.ErrNoReservationType
)

type HostRepository interface {
	Create(ctx context.Context, host domain.Host) (domain.Host, error)
	FindByID(ctx context.Context, id uint) (domain.Host, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]domain.Host, error)
	FindAll(ctx context.Context) ([]domain.Host, error)
	Count(ctx context.Context) (int64, error)
	UpdateSettings(ctx context.Context, host domain.Host) (domain.Host, error)
	Delete(ctx context.Context, id uint) error
}

type HostService struct {
	repo           HostRepository
	defaultLoyalty domain.LoyaltySettings
}

// NewHostService creates the service. New hosts start with defaultLoyalty
// and with both reservation types enabled.
func NewHostService(repo HostRepository, defaultLoyalty domain.LoyaltySettings) *HostService {
	return &HostService{
		repo:           repo,
		defaultLoyalty: defaultLoyalty,
	}
}

func (s *HostService) CreateHost(ctx context.Context, host domain.Host) (domain.Host, error) {
	if host.Reservation.Validate() != nil {
		host.Reservation.EnableRoomReservations = true
		host.Reservation.EnableTableReservations = true
	}
	if host.Loyalty.Rounding == "" {
		host.Loyalty = s.defaultLoyalty
	}

	created, err := s.repo.Create(ctx, host)
	if err != nil {
		return domain.Host{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *HostService) GetHost(ctx context.Context, id uint) (domain.Host, error) {
	host, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Host{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return host, nil
}

func (s *HostService) ListHosts(ctx context.Context) ([]domain.Host, error) {
	hosts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return hosts, nil
}

// UpdateSettings saves the reservation and loyalty settings of a host. When
// both reservation types are disabled nothing is written and the stored
// settings are returned with ErrNoReservationType.
func (s *HostService) UpdateSettings(ctx context.Context, id uint, res domain.ReservationSettings, loyalty domain.LoyaltySettings) (domain.Host, error) {
	host, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Host{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if loyalty.Rounding == "" {
		loyalty.Rounding = domain.RoundFloor
	}

	if err = host.ApplySettings(res, loyalty); err != nil {
		return host, err
	}

	updated, err := s.repo.UpdateSettings(ctx, host)
	if err != nil {
		return domain.Host{}, fmt.Errorf("s.repo.UpdateSettings -> %w", err)
	}

	return updated, nil
}

func (s *HostService) DeleteHost(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
