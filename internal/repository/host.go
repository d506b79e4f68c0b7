package repository

import (
	"context"
	"fmt"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository/dao"
)

type HostDAO interface {
	Insert(ctx context.Context, host dao.Host) (dao.Host, error)
	FindByID(ctx context.Context, id uint) (dao.Host, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Host, error)
	FindAll(ctx context.Context) ([]dao.Host, error)
	Count(ctx context.Context) (int64, error)
	UpdateSettings(ctx context.Context, id uint, res dao.ReservationSettings, loyalty dao.LoyaltySettings) (dao.Host, error)
	DeleteCascade(ctx context.Context, id uint) error
}

type HostRepository struct {
	dao HostDAO
}

func NewHostRepository(dao HostDAO) *HostRepository {
	return &HostRepository{dao: dao}
}

func (r *HostRepository) Create(ctx context.Context, host domain.Host) (domain.Host, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(host))
	if err != nil {
		return domain.Host{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}
	return r.daoToDomain(created), nil
}

func (r *HostRepository) FindByID(ctx context.Context, id uint) (domain.Host, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Host{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}
	return r.daoToDomain(found), nil
}

// FindByIDs returns the hosts keyed by id. Unknown ids are absent.
func (r *HostRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]domain.Host, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	hosts := make(map[uint]domain.Host, len(found))
	for _, h := range found {
		hosts[h.ID] = r.daoToDomain(h)
	}
	return hosts, nil
}

func (r *HostRepository) FindAll(ctx context.Context) ([]domain.Host, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	hosts := make([]domain.Host, 0, len(found))
	for _, h := range found {
		hosts = append(hosts, r.daoToDomain(h))
	}
	return hosts, nil
}

func (r *HostRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}
	return n, nil
}

func (r *HostRepository) UpdateSettings(ctx context.Context, host domain.Host) (domain.Host, error) {
	d := r.domainToDao(host)
	updated, err := r.dao.UpdateSettings(ctx, host.ID, d.Reservation, d.Loyalty)
	if err != nil {
		return domain.Host{}, fmt.Errorf("r.dao.UpdateSettings -> %w", err)
	}
	return r.daoToDomain(updated), nil
}

func (r *HostRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.DeleteCascade(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteCascade -> %w", err)
	}
	return nil
}

func (r *HostRepository) domainToDao(h domain.Host) dao.Host {
	return dao.Host{
		ID:       h.ID,
		Name:     h.Name,
		Email:    h.Email,
		Currency: h.Currency,
		Language: h.Language,
		Reservation: dao.ReservationSettings{
			EnableRooms:  h.Reservation.EnableRoomReservations,
			EnableTables: h.Reservation.EnableTableReservations,
			HeroImageURL: h.Reservation.HeroImageURL,
		},
		Loyalty: dao.LoyaltySettings{
			Enabled:       h.Loyalty.Enabled,
			PointsPerUnit: h.Loyalty.PointsPerUnit,
			Rounding:      string(h.Loyalty.Rounding),
		},
	}
}

func (r *HostRepository) daoToDomain(h dao.Host) domain.Host {
	return domain.Host{
		ID:       h.ID,
		Name:     h.Name,
		Email:    h.Email,
		Currency: h.Currency,
		Language: h.Language,
		Reservation: domain.ReservationSettings{
			EnableRoomReservations:  h.Reservation.EnableRooms,
			EnableTableReservations: h.Reservation.EnableTables,
			HeroImageURL:            h.Reservation.HeroImageURL,
		},
		Loyalty: domain.LoyaltySettings{
			Enabled:       h.Loyalty.Enabled,
			PointsPerUnit: h.Loyalty.PointsPerUnit,
			Rounding:      domain.Rounding(h.Loyalty.Rounding),
		},
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}
