package repository

import (
	"context"
	"fmt"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository/dao"
)

type ClientDAO interface {
	Insert(ctx context.Context, c dao.Client) (dao.Client, error)
	FindByID(ctx context.Context, id uint) (dao.Client, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Client, error)
	FindByHost(ctx context.Context, hostID uint) ([]dao.Client, error)
	FindByUser(ctx context.Context, userID uint, email string) ([]dao.Client, error)
}

type ClientRepository struct {
	dao ClientDAO
}

func NewClientRepository(dao ClientDAO) *ClientRepository {
	return &ClientRepository{dao: dao}
}

func (r *ClientRepository) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	created, err := r.dao.Insert(ctx, dao.Client{
		HostID:         c.HostID,
		Name:           c.Name,
		Email:          c.Email,
		Type:           string(c.Type),
		Credit:         c.Credit,
		PointsFidelite: c.PointsFidelite,
		UserID:         c.UserID,
	})
	if err != nil {
		return domain.Client{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}
	return clientToDomain(created), nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id uint) (domain.Client, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Client{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}
	return clientToDomain(found), nil
}

func (r *ClientRepository) FindByHost(ctx context.Context, hostID uint) ([]domain.Client, error) {
	found, err := r.dao.FindByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByHost -> %w", err)
	}
	return clientsToDomain(found), nil
}

// FindByUser returns the client records of a user, matched by link or email.
func (r *ClientRepository) FindByUser(ctx context.Context, userID uint, email string) ([]domain.Client, error) {
	found, err := r.dao.FindByUser(ctx, userID, email)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUser -> %w", err)
	}
	return clientsToDomain(found), nil
}

func (r *ClientRepository) ClientNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	names := make(map[uint]string, len(found))
	for _, c := range found {
		names[c.ID] = c.Name
	}
	return names, nil
}

func clientToDomain(c dao.Client) domain.Client {
	return domain.Client{
		ID:             c.ID,
		HostID:         c.HostID,
		Name:           c.Name,
		Email:          c.Email,
		Type:           domain.ClientType(c.Type),
		Credit:         c.Credit,
		PointsFidelite: c.PointsFidelite,
		UserID:         c.UserID,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func clientsToDomain(found []dao.Client) []domain.Client {
	clients := make([]domain.Client, 0, len(found))
	for _, c := range found {
		clients = append(clients, clientToDomain(c))
	}
	return clients
}
