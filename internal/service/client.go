package service

import (
	"context"
	"fmt"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository"
)

var (
	ErrClientNotFound = repository.ErrClientNotFound
)

type ClientRepository interface {
	Create(ctx context.Context, c domain.Client) (domain.Client, error)
	FindByID(ctx context.Context, id uint) (domain.Client, error)
	FindByHost(ctx context.Context, hostID uint) ([]domain.Client, error)
	FindByUser(ctx context.Context, userID uint, email string) ([]domain.Client, error)
}

type UserOrderFinder interface {
	FindForUser(ctx context.Context, userID uint, clientIDs []uint) ([]domain.Order, error)
}

type ClientService struct {
	repo   ClientRepository
	users  UserRepository
	orders UserOrderFinder
	hosts  HostRepository
}

func NewClientService(repo ClientRepository, users UserRepository, orders UserOrderFinder, hosts HostRepository) *ClientService {
	return &ClientService{
		repo:   repo,
		users:  users,
		orders: orders,
		hosts:  hosts,
	}
}

func (s *ClientService) CreateClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	if _, err := s.hosts.FindByID(ctx, c.HostID); err != nil {
		return domain.Client{}, fmt.Errorf("s.hosts.FindByID -> %w", err)
	}
	if c.UserID != nil {
		if _, err := s.users.FindByID(ctx, *c.UserID); err != nil {
			return domain.Client{}, fmt.Errorf("s.users.FindByID -> %w", err)
		}
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return domain.Client{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ClientService) ListClients(ctx context.Context, hostID uint) ([]domain.Client, error) {
	clients, err := s.repo.FindByHost(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByHost -> %w", err)
	}

	return clients, nil
}

// Summary computes the financial position of a user across every host where
// they hold a client record or placed an order.
func (s *ClientService) Summary(ctx context.Context, userID uint) (domain.ClientSummary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.ClientSummary{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	clients, err := s.repo.FindByUser(ctx, user.ID, user.Email)
	if err != nil {
		return domain.ClientSummary{}, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	clientIDs := make([]uint, 0, len(clients))
	for _, c := range clients {
		clientIDs = append(clientIDs, c.ID)
	}

	orders, err := s.orders.FindForUser(ctx, user.ID, clientIDs)
	if err != nil {
		return domain.ClientSummary{}, fmt.Errorf("s.orders.FindForUser -> %w", err)
	}

	hostIDs := newIDSet()
	for _, c := range clients {
		hostIDs.add(c.HostID)
	}
	for _, o := range orders {
		hostIDs.add(o.HostID)
	}

	hosts, err := s.hosts.FindByIDs(ctx, hostIDs.list())
	if err != nil {
		return domain.ClientSummary{}, fmt.Errorf("s.hosts.FindByIDs -> %w", err)
	}

	return domain.Summarize(clients, orders, hosts), nil
}

// ClientAtHost picks the client record a user holds at a host, if any.
func (s *ClientService) ClientAtHost(ctx context.Context, userID, hostID uint) (*domain.Client, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	clients, err := s.repo.FindByUser(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	for i := range clients {
		if clients[i].HostID == hostID {
			return &clients[i], nil
		}
	}
	return nil, nil
}
