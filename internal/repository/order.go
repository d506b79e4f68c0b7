package repository

import (
	"context"
	"fmt"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository/dao"
)

type OrderDAO interface {
	Insert(ctx context.Context, order dao.Order) (dao.Order, error)
	FindByID(ctx context.Context, id uint) (dao.Order, error)
	Find(ctx context.Context, f dao.OrderFilter) ([]dao.Order, error)
	FindForUser(ctx context.Context, userID uint, clientIDs []uint) ([]dao.Order, error)
	Update(ctx context.Context, order dao.Order, expectedVersion uint, payment *dao.Payment) (dao.Order, error)
}

type OrderFilter struct {
	HostID   uint
	UserID   uint
	ClientID uint
	Statuses []domain.OrderStatus
}

type OrderRepository struct {
	dao OrderDAO
}

func NewOrderRepository(dao OrderDAO) *OrderRepository {
	return &OrderRepository{dao: dao}
}

func (r *OrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	created, err := r.dao.Insert(ctx, orderToDao(order))
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}
	return orderToDomain(created), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}
	return orderToDomain(found), nil
}

func (r *OrderRepository) Find(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	statuses := make([]string, 0, len(f.Statuses))
	for _, s := range f.Statuses {
		statuses = append(statuses, string(s))
	}

	found, err := r.dao.Find(ctx, dao.OrderFilter{
		HostID:   f.HostID,
		UserID:   f.UserID,
		ClientID: f.ClientID,
		Statuses: statuses,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}
	return ordersToDomain(found), nil
}

func (r *OrderRepository) FindForUser(ctx context.Context, userID uint, clientIDs []uint) ([]domain.Order, error) {
	found, err := r.dao.FindForUser(ctx, userID, clientIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindForUser -> %w", err)
	}
	return ordersToDomain(found), nil
}

// Update persists order if nobody wrote it since it was read at
// expectedVersion. It returns ErrStaleWrite otherwise.
func (r *OrderRepository) Update(ctx context.Context, order domain.Order, expectedVersion uint, payment *domain.Payment) (domain.Order, error) {
	updated, err := r.dao.Update(ctx, orderToDao(order), expectedVersion, paymentToDao(payment))
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.Update -> %w", err)
	}
	return orderToDomain(updated), nil
}

func orderToDao(o domain.Order) dao.Order {
	items := make([]dao.OrderItem, 0, len(o.Items))
	for _, i := range o.Items {
		items = append(items, dao.OrderItem{
			ID:         i.ID,
			OrderID:    o.ID,
			MenuItemID: i.MenuItemID,
			ProductID:  i.ProductID,
			Name:       i.Name,
			Price:      i.Price,
			Quantity:   i.Quantity,
		})
	}

	return dao.Order{
		ID:                o.ID,
		ServiceID:         o.ServiceID,
		MenuItemID:        o.MenuItemID,
		HostID:            o.HostID,
		ChambreTableID:    o.ChambreTableID,
		ClientNom:         o.ClientNom,
		UserID:            o.UserID,
		ClientID:          o.ClientID,
		Status:            string(o.Status),
		Items:             items,
		PrixTotal:         o.PrixTotal,
		Currency:          o.Currency,
		DonneesFormulaire: o.DonneesFormulaire,
		MontantPaye:       o.MontantPaye,
		SoldeDu:           o.SoldeDu,
		Notes:             o.Notes,
		DateHeure:         o.DateHeure,
		Version:           o.Version,
	}
}

func orderToDomain(o dao.Order) domain.Order {
	items := make([]domain.OrderItem, 0, len(o.Items))
	for _, i := range o.Items {
		items = append(items, domain.OrderItem{
			ID:         i.ID,
			MenuItemID: i.MenuItemID,
			ProductID:  i.ProductID,
			Name:       i.Name,
			Price:      i.Price,
			Quantity:   i.Quantity,
		})
	}

	return domain.Order{
		ID:                o.ID,
		ServiceID:         o.ServiceID,
		MenuItemID:        o.MenuItemID,
		HostID:            o.HostID,
		ChambreTableID:    o.ChambreTableID,
		ClientNom:         o.ClientNom,
		UserID:            o.UserID,
		ClientID:          o.ClientID,
		Status:            domain.OrderStatus(o.Status),
		Items:             items,
		PrixTotal:         o.PrixTotal,
		Currency:          o.Currency,
		DonneesFormulaire: o.DonneesFormulaire,
		MontantPaye:       o.MontantPaye,
		SoldeDu:           o.SoldeDu,
		Notes:             o.Notes,
		DateHeure:         o.DateHeure,
		Version:           o.Version,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func ordersToDomain(found []dao.Order) []domain.Order {
	orders := make([]domain.Order, 0, len(found))
	for _, o := range found {
		orders = append(orders, orderToDomain(o))
	}
	return orders
}

func paymentToDao(p *domain.Payment) *dao.Payment {
	if p == nil {
		return nil
	}
	return &dao.Payment{
		HostID:     p.HostID,
		TargetType: dao.PaymentTarget(p.TargetType),
		TargetID:   p.TargetID,
		Amount:     p.Amount,
		Method:     p.Method,
	}
}
