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
	"github.com/orderspot/connecthost-api/internal/session"
)

var (
	ErrOrderNotFound      = repository.ErrOrderNotFound
	ErrStaleWrite         = repository.ErrStaleWrite
	ErrLoginRequired      = errors.New("this service requires a signed-in user")
	ErrServiceUnavailable = errors.New("service is not offered at this location")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	Find(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error)
	Update(ctx context.Context, order domain.Order, expectedVersion uint, payment *domain.Payment) (domain.Order, error)
}

type LocationFinder interface {
	FindLocationByID(ctx context.Context, id uint) (domain.Location, error)
	FindLocationByRef(ctx context.Context, hostID uint, refID string) (domain.Location, error)
}

type OrderCatalog interface {
	FindServiceByID(ctx context.Context, id uint) (domain.Service, error)
	FindFormByID(ctx context.Context, id uint) (domain.CustomForm, error)
	FindMenuItemByID(ctx context.Context, id uint) (domain.MenuItem, error)
	FindProductsByIDs(ctx context.Context, ids []uint) (map[uint]domain.Product, error)
}

// ClientLocator finds the client record a user holds at a host.
type ClientLocator interface {
	ClientAtHost(ctx context.Context, userID, hostID uint) (*domain.Client, error)
}

type OrderService struct {
	repo      OrderRepository
	locations LocationFinder
	catalog   OrderCatalog
	clients   ClientLocator
	now       func() time.Time
}

func NewOrderService(repo OrderRepository, locations LocationFinder, catalog OrderCatalog, clients ClientLocator) *OrderService {
	return &OrderService{
		repo:      repo,
		locations: locations,
		catalog:   catalog,
		clients:   clients,
		now:       time.Now,
	}
}

type ServiceOrderInput struct {
	HostID    uint
	RefID     string
	ServiceID uint
	Answers   domain.FormAnswers
	ClientNom string
	Notes     string
}

// PlaceServiceOrder orders a service from the location behind a QR
// reference. Answers are checked against the service's form and stored
// encoded in donneesFormulaire.
func (s *OrderService) PlaceServiceOrder(ctx context.Context, in ServiceOrderInput, sess *session.Session) (domain.Order, error) {
	loc, err := s.locations.FindLocationByRef(ctx, in.HostID, in.RefID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.locations.FindLocationByRef -> %w", err)
	}

	svc, err := s.catalog.FindServiceByID(ctx, in.ServiceID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.catalog.FindServiceByID -> %w", err)
	}
	if svc.HostID != in.HostID {
		return domain.Order{}, fmt.Errorf("service %d of host %d -> %w", svc.ID, svc.HostID, ErrServiceNotFound)
	}
	if !svc.AvailableAt(loc.ID) {
		return domain.Order{}, ErrServiceUnavailable
	}
	if svc.LoginRequired && sess == nil {
		return domain.Order{}, ErrLoginRequired
	}

	if svc.FormID != nil {
		form, err := s.catalog.FindFormByID(ctx, *svc.FormID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("s.catalog.FindFormByID -> %w", err)
		}
		if err = form.ValidateAnswers(in.Answers); err != nil {
			return domain.Order{}, err
		}
	}

	encoded, err := in.Answers.Encode()
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ServiceID:         &svc.ID,
		HostID:            in.HostID,
		ChambreTableID:    &loc.ID,
		ClientNom:         in.ClientNom,
		Status:            domain.OrderPending,
		PrixTotal:         svc.Price,
		Currency:          svc.Currency,
		DonneesFormulaire: encoded,
		Notes:             in.Notes,
	}

	return s.create(ctx, order, sess)
}

type MenuOrderInput struct {
	HostID     uint
	RefID      string
	MenuItemID uint
	Quantity   int
	Options    domain.FormAnswers
	ClientNom  string
	Notes      string
}

// PlaceMenuOrder orders a menu item. The chosen options are stored in
// donneesFormulaire keyed by option group.
func (s *OrderService) PlaceMenuOrder(ctx context.Context, in MenuOrderInput, sess *session.Session) (domain.Order, error) {
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 {
		return domain.Order{}, ErrInvalidQuantity
	}

	loc, err := s.locations.FindLocationByRef(ctx, in.HostID, in.RefID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.locations.FindLocationByRef -> %w", err)
	}

	item, err := s.catalog.FindMenuItemByID(ctx, in.MenuItemID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.catalog.FindMenuItemByID -> %w", err)
	}
	if item.HostID != in.HostID {
		return domain.Order{}, fmt.Errorf("menu item %d of host %d -> %w", item.ID, item.HostID, ErrMenuItemNotFound)
	}

	encoded, err := in.Options.Encode()
	if err != nil {
		return domain.Order{}, err
	}

	items := []domain.OrderItem{{
		MenuItemID: &item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   in.Quantity,
	}}

	order := domain.Order{
		MenuItemID:        &item.ID,
		HostID:            in.HostID,
		ChambreTableID:    &loc.ID,
		ClientNom:         in.ClientNom,
		Status:            domain.OrderPending,
		Items:             items,
		PrixTotal:         decimal.NewNullDecimal(domain.TotalOf(items)),
		DonneesFormulaire: encoded,
		Notes:             in.Notes,
	}

	return s.create(ctx, order, sess)
}

type LegacyOrderInput struct {
	UserID uint
	HostID uint
	Items  []domain.OrderItem
	Notes  string
}

// CreateLegacyOrder stores an order made of free line items. The total is
// always computed here as Σ(price × quantity), whatever the caller sent.
func (s *OrderService) CreateLegacyOrder(ctx context.Context, in LegacyOrderInput) (domain.Order, error) {
	if len(in.Items) == 0 {
		return domain.Order{}, domain.ErrEmptyOrder
	}

	if err := s.fillProductNames(ctx, in.Items); err != nil {
		return domain.Order{}, err
	}

	userID := in.UserID
	order := domain.Order{
		HostID:      in.HostID,
		UserID:      &userID,
		Status:      domain.OrderPending,
		Items:       in.Items,
		PrixTotal:   decimal.NewNullDecimal(domain.TotalOf(in.Items)),
		MontantPaye: decimal.NewNullDecimal(decimal.Zero),
		Notes:       in.Notes,
		DateHeure:   s.now(),
	}
	order.RefreshBalance()

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error) {
	orders, err := s.repo.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return orders, nil
}

// ChangeStatus moves an order to target through its transition function.
// When expectedVersion is set it must match the stored version.
func (s *OrderService) ChangeStatus(ctx context.Context, id uint, target string, expectedVersion *uint) (domain.Order, error) {
	status, err := domain.ParseOrderStatus(target)
	if err != nil {
		return domain.Order{}, err
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if expectedVersion != nil && *expectedVersion != order.Version {
		return domain.Order{}, ErrStaleWrite
	}

	version := order.Version
	if err = order.ApplyStatus(status); err != nil {
		return domain.Order{}, err
	}

	updated, err := s.repo.Update(ctx, order, version, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	metrics.OrderTransitions.WithLabelValues(string(status)).Inc()
	zap.L().Debug("order status changed", zap.Uint("order_id", id), zap.String("status", string(status)))

	return updated, nil
}

// RecordPayment adds a received amount to montantPaye and keeps a payment
// row with it.
func (s *OrderService) RecordPayment(ctx context.Context, id uint, amount decimal.Decimal, method string) (domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	version := order.Version
	if err = order.RecordPayment(amount); err != nil {
		return domain.Order{}, err
	}

	payment := &domain.Payment{
		HostID:     order.HostID,
		TargetType: domain.PaymentForOrder,
		TargetID:   order.ID,
		Amount:     amount,
		Method:     method,
	}

	updated, err := s.repo.Update(ctx, order, version, payment)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *OrderService) create(ctx context.Context, order domain.Order, sess *session.Session) (domain.Order, error) {
	if sess != nil {
		userID := sess.UserID
		order.UserID = &userID

		if s.clients != nil {
			client, err := s.clients.ClientAtHost(ctx, sess.UserID, order.HostID)
			if err != nil {
				return domain.Order{}, fmt.Errorf("s.clients.ClientAtHost -> %w", err)
			}
			if client != nil {
				order.ClientID = &client.ID
			}
		}
	}

	order.MontantPaye = decimal.NewNullDecimal(decimal.Zero)
	order.RefreshBalance()
	order.DateHeure = s.now()

	if err := order.Validate(); err != nil {
		return domain.Order{}, err
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// fillProductNames names the line items that only reference a product.
func (s *OrderService) fillProductNames(ctx context.Context, items []domain.OrderItem) error {
	ids := newIDSet()
	for _, item := range items {
		if item.Quantity < 1 {
			return ErrInvalidQuantity
		}
		if item.Price.IsNegative() {
			return domain.ErrInvalidAmount
		}
		if item.ProductID != nil && item.Name == "" {
			ids.add(*item.ProductID)
		}
	}
	if ids.empty() {
		return nil
	}

	products, err := s.catalog.FindProductsByIDs(ctx, ids.list())
	if err != nil {
		return fmt.Errorf("s.catalog.FindProductsByIDs -> %w", err)
	}

	for i := range items {
		if items[i].ProductID == nil || items[i].Name != "" {
			continue
		}
		if p, ok := products[*items[i].ProductID]; ok {
			items[i].Name = p.Name
		}
	}
	return nil
}
