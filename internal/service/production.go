package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/metrics"
	"github.com/orderspot/connecthost-api/internal/repository"
)

var activeOrderStatuses = []domain.OrderStatus{
	domain.OrderPending,
	domain.OrderConfirmed,
	domain.OrderPreparing,
	domain.OrderReady,
}

type OrderFinder interface {
	Find(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error)
}

type MenuItemLookup interface {
	FindMenuItemsByIDs(ctx context.Context, ids []uint) (map[uint]domain.MenuItem, error)
}

// ProductionTicket is one active order as shown to the kitchen or the
// service staff.
type ProductionTicket struct {
	EnrichedOrder
	Answers domain.FormAnswers  `json:"answers"`
	Options map[string][]string `json:"options,omitempty"`
}

type ProductionBoard struct {
	HostID                 uint               `json:"hostId"`
	Tickets                []ProductionTicket `json:"tickets"`
	RefreshIntervalSeconds int                `json:"refreshIntervalSeconds"`
	GeneratedAt            time.Time          `json:"generatedAt"`
}

// ProductionService builds the production display of a host. Concurrent
// requests for the same host share a single fetch.
type ProductionService struct {
	orders   OrderFinder
	menu     MenuItemLookup
	enricher *Enricher
	group    singleflight.Group
	interval atomic.Int64
	now      func() time.Time
}

func NewProductionService(orders OrderFinder, menu MenuItemLookup, enricher *Enricher, interval time.Duration) *ProductionService {
	s := &ProductionService{
		orders:   orders,
		menu:     menu,
		enricher: enricher,
		now:      time.Now,
	}
	s.SetRefreshInterval(interval)
	return s
}

// SetRefreshInterval changes the poll interval announced to displays.
// Non-positive values are ignored.
func (s *ProductionService) SetRefreshInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	s.interval.Store(int64(d))
}

func (s *ProductionService) RefreshInterval() time.Duration {
	return time.Duration(s.interval.Load())
}

func (s *ProductionService) Board(ctx context.Context, hostID uint) (ProductionBoard, error) {
	key := strconv.FormatUint(uint64(hostID), 10)
	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.build(context.WithoutCancel(ctx), hostID)
	})
	metrics.ProductionRefreshes.WithLabelValues(strconv.FormatBool(shared)).Inc()
	if err != nil {
		return ProductionBoard{}, err
	}

	return v.(ProductionBoard), nil
}

func (s *ProductionService) build(ctx context.Context, hostID uint) (ProductionBoard, error) {
	orders, err := s.orders.Find(ctx, repository.OrderFilter{HostID: hostID, Statuses: activeOrderStatuses})
	if err != nil {
		return ProductionBoard{}, fmt.Errorf("s.orders.Find -> %w", err)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].DateHeure.Before(orders[j].DateHeure)
	})

	enriched, err := s.enricher.Orders(ctx, orders)
	if err != nil {
		return ProductionBoard{}, fmt.Errorf("s.enricher.Orders -> %w", err)
	}

	itemIDs := newIDSet()
	for _, o := range orders {
		itemIDs.addPtr(o.MenuItemID)
	}
	items := map[uint]domain.MenuItem{}
	if !itemIDs.empty() {
		if items, err = s.menu.FindMenuItemsByIDs(ctx, itemIDs.list()); err != nil {
			return ProductionBoard{}, fmt.Errorf("s.menu.FindMenuItemsByIDs -> %w", err)
		}
	}

	tickets := make([]ProductionTicket, 0, len(enriched))
	for _, eo := range enriched {
		answers, err := domain.DecodeFormAnswers(eo.DonneesFormulaire)
		if err != nil {
			zap.L().Warn("unreadable form answers", zap.Uint("order_id", eo.ID), zap.Error(err))
			answers = domain.FormAnswers{}
		}

		ticket := ProductionTicket{EnrichedOrder: eo, Answers: answers}
		if eo.MenuItemID != nil {
			if item, ok := items[*eo.MenuItemID]; ok && len(item.OptionGroups) > 0 {
				ticket.Options = domain.ResolveOptionNames(item.OptionGroups, answers)
			}
		}
		tickets = append(tickets, ticket)
	}

	return ProductionBoard{
		HostID:                 hostID,
		Tickets:                tickets,
		RefreshIntervalSeconds: int(s.RefreshInterval() / time.Second),
		GeneratedAt:            s.now(),
	}, nil
}
