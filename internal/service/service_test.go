package service

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository"
	"github.com/orderspot/connecthost-api/internal/repository/dao"
)

// Ids of the seeded fixture records in a fresh database.
const (
	azurID     uint = 1
	paulID     uint = 2
	guestID    uint = 3
	roomID     uint = 1
	tableID    uint = 2
	spaID      uint = 1
	shuttleID  uint = 2
	burgerID   uint = 1
	stayID     uint = 1
	spaOrderID uint = 1
	burgerOrd  uint = 2
	azurClient uint = 1
)

var fixedNow = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

type stack struct {
	hosts        *repository.HostRepository
	users        *repository.UserRepository
	venues       *repository.VenueRepository
	catalogRepo  *repository.CatalogRepository
	orderRepo    *repository.OrderRepository
	resRepo      *repository.ReservationRepository
	clientRepo   *repository.ClientRepository
	payments     *repository.PaymentRepository
	enricher     *Enricher
	auth         *AuthService
	hostSvc      *HostService
	venueSvc     *VenueService
	catalog      *CatalogService
	clients      *ClientService
	orders       *OrderService
	reservations *ReservationService
	production   *ProductionService
	invoices     *InvoiceService
	exports      *ExportService
}

func newStack(t *testing.T) *stack {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:svc_"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(db))
	require.NoError(t, dao.Seed(db))

	s := &stack{
		hosts:       repository.NewHostRepository(dao.NewHostDAO(db)),
		users:       repository.NewUserRepository(dao.NewUserDAO(db)),
		venues:      repository.NewVenueRepository(dao.NewVenueDAO(db)),
		catalogRepo: repository.NewCatalogRepository(dao.NewCatalogDAO(db)),
		orderRepo:   repository.NewOrderRepository(dao.NewOrderDAO(db)),
		resRepo:     repository.NewReservationRepository(dao.NewReservationDAO(db)),
		clientRepo:  repository.NewClientRepository(dao.NewClientDAO(db)),
		payments:    repository.NewPaymentRepository(dao.NewPaymentDAO(db)),
	}

	s.enricher = NewEnricher(EnricherDeps{
		Hosts:     s.hosts,
		Locations: ResolverFunc(s.venues.LocationNames),
		Services:  ResolverFunc(s.catalogRepo.ServiceNames),
		MenuItems: ResolverFunc(s.catalogRepo.MenuItemNames),
		Clients:   ResolverFunc(s.clientRepo.ClientNames),
		Users:     ResolverFunc(s.users.DisplayNames),
	})
	s.auth = NewAuthService(s.users, s.hosts)
	s.hostSvc = NewHostService(s.hosts, domain.DefaultLoyaltySettings())
	s.venueSvc = NewVenueService(s.venues, s.hosts)
	s.catalog = NewCatalogService(s.catalogRepo, s.hosts)
	s.clients = NewClientService(s.clientRepo, s.users, s.orderRepo, s.hosts)
	s.orders = NewOrderService(s.orderRepo, s.venues, s.catalogRepo, s.clients)
	s.orders.now = func() time.Time { return fixedNow }
	s.reservations = NewReservationService(s.resRepo, s.hosts, s.venues, s.clientRepo)
	s.reservations.now = func() time.Time { return fixedNow }
	s.production = NewProductionService(s.orderRepo, s.catalogRepo, s.enricher, 30*time.Second)
	s.production.now = func() time.Time { return fixedNow }
	s.invoices = NewInvoiceService(s.orderRepo, s.resRepo, s.payments, s.hosts, s.enricher)
	s.exports = NewExportService(s.orderRepo, s.enricher)
	s.exports.now = func() time.Time { return fixedNow }

	return s
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func uintPtr(v uint) *uint { return &v }
