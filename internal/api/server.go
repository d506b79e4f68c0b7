package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/orderspot/connecthost-api/docs"
	"github.com/orderspot/connecthost-api/internal/api/handler/legacy"
	v1 "github.com/orderspot/connecthost-api/internal/api/handler/v1"
	"github.com/orderspot/connecthost-api/internal/api/middleware"
	"github.com/orderspot/connecthost-api/internal/config"
	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository"
	"github.com/orderspot/connecthost-api/internal/repository/dao"
	"github.com/orderspot/connecthost-api/internal/service"
)

type Server struct {
	Config     *config.AppConfig
	Router     *gin.Engine
	Production *service.ProductionService
}

type repositories struct {
	hosts        *repository.HostRepository
	users        *repository.UserRepository
	venues       *repository.VenueRepository
	catalog      *repository.CatalogRepository
	orders       *repository.OrderRepository
	reservations *repository.ReservationRepository
	clients      *repository.ClientRepository
	payments     *repository.PaymentRepository
}

func newRepositories(db *gorm.DB) repositories {
	return repositories{
		hosts:        repository.NewHostRepository(dao.NewHostDAO(db)),
		users:        repository.NewUserRepository(dao.NewUserDAO(db)),
		venues:       repository.NewVenueRepository(dao.NewVenueDAO(db)),
		catalog:      repository.NewCatalogRepository(dao.NewCatalogDAO(db)),
		orders:       repository.NewOrderRepository(dao.NewOrderDAO(db)),
		reservations: repository.NewReservationRepository(dao.NewReservationDAO(db)),
		clients:      repository.NewClientRepository(dao.NewClientDAO(db)),
		payments:     repository.NewPaymentRepository(dao.NewPaymentDAO(db)),
	}
}

type handlers struct {
	auth         *v1.AuthHandler
	user         *v1.UserHandler
	host         *v1.HostHandler
	venue        *v1.VenueHandler
	catalog      *v1.CatalogHandler
	order        *v1.OrderHandler
	reservation  *v1.ReservationHandler
	client       *v1.ClientHandler
	production   *v1.ProductionHandler
	guest        *v1.GuestHandler
	legacy       *legacy.Handler
	authenticate *middleware.Authenticator
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	h, err := s.initHandlers(newRepositories(db))
	if err != nil {
		return nil, err
	}

	s.MountMiddlewares()
	s.MountHandlers(h)

	return s, nil
}

// LoyaltyDefaults turns the loyalty section into the settings given to new
// hosts.
func LoyaltyDefaults(conf *config.LoyaltyConfig) (domain.LoyaltySettings, error) {
	settings := domain.DefaultLoyaltySettings()
	if conf == nil {
		return settings, nil
	}

	if conf.PointsPerUnit != "" {
		rate, err := decimal.NewFromString(conf.PointsPerUnit)
		if err != nil {
			return domain.LoyaltySettings{}, fmt.Errorf("loyalty.points_per_unit -> %w", err)
		}
		if rate.IsNegative() {
			return domain.LoyaltySettings{}, fmt.Errorf("loyalty.points_per_unit -> %w", domain.ErrInvalidAmount)
		}
		settings.PointsPerUnit = rate
	}

	switch r := domain.Rounding(conf.Rounding); r {
	case "":
	case domain.RoundFloor, domain.RoundNearest, domain.RoundCeil:
		settings.Rounding = r
	default:
		return domain.LoyaltySettings{}, fmt.Errorf("loyalty.rounding: unknown mode %q", conf.Rounding)
	}

	return settings, nil
}

func (s *Server) initHandlers(repos repositories) (handlers, error) {
	loyalty, err := LoyaltyDefaults(s.Config.Loyalty)
	if err != nil {
		return handlers{}, err
	}

	enricher := service.NewEnricher(service.EnricherDeps{
		Hosts:     repos.hosts,
		Locations: service.ResolverFunc(repos.venues.LocationNames),
		Services:  service.ResolverFunc(repos.catalog.ServiceNames),
		MenuItems: service.ResolverFunc(repos.catalog.MenuItemNames),
		Clients:   service.ResolverFunc(repos.clients.ClientNames),
		Users:     service.ResolverFunc(repos.users.DisplayNames),
	})

	authSvc := service.NewAuthService(repos.users, repos.hosts)
	userSvc := service.NewUserService(repos.users)
	hostSvc := service.NewHostService(repos.hosts, loyalty)
	venueSvc := service.NewVenueService(repos.venues, repos.hosts)
	catalogSvc := service.NewCatalogService(repos.catalog, repos.hosts)
	clientSvc := service.NewClientService(repos.clients, repos.users, repos.orders, repos.hosts)
	orderSvc := service.NewOrderService(repos.orders, repos.venues, repos.catalog, clientSvc)
	reservationSvc := service.NewReservationService(repos.reservations, repos.hosts, repos.venues, repos.clients)
	storefrontSvc := service.NewStorefrontService(repos.hosts, repos.venues, repos.catalog)
	invoiceSvc := service.NewInvoiceService(repos.orders, repos.reservations, repos.payments, repos.hosts, enricher)
	exportSvc := service.NewExportService(repos.orders, enricher)
	s.Production = service.NewProductionService(repos.orders, repos.catalog, enricher, s.Config.Production.RefreshInterval)

	return handlers{
		auth:        v1.NewAuthHandler(s.Config.API, authSvc),
		user:        v1.NewUserHandler(userSvc),
		host:        v1.NewHostHandler(hostSvc),
		venue:       v1.NewVenueHandler(venueSvc),
		catalog:     v1.NewCatalogHandler(catalogSvc),
		order:       v1.NewOrderHandler(orderSvc, enricher, exportSvc),
		reservation: v1.NewReservationHandler(reservationSvc, enricher),
		client:      v1.NewClientHandler(clientSvc),
		production:  v1.NewProductionHandler(s.Production),
		guest:       v1.NewGuestHandler(storefrontSvc, orderSvc, reservationSvc, enricher, invoiceSvc),
		legacy: legacy.NewHandler(legacy.Deps{
			Backend:  s.Config.Data.Backend,
			Products: catalogSvc,
			Orders:   orderSvc,
			Hosts:    hostSvc,
			Users:    userSvc,
			Auth:     authSvc,
		}),
		authenticate: middleware.NewAuthenticator(s.Config.API.JWTSigningKey),
	}, nil
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	h.legacy.Mount(s.Router.Group("/api"))

	auth := s.Router.Group(basePath, h.authenticate.OptionalJWT())
	{
		auth.POST("/auth/signup", h.auth.HandleSignup)
		auth.POST("/auth/login", h.auth.HandleLogin)
	}

	signedIn := s.Router.Group(basePath, h.authenticate.VerifyJWT())
	{
		signedIn.GET("/users/:userID", h.user.HandleGetUser)
		signedIn.GET("/users/:userID/summary", h.client.HandleClientSummary)
	}

	admin := s.Router.Group(basePath, h.authenticate.VerifyJWT(), middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/hosts", h.host.HandleListHosts)
		admin.POST("/hosts", h.host.HandleCreateHost)
		admin.DELETE("/hosts/:hostID", h.host.HandleDeleteHost)
	}

	staff := s.Router.Group(basePath, h.authenticate.VerifyJWT(), middleware.RequireRole(domain.RoleAdmin, domain.RoleHost))
	{
		staff.GET("/hosts/:hostID", h.host.HandleGetHost)
		staff.PUT("/hosts/:hostID/settings", h.host.HandleUpdateSettings)

		staff.GET("/hosts/:hostID/sites", h.venue.HandleListSites)
		staff.POST("/hosts/:hostID/sites", h.venue.HandleCreateSite)
		staff.GET("/hosts/:hostID/locations", h.venue.HandleListLocations)
		staff.POST("/hosts/:hostID/locations", h.venue.HandleCreateLocation)
		staff.GET("/hosts/:hostID/tags", h.venue.HandleListTags)
		staff.POST("/hosts/:hostID/tags", h.venue.HandleCreateTag)
		staff.DELETE("/hosts/:hostID/tags/:tagID", h.venue.HandleDeleteTag)

		staff.GET("/hosts/:hostID/service-categories", h.catalog.HandleListCategories)
		staff.POST("/hosts/:hostID/service-categories", h.catalog.HandleCreateCategory)
		staff.GET("/hosts/:hostID/services", h.catalog.HandleListServices)
		staff.POST("/hosts/:hostID/services", h.catalog.HandleCreateService)
		staff.GET("/services/:serviceID/form", h.catalog.HandleGetForm)
		staff.PUT("/services/:serviceID/form", h.catalog.HandleSaveForm)
		staff.GET("/hosts/:hostID/menus", h.catalog.HandleListMenus)
		staff.POST("/hosts/:hostID/menus", h.catalog.HandleCreateMenu)

		staff.GET("/hosts/:hostID/orders", h.order.HandleListOrders)
		staff.GET("/hosts/:hostID/orders/export", h.order.HandleExportOrders)
		staff.POST("/orders/:orderID/status", h.order.HandleChangeOrderStatus)
		staff.POST("/orders/:orderID/payments", h.order.HandleOrderPayment)

		staff.GET("/hosts/:hostID/reservations", h.reservation.HandleListReservations)
		staff.POST("/hosts/:hostID/reservations", h.reservation.HandleCreateReservation)
		staff.POST("/reservations/:reservationID/status", h.reservation.HandleChangeReservationStatus)
		staff.POST("/reservations/:reservationID/payments", h.reservation.HandleReservationPayment)

		staff.GET("/hosts/:hostID/clients", h.client.HandleListClients)
		staff.POST("/hosts/:hostID/clients", h.client.HandleCreateClient)

		staff.GET("/hosts/:hostID/production", h.production.HandleProductionBoard)
	}

	guest := s.Router.Group("", h.authenticate.OptionalJWT())
	{
		guest.GET("/client/:hostID/:refID", h.guest.HandleBrowse)
		guest.POST("/client/:hostID/:refID/service/:serviceID", h.guest.HandlePlaceServiceOrder)
		guest.POST("/client/:hostID/:refID/menu/:menuItemID", h.guest.HandlePlaceMenuOrder)
		guest.GET("/checkin/:reservationID", h.guest.HandleGetCheckin)
		guest.POST("/checkin/:reservationID", h.guest.HandleSubmitCheckin)
		guest.GET("/checkout/:reservationID", h.guest.HandleGetCheckout)
		guest.POST("/checkout/:reservationID", h.guest.HandleCheckout)
		guest.GET("/invoice/order/:orderID", h.guest.HandleOrderInvoice)
		guest.GET("/invoice/reservation/:reservationID", h.guest.HandleReservationInvoice)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "ConnectHost API"
	docs.SwaggerInfo.Description = "Orders, reservations and billing for hospitality hosts."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
