package legacy

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/orderspot/connecthost-api/internal/api/handler/v1/request"
	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository"
	"github.com/orderspot/connecthost-api/internal/service"
)

type ProductService interface {
	ListProducts(ctx context.Context, category string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
}

type OrderService interface {
	ListOrders(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error)
	CreateLegacyOrder(ctx context.Context, in service.LegacyOrderInput) (domain.Order, error)
}

type HostService interface {
	ListHosts(ctx context.Context) ([]domain.Host, error)
	CreateHost(ctx context.Context, host domain.Host) (domain.Host, error)
}

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type AuthService interface {
	Signup(ctx context.Context, user domain.User) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
}

// Handler serves the unversioned /api routes. Every response is wrapped in
// an Envelope.
type Handler struct {
	backend  string
	products ProductService
	orders   OrderService
	hosts    HostService
	users    UserService
	auth     AuthService
}

type Deps struct {
	Backend  string
	Products ProductService
	Orders   OrderService
	Hosts    HostService
	Users    UserService
	Auth     AuthService
}

func NewHandler(deps Deps) *Handler {
	return &Handler{
		backend:  deps.Backend,
		products: deps.Products,
		orders:   deps.Orders,
		hosts:    deps.Hosts,
		users:    deps.Users,
		auth:     deps.Auth,
	}
}

var Routes = []string{
	"GET /api/status",
	"GET /api/products",
	"POST /api/products",
	"GET /api/orders",
	"POST /api/orders",
	"GET /api/hosts",
	"POST /api/hosts",
	"GET /api/users",
	"POST /api/users",
	"POST /api/auth/login",
}

func (h *Handler) Mount(r gin.IRouter) {
	r.GET("/status", h.HandleStatus)
	r.GET("/products", h.HandleListProducts)
	r.POST("/products", h.HandleCreateProduct)
	r.GET("/orders", h.HandleListOrders)
	r.POST("/orders", h.HandleCreateOrder)
	r.GET("/hosts", h.HandleListHosts)
	r.POST("/hosts", h.HandleCreateHost)
	r.GET("/users", h.HandleListUsers)
	r.POST("/users", h.HandleCreateUser)
	r.POST("/auth/login", h.HandleLogin)
}

type statusPayload struct {
	Status  string   `json:"status"`
	Backend string   `json:"backend"`
	Routes  []string `json:"routes"`
}

// HandleStatus godoc
// @Summary      API status and available routes
// @Tags         legacy
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /api/status [get]
func (h *Handler) HandleStatus(ctx *gin.Context) {
	renderData(ctx, http.StatusOK, statusPayload{
		Status:  "ok",
		Backend: h.backend,
		Routes:  Routes,
	}, "API is running")
}

// bind decodes the body and runs its validation, rendering a 400 with the
// validation sentence on failure.
func bind(ctx *gin.Context, req interface{ Validate() error }) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		renderFailure(ctx, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	if err := req.Validate(); err != nil {
		renderFailure(ctx, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// HandleListProducts godoc
// @Summary      List products
// @Tags         legacy
// @Produce      json
// @Param        category  query     string  false  "category filter"
// @Success      200       {object}  Envelope
// @Router       /api/products [get]
func (h *Handler) HandleListProducts(ctx *gin.Context) {
	products, err := h.products.ListProducts(ctx.Request.Context(), ctx.Query("category"))
	if err != nil {
		renderInternal(ctx, "legacy.HandleListProducts -> h.products.ListProducts", err)
		return
	}

	renderData(ctx, http.StatusOK, products, "")
}

// HandleCreateProduct godoc
// @Summary      Create a product
// @Tags         legacy
// @Accept       json
// @Produce      json
// @Param        input  body      request.LegacyProductRequest  true  "product"
// @Success      201    {object}  Envelope
// @Failure      400    {object}  Envelope
// @Router       /api/products [post]
func (h *Handler) HandleCreateProduct(ctx *gin.Context) {
	var req request.LegacyProductRequest
	if !bind(ctx, &req) {
		return
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	created, err := h.products.CreateProduct(ctx.Request.Context(), domain.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		InStock:     inStock,
	})
	if err != nil {
		renderInternal(ctx, "legacy.HandleCreateProduct -> h.products.CreateProduct", err)
		return
	}

	renderData(ctx, http.StatusCreated, created, "Product created")
}

// legacyOrder is the /api view of an order: line items and a plain total.
type legacyOrder struct {
	domain.Order
	Total decimal.Decimal `json:"total"`
}

func toLegacyOrder(o domain.Order) legacyOrder {
	if o.PrixTotal.Valid {
		return legacyOrder{Order: o, Total: o.PrixTotal.Decimal}
	}
	return legacyOrder{Order: o, Total: domain.TotalOf(o.Items)}
}

// HandleListOrders godoc
// @Summary      List orders
// @Tags         legacy
// @Produce      json
// @Param        userId  query     int     false  "user filter"
// @Param        status  query     string  false  "status filter"
// @Success      200     {object}  Envelope
// @Failure      400     {object}  Envelope
// @Router       /api/orders [get]
func (h *Handler) HandleListOrders(ctx *gin.Context) {
	var f repository.OrderFilter

	if raw := ctx.Query("userId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			renderFailure(ctx, http.StatusBadRequest, "userId must be a number")
			return
		}
		f.UserID = uint(id)
	}
	if raw := ctx.Query("status"); raw != "" {
		status, err := domain.ParseOrderStatus(raw)
		if err != nil {
			renderFailure(ctx, http.StatusBadRequest, err.Error())
			return
		}
		f.Statuses = []domain.OrderStatus{status}
	}

	orders, err := h.orders.ListOrders(ctx.Request.Context(), f)
	if err != nil {
		renderInternal(ctx, "legacy.HandleListOrders -> h.orders.ListOrders", err)
		return
	}

	out := make([]legacyOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, toLegacyOrder(o))
	}

	renderData(ctx, http.StatusOK, out, "")
}

// HandleCreateOrder godoc
// @Summary      Create an order from line items
// @Description  The total is computed server side as the sum of price times quantity.
// @Tags         legacy
// @Accept       json
// @Produce      json
// @Param        input  body      request.LegacyOrderRequest  true  "order"
// @Success      201    {object}  Envelope
// @Failure      400    {object}  Envelope
// @Router       /api/orders [post]
func (h *Handler) HandleCreateOrder(ctx *gin.Context) {
	var req request.LegacyOrderRequest
	if !bind(ctx, &req) {
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	created, err := h.orders.CreateLegacyOrder(ctx.Request.Context(), service.LegacyOrderInput{
		UserID: req.UserID,
		HostID: req.HostID,
		Items:  items,
		Notes:  req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			renderFailure(ctx, http.StatusBadRequest, "Unknown productId")
			return
		}
		renderInternal(ctx, "legacy.HandleCreateOrder -> h.orders.CreateLegacyOrder", err)
		return
	}

	renderData(ctx, http.StatusCreated, toLegacyOrder(created), "Order created")
}

// HandleListHosts godoc
// @Summary      List hosts
// @Tags         legacy
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /api/hosts [get]
func (h *Handler) HandleListHosts(ctx *gin.Context) {
	hosts, err := h.hosts.ListHosts(ctx.Request.Context())
	if err != nil {
		renderInternal(ctx, "legacy.HandleListHosts -> h.hosts.ListHosts", err)
		return
	}

	renderData(ctx, http.StatusOK, hosts, "")
}

// HandleCreateHost godoc
// @Summary      Create a host
// @Tags         legacy
// @Accept       json
// @Produce      json
// @Param        input  body      request.LegacyHostRequest  true  "host"
// @Success      201    {object}  Envelope
// @Failure      400    {object}  Envelope
// @Router       /api/hosts [post]
func (h *Handler) HandleCreateHost(ctx *gin.Context) {
	var req request.LegacyHostRequest
	if !bind(ctx, &req) {
		return
	}

	created, err := h.hosts.CreateHost(ctx.Request.Context(), domain.Host{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Currency: req.Currency,
		Language: req.Language,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoReservationType) {
			renderFailure(ctx, http.StatusBadRequest, err.Error())
			return
		}
		renderInternal(ctx, "legacy.HandleCreateHost -> h.hosts.CreateHost", err)
		return
	}

	renderData(ctx, http.StatusCreated, created, "Host created")
}

// HandleListUsers godoc
// @Summary      List users
// @Description  Password hashes are never returned.
// @Tags         legacy
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /api/users [get]
func (h *Handler) HandleListUsers(ctx *gin.Context) {
	users, err := h.users.ListUsers(ctx.Request.Context())
	if err != nil {
		renderInternal(ctx, "legacy.HandleListUsers -> h.users.ListUsers", err)
		return
	}

	renderData(ctx, http.StatusOK, users, "")
}

// HandleCreateUser godoc
// @Summary      Create a user
// @Tags         legacy
// @Accept       json
// @Produce      json
// @Param        input  body      request.LegacyUserRequest  true  "user"
// @Success      201    {object}  Envelope
// @Failure      400    {object}  Envelope
// @Failure      409    {object}  Envelope
// @Router       /api/users [post]
func (h *Handler) HandleCreateUser(ctx *gin.Context) {
	var req request.LegacyUserRequest
	if !bind(ctx, &req) {
		return
	}

	role := domain.RoleClient
	if req.Role != "" {
		role = domain.Role(req.Role)
	}

	created, err := h.auth.Signup(ctx.Request.Context(), domain.User{
		Email:    req.Email,
		Password: req.Password,
		Name:     strings.TrimSpace(req.Name),
		Role:     role,
		HostID:   req.HostID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserEmailExists):
			renderFailure(ctx, http.StatusConflict, "User already exists")
		case errors.Is(err, service.ErrHostRequired), errors.Is(err, service.ErrHostNotFound):
			renderFailure(ctx, http.StatusBadRequest, "A valid hostId is required for host users")
		default:
			renderInternal(ctx, "legacy.HandleCreateUser -> h.auth.Signup", err)
		}
		return
	}

	renderData(ctx, http.StatusCreated, created, "User created")
}

// HandleLogin godoc
// @Summary      Check user credentials
// @Tags         legacy
// @Accept       json
// @Produce      json
// @Param        input  body      request.LegacyLoginRequest  true  "credentials"
// @Success      200    {object}  Envelope
// @Failure      400    {object}  Envelope
// @Failure      401    {object}  Envelope
// @Router       /api/auth/login [post]
func (h *Handler) HandleLogin(ctx *gin.Context) {
	var req request.LegacyLoginRequest
	if !bind(ctx, &req) {
		return
	}

	user, err := h.auth.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			renderFailure(ctx, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		renderInternal(ctx, "legacy.HandleLogin -> h.auth.Login", err)
		return
	}

	renderData(ctx, http.StatusOK, user, "Login successful")
}
