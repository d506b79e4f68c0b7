package v1

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/orderspot/connecthost-api/internal/api/handler/v1/request"
	"github.com/orderspot/connecthost-api/internal/api/handler/v1/response"
	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository"
	"github.com/orderspot/connecthost-api/internal/service"
)

type OrderService interface {
	GetOrder(ctx context.Context, id uint) (domain.Order, error)
	ListOrders(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error)
	ChangeStatus(ctx context.Context, id uint, target string, expectedVersion *uint) (domain.Order, error)
	RecordPayment(ctx context.Context, id uint, amount decimal.Decimal, method string) (domain.Order, error)
}

type OrderEnricher interface {
	Orders(ctx context.Context, orders []domain.Order) ([]service.EnrichedOrder, error)
}

type OrderExporter interface {
	ExportOrders(ctx context.Context, f repository.OrderFilter, format string) (service.Export, error)
}

type OrderHandler struct {
	svc      OrderService
	enricher OrderEnricher
	exporter OrderExporter
}

func NewOrderHandler(svc OrderService, enricher OrderEnricher, exporter OrderExporter) *OrderHandler {
	return &OrderHandler{
		svc:      svc,
		enricher: enricher,
		exporter: exporter,
	}
}

// orderStatuses parses a comma separated status list.
func orderStatuses(raw string) ([]domain.OrderStatus, error) {
	if raw == "" {
		return nil, nil
	}

	var statuses []domain.OrderStatus
	for _, part := range strings.Split(raw, ",") {
		status, err := domain.ParseOrderStatus(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// HandleListOrders godoc
// @Summary      List the orders of a host
// @Description  Orders come with host, location, service and client names resolved.
// @Tags         orders
// @Produce      json
// @Param        hostID  path      int     true   "host ID"
// @Param        status  query     string  false  "comma separated statuses"
// @Success      200     {array}   service.EnrichedOrder
// @Failure      400     {object}  response.Err
// @Router       /hosts/{hostID}/orders [get]
// @Security BearerAuth
func (h *OrderHandler) HandleListOrders(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	statuses, err := orderStatuses(ctx.Query("status"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	orders, err := h.svc.ListOrders(ctx.Request.Context(), repository.OrderFilter{HostID: hostID, Statuses: statuses})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListOrders -> h.svc.ListOrders", err)
		return
	}

	enriched, err := h.enricher.Orders(ctx.Request.Context(), orders)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListOrders -> h.enricher.Orders", err)
		return
	}

	ctx.JSON(http.StatusOK, enriched)
}

// orderForCaller loads :orderID and checks the caller manages its host.
func (h *OrderHandler) orderForCaller(ctx *gin.Context) (domain.Order, bool) {
	orderID, ok := parseID(ctx, "orderID")
	if !ok {
		return domain.Order{}, false
	}

	order, err := h.svc.GetOrder(ctx.Request.Context(), orderID)
	if err != nil {
		renderServiceErr(ctx, "v1.orderForCaller -> h.svc.GetOrder", err)
		return domain.Order{}, false
	}

	return order, authorizeHost(ctx, order.HostID)
}

// HandleChangeOrderStatus godoc
// @Summary      Change the status of an order
// @Description  Invalid statuses give 400, disallowed transitions and stale versions give 409.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        orderID  path      int                    true  "order ID"
// @Param        input    body      request.StatusRequest  true  "target status"
// @Success      200      {object}  domain.Order
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /orders/{orderID}/status [post]
// @Security BearerAuth
func (h *OrderHandler) HandleChangeOrderStatus(ctx *gin.Context) {
	order, ok := h.orderForCaller(ctx)
	if !ok {
		return
	}

	var req request.StatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	updated, err := h.svc.ChangeStatus(ctx.Request.Context(), order.ID, req.Status, req.Version)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleChangeOrderStatus -> h.svc.ChangeStatus", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleOrderPayment godoc
// @Summary      Record a payment against an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        orderID  path      int                     true  "order ID"
// @Param        input    body      request.PaymentRequest  true  "payment"
// @Success      200      {object}  domain.Order
// @Failure      400      {object}  response.Err
// @Router       /orders/{orderID}/payments [post]
// @Security BearerAuth
func (h *OrderHandler) HandleOrderPayment(ctx *gin.Context) {
	order, ok := h.orderForCaller(ctx)
	if !ok {
		return
	}

	var req request.PaymentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	updated, err := h.svc.RecordPayment(ctx.Request.Context(), order.ID, req.Amount, req.Method)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleOrderPayment -> h.svc.RecordPayment", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleExportOrders godoc
// @Summary      Export the orders of a host
// @Tags         orders
// @Produce      octet-stream
// @Param        hostID  path      int     true   "host ID"
// @Param        format  query     string  false  "csv (default) or xlsx"
// @Param        status  query     string  false  "comma separated statuses"
// @Success      200     {file}    file
// @Failure      400     {object}  response.Err
// @Router       /hosts/{hostID}/orders/export [get]
// @Security BearerAuth
func (h *OrderHandler) HandleExportOrders(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	statuses, err := orderStatuses(ctx.Query("status"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	out, err := h.exporter.ExportOrders(ctx.Request.Context(), repository.OrderFilter{HostID: hostID, Statuses: statuses}, ctx.Query("format"))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleExportOrders -> h.exporter.ExportOrders", err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	ctx.Data(http.StatusOK, out.ContentType, out.Data)
}
