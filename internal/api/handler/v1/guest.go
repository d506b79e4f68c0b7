package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderspot/connecthost-api/internal/api/handler/v1/request"
	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/service"
	"github.com/orderspot/connecthost-api/internal/session"
)

type Storefront interface {
	Browse(ctx context.Context, hostID uint, refID string) (service.Storefront, error)
}

type GuestOrders interface {
	PlaceServiceOrder(ctx context.Context, in service.ServiceOrderInput, sess *session.Session) (domain.Order, error)
	PlaceMenuOrder(ctx context.Context, in service.MenuOrderInput, sess *session.Session) (domain.Order, error)
}

type GuestStays interface {
	GetReservation(ctx context.Context, id uint) (domain.Reservation, error)
	SubmitOnlineCheckin(ctx context.Context, id uint, data domain.FormAnswers) (domain.Reservation, error)
	PublicCheckout(ctx context.Context, id uint, notes string) (service.CheckoutOutcome, error)
}

type InvoiceService interface {
	OrderInvoice(ctx context.Context, id uint) (service.Invoice, error)
	ReservationInvoice(ctx context.Context, id uint) (service.Invoice, error)
}

// GuestHandler serves the pages reached from a QR code or a link sent to
// the guest. None of them requires a session.
type GuestHandler struct {
	storefront Storefront
	orders     GuestOrders
	stays      GuestStays
	enricher   ReservationEnricher
	invoices   InvoiceService
}

func NewGuestHandler(storefront Storefront, orders GuestOrders, stays GuestStays, enricher ReservationEnricher, invoices InvoiceService) *GuestHandler {
	return &GuestHandler{
		storefront: storefront,
		orders:     orders,
		stays:      stays,
		enricher:   enricher,
		invoices:   invoices,
	}
}

// HandleBrowse godoc
// @Summary      Services and menu offered at a location
// @Tags         client
// @Produce      json
// @Param        hostID  path      int     true  "host ID"
// @Param        refID   path      string  true  "location reference from the QR code"
// @Success      200     {object}  service.Storefront
// @Failure      404     {object}  response.Err
// @Router       /client/{hostID}/{refID} [get]
func (h *GuestHandler) HandleBrowse(ctx *gin.Context) {
	hostID, ok := parseID(ctx, "hostID")
	if !ok {
		return
	}

	front, err := h.storefront.Browse(ctx.Request.Context(), hostID, ctx.Param("refID"))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleBrowse -> h.storefront.Browse", err)
		return
	}

	ctx.JSON(http.StatusOK, front)
}

// HandlePlaceServiceOrder godoc
// @Summary      Order a service from a location
// @Description  Answers are checked against the service form. Services flagged loginRequired need a session.
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        hostID     path      int                          true  "host ID"
// @Param        refID      path      string                       true  "location reference"
// @Param        serviceID  path      int                          true  "service ID"
// @Param        input      body      request.ServiceOrderRequest  true  "form answers"
// @Success      201        {object}  domain.Order
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Router       /client/{hostID}/{refID}/service/{serviceID} [post]
func (h *GuestHandler) HandlePlaceServiceOrder(ctx *gin.Context) {
	hostID, ok := parseID(ctx, "hostID")
	if !ok {
		return
	}
	serviceID, ok := parseID(ctx, "serviceID")
	if !ok {
		return
	}

	var req request.ServiceOrderRequest
	if !bindJSON(ctx, &req) {
		return
	}

	order, err := h.orders.PlaceServiceOrder(ctx.Request.Context(), service.ServiceOrderInput{
		HostID:    hostID,
		RefID:     ctx.Param("refID"),
		ServiceID: serviceID,
		Answers:   req.Answers,
		ClientNom: req.ClientNom,
		Notes:     req.Notes,
	}, currentSession(ctx))
	if err != nil {
		renderServiceErr(ctx, "v1.HandlePlaceServiceOrder -> h.orders.PlaceServiceOrder", err)
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

// HandlePlaceMenuOrder godoc
// @Summary      Order a menu item from a location
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        hostID      path      int                       true  "host ID"
// @Param        refID       path      string                    true  "location reference"
// @Param        menuItemID  path      int                       true  "menu item ID"
// @Param        input       body      request.MenuOrderRequest  true  "quantity and options"
// @Success      201         {object}  domain.Order
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Router       /client/{hostID}/{refID}/menu/{menuItemID} [post]
func (h *GuestHandler) HandlePlaceMenuOrder(ctx *gin.Context) {
	hostID, ok := parseID(ctx, "hostID")
	if !ok {
		return
	}
	itemID, ok := parseID(ctx, "menuItemID")
	if !ok {
		return
	}

	var req request.MenuOrderRequest
	if !bindJSON(ctx, &req) {
		return
	}

	order, err := h.orders.PlaceMenuOrder(ctx.Request.Context(), service.MenuOrderInput{
		HostID:     hostID,
		RefID:      ctx.Param("refID"),
		MenuItemID: itemID,
		Quantity:   req.Quantity,
		Options:    req.Options,
		ClientNom:  req.ClientNom,
		Notes:      req.Notes,
	}, currentSession(ctx))
	if err != nil {
		renderServiceErr(ctx, "v1.HandlePlaceMenuOrder -> h.orders.PlaceMenuOrder", err)
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

func (h *GuestHandler) enrichedReservation(ctx *gin.Context, r domain.Reservation) {
	enriched, err := h.enricher.Reservations(ctx.Request.Context(), []domain.Reservation{r})
	if err != nil {
		renderServiceErr(ctx, "v1.enrichedReservation -> h.enricher.Reservations", err)
		return
	}
	if len(enriched) != 1 {
		renderServiceErr(ctx, "v1.enrichedReservation", fmt.Errorf("enriched %d reservations, want 1", len(enriched)))
		return
	}

	ctx.JSON(http.StatusOK, enriched[0])
}

// HandleGetCheckin godoc
// @Summary      Reservation shown on the online check-in page
// @Tags         client
// @Produce      json
// @Param        reservationID  path      int  true  "reservation ID"
// @Success      200            {object}  service.EnrichedReservation
// @Failure      404            {object}  response.Err
// @Router       /checkin/{reservationID} [get]
func (h *GuestHandler) HandleGetCheckin(ctx *gin.Context) {
	id, ok := parseID(ctx, "reservationID")
	if !ok {
		return
	}

	r, err := h.stays.GetReservation(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetCheckin -> h.stays.GetReservation", err)
		return
	}

	h.enrichedReservation(ctx, r)
}

// HandleSubmitCheckin godoc
// @Summary      Submit the online check-in form
// @Description  Stores the answers and marks the online check-in as completed. The status is unchanged.
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        reservationID  path      int                     true  "reservation ID"
// @Param        input          body      request.CheckinRequest  true  "check-in answers"
// @Success      200            {object}  service.EnrichedReservation
// @Failure      400            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      409            {object}  response.Err
// @Router       /checkin/{reservationID} [post]
func (h *GuestHandler) HandleSubmitCheckin(ctx *gin.Context) {
	id, ok := parseID(ctx, "reservationID")
	if !ok {
		return
	}

	var req request.CheckinRequest
	if !bindJSON(ctx, &req) {
		return
	}

	r, err := h.stays.SubmitOnlineCheckin(ctx.Request.Context(), id, req.Data)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSubmitCheckin -> h.stays.SubmitOnlineCheckin", err)
		return
	}

	h.enrichedReservation(ctx, r)
}

// HandleGetCheckout godoc
// @Summary      Reservation shown on the check-out page
// @Tags         client
// @Produce      json
// @Param        reservationID  path      int  true  "reservation ID"
// @Success      200            {object}  service.EnrichedReservation
// @Failure      404            {object}  response.Err
// @Router       /checkout/{reservationID} [get]
func (h *GuestHandler) HandleGetCheckout(ctx *gin.Context) {
	id, ok := parseID(ctx, "reservationID")
	if !ok {
		return
	}

	r, err := h.stays.GetReservation(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetCheckout -> h.stays.GetReservation", err)
		return
	}

	h.enrichedReservation(ctx, r)
}

// HandleCheckout godoc
// @Summary      Check out from the guest page
// @Description  A reservation already closed is reported with already_done instead of an error.
// @Tags         client
// @Accept       json
// @Produce      json
// @Param        reservationID  path      int                      true   "reservation ID"
// @Param        input          body      request.CheckoutRequest  false  "notes"
// @Success      200            {object}  service.CheckoutOutcome
// @Failure      404            {object}  response.Err
// @Failure      409            {object}  response.Err
// @Router       /checkout/{reservationID} [post]
func (h *GuestHandler) HandleCheckout(ctx *gin.Context) {
	id, ok := parseID(ctx, "reservationID")
	if !ok {
		return
	}

	var req request.CheckoutRequest
	if ctx.Request.ContentLength != 0 && !bindJSON(ctx, &req) {
		return
	}

	outcome, err := h.stays.PublicCheckout(ctx.Request.Context(), id, req.Notes)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCheckout -> h.stays.PublicCheckout", err)
		return
	}

	ctx.JSON(http.StatusOK, outcome)
}

// HandleOrderInvoice godoc
// @Summary      Invoice of an order
// @Tags         client
// @Produce      json
// @Param        orderID  path      int  true  "order ID"
// @Success      200      {object}  service.Invoice
// @Failure      404      {object}  response.Err
// @Router       /invoice/order/{orderID} [get]
func (h *GuestHandler) HandleOrderInvoice(ctx *gin.Context) {
	id, ok := parseID(ctx, "orderID")
	if !ok {
		return
	}

	inv, err := h.invoices.OrderInvoice(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleOrderInvoice -> h.invoices.OrderInvoice", err)
		return
	}

	ctx.JSON(http.StatusOK, inv)
}

// HandleReservationInvoice godoc
// @Summary      Invoice of a reservation
// @Tags         client
// @Produce      json
// @Param        reservationID  path      int  true  "reservation ID"
// @Success      200            {object}  service.Invoice
// @Failure      404            {object}  response.Err
// @Router       /invoice/reservation/{reservationID} [get]
func (h *GuestHandler) HandleReservationInvoice(ctx *gin.Context) {
	id, ok := parseID(ctx, "reservationID")
	if !ok {
		return
	}

	inv, err := h.invoices.ReservationInvoice(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleReservationInvoice -> h.invoices.ReservationInvoice", err)
		return
	}

	ctx.JSON(http.StatusOK, inv)
}
