package v1

import (
	"context"
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

type ReservationService interface {
	CreateReservation(ctx context.Context, in service.ReservationInput) (domain.Reservation, error)
	GetReservation(ctx context.Context, id uint) (domain.Reservation, error)
	ListReservations(ctx context.Context, f repository.ReservationFilter) ([]domain.Reservation, error)
	ChangeStatus(ctx context.Context, id uint, target, notes string, expectedVersion *uint) (domain.Reservation, error)
	RecordPayment(ctx context.Context, id uint, amount decimal.Decimal, method string) (domain.Reservation, error)
}

type ReservationEnricher interface {
	Reservations(ctx context.Context, reservations []domain.Reservation) ([]service.EnrichedReservation, error)
}

type ReservationHandler struct {
	svc      ReservationService
	enricher ReservationEnricher
}

func NewReservationHandler(svc ReservationService, enricher ReservationEnricher) *ReservationHandler {
	return &ReservationHandler{
		svc:      svc,
		enricher: enricher,
	}
}

// HandleListReservations godoc
// @Summary      List the reservations of a host
// @Tags         reservations
// @Produce      json
// @Param        hostID  path      int     true   "host ID"
// @Param        status  query     string  false  "comma separated statuses"
// @Success      200     {array}   service.EnrichedReservation
// @Failure      400     {object}  response.Err
// @Router       /hosts/{hostID}/reservations [get]
// @Security BearerAuth
func (h *ReservationHandler) HandleListReservations(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	f := repository.ReservationFilter{HostID: hostID}
	if raw := ctx.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			status, err := domain.ParseReservationStatus(strings.TrimSpace(part))
			if err != nil {
				response.RenderErr(ctx, response.ErrBadRequest(err))
				return
			}
			f.Statuses = append(f.Statuses, status)
		}
	}

	reservations, err := h.svc.ListReservations(ctx.Request.Context(), f)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListReservations -> h.svc.ListReservations", err)
		return
	}

	enriched, err := h.enricher.Reservations(ctx.Request.Context(), reservations)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListReservations -> h.enricher.Reservations", err)
		return
	}

	ctx.JSON(http.StatusOK, enriched)
}

// HandleCreateReservation godoc
// @Summary      Book a room or a table
// @Description  Without prixTotal the location price is used, per night for rooms.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        hostID  path      int                               true  "host ID"
// @Param        input   body      request.CreateReservationRequest  true  "reservation"
// @Success      201     {object}  domain.Reservation
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Router       /hosts/{hostID}/reservations [post]
// @Security BearerAuth
func (h *ReservationHandler) HandleCreateReservation(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	var req request.CreateReservationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	created, err := h.svc.CreateReservation(ctx.Request.Context(), service.ReservationInput{
		HostID:          hostID,
		LocationID:      req.LocationID,
		ClientName:      req.ClientName,
		ClientID:        req.ClientID,
		DateArrivee:     req.DateArrivee,
		DateDepart:      req.DateDepart,
		NombrePersonnes: req.NombrePersonnes,
		PrixTotal:       req.PrixTotalValue(),
		Currency:        req.Currency,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateReservation -> h.svc.CreateReservation", err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *ReservationHandler) reservationForCaller(ctx *gin.Context) (domain.Reservation, bool) {
	id, ok := parseID(ctx, "reservationID")
	if !ok {
		return domain.Reservation{}, false
	}

	r, err := h.svc.GetReservation(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.reservationForCaller -> h.svc.GetReservation", err)
		return domain.Reservation{}, false
	}

	return r, authorizeHost(ctx, r.HostID)
}

// HandleChangeReservationStatus godoc
// @Summary      Change the status of a reservation
// @Description  Checking out credits loyalty points to the linked client.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        reservationID  path      int                    true  "reservation ID"
// @Param        input          body      request.StatusRequest  true  "target status"
// @Success      200            {object}  domain.Reservation
// @Failure      400            {object}  response.Err
// @Failure      409            {object}  response.Err
// @Router       /reservations/{reservationID}/status [post]
// @Security BearerAuth
func (h *ReservationHandler) HandleChangeReservationStatus(ctx *gin.Context) {
	r, ok := h.reservationForCaller(ctx)
	if !ok {
		return
	}

	var req request.StatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	updated, err := h.svc.ChangeStatus(ctx.Request.Context(), r.ID, req.Status, req.Notes, req.Version)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleChangeReservationStatus -> h.svc.ChangeStatus", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleReservationPayment godoc
// @Summary      Record a payment against a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        reservationID  path      int                     true  "reservation ID"
// @Param        input          body      request.PaymentRequest  true  "payment"
// @Success      200            {object}  domain.Reservation
// @Failure      400            {object}  response.Err
// @Router       /reservations/{reservationID}/payments [post]
// @Security BearerAuth
func (h *ReservationHandler) HandleReservationPayment(ctx *gin.Context) {
	r, ok := h.reservationForCaller(ctx)
	if !ok {
		return
	}

	var req request.PaymentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	updated, err := h.svc.RecordPayment(ctx.Request.Context(), r.ID, req.Amount, req.Method)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleReservationPayment -> h.svc.RecordPayment", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}
