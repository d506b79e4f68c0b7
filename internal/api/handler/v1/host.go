package v1

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orderspot/connecthost-api/internal/api/handler/v1/request"
	"github.com/orderspot/connecthost-api/internal/api/handler/v1/response"
	"github.com/orderspot/connecthost-api/internal/domain"
)

type HostService interface {
	CreateHost(ctx context.Context, host domain.Host) (domain.Host, error)
	GetHost(ctx context.Context, id uint) (domain.Host, error)
	ListHosts(ctx context.Context) ([]domain.Host, error)
	UpdateSettings(ctx context.Context, id uint, res domain.ReservationSettings, loyalty domain.LoyaltySettings) (domain.Host, error)
	DeleteHost(ctx context.Context, id uint) error
}

type HostHandler struct {
	svc HostService
}

func NewHostHandler(svc HostService) *HostHandler {
	return &HostHandler{
		svc: svc,
	}
}

// HandleCreateHost godoc
// @Summary      Create a host
// @Tags         hosts
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateHostRequest  true  "host"
// @Success      201    {object}  domain.Host
// @Failure      400    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Router       /hosts [post]
// @Security BearerAuth
func (h *HostHandler) HandleCreateHost(ctx *gin.Context) {
	var req request.CreateHostRequest
	if !bindJSON(ctx, &req) {
		return
	}

	host, err := h.svc.CreateHost(ctx.Request.Context(), domain.Host{
		Name:     req.Name,
		Email:    strings.ToLower(req.Email),
		Currency: strings.ToUpper(req.Currency),
		Language: req.Language,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateHost -> h.svc.CreateHost", err)
		return
	}

	ctx.JSON(http.StatusCreated, host)
}

// HandleListHosts godoc
// @Summary      List hosts
// @Tags         hosts
// @Produce      json
// @Success      200  {array}   domain.Host
// @Failure      403  {object}  response.Err
// @Router       /hosts [get]
// @Security BearerAuth
func (h *HostHandler) HandleListHosts(ctx *gin.Context) {
	hosts, err := h.svc.ListHosts(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListHosts -> h.svc.ListHosts", err)
		return
	}

	ctx.JSON(http.StatusOK, hosts)
}

// HandleGetHost godoc
// @Summary      Get a host
// @Tags         hosts
// @Produce      json
// @Param        hostID  path      int  true  "host ID"
// @Success      200     {object}  domain.Host
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Router       /hosts/{hostID} [get]
// @Security BearerAuth
func (h *HostHandler) HandleGetHost(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	host, err := h.svc.GetHost(ctx.Request.Context(), hostID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetHost -> h.svc.GetHost", err)
		return
	}

	ctx.JSON(http.StatusOK, host)
}

// HandleUpdateSettings godoc
// @Summary      Update reservation and loyalty settings
// @Description  Rejected with 400 when both room and table reservations are disabled; the stored settings are kept.
// @Tags         hosts
// @Accept       json
// @Produce      json
// @Param        hostID  path      int                             true  "host ID"
// @Param        input   body      request.UpdateSettingsRequest  true  "settings"
// @Success      200     {object}  domain.Host
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Router       /hosts/{hostID}/settings [put]
// @Security BearerAuth
func (h *HostHandler) HandleUpdateSettings(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	var req request.UpdateSettingsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	var loyalty domain.LoyaltySettings
	if req.Loyalty != nil {
		loyalty = req.Loyalty.ToDomain()
	} else {
		host, err := h.svc.GetHost(ctx.Request.Context(), hostID)
		if err != nil {
			renderServiceErr(ctx, "v1.HandleUpdateSettings -> h.svc.GetHost", err)
			return
		}
		loyalty = host.Loyalty
	}

	host, err := h.svc.UpdateSettings(ctx.Request.Context(), hostID, req.Reservation, loyalty)
	if err != nil {
		if errors.Is(err, domain.ErrNoReservationType) {
			response.RenderErr(ctx, response.ErrBadRequest(domain.ErrNoReservationType))
			return
		}
		renderServiceErr(ctx, "v1.HandleUpdateSettings -> h.svc.UpdateSettings", err)
		return
	}

	ctx.JSON(http.StatusOK, host)
}

// HandleDeleteHost godoc
// @Summary      Delete a host
// @Description  Removes the host with its sites, locations, tags, catalog, menus, clients and host users. Orders and reservations are kept.
// @Tags         hosts
// @Param        hostID  path  int  true  "host ID"
// @Success      204
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Router       /hosts/{hostID} [delete]
// @Security BearerAuth
func (h *HostHandler) HandleDeleteHost(ctx *gin.Context) {
	hostID, ok := parseID(ctx, "hostID")
	if !ok {
		return
	}

	if err := h.svc.DeleteHost(ctx.Request.Context(), hostID); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteHost -> h.svc.DeleteHost", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
