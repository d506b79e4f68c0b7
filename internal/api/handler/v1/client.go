package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderspot/connecthost-api/internal/api/handler/v1/request"
	"github.com/orderspot/connecthost-api/internal/domain"
)

type ClientService interface {
	CreateClient(ctx context.Context, c domain.Client) (domain.Client, error)
	ListClients(ctx context.Context, hostID uint) ([]domain.Client, error)
	Summary(ctx context.Context, userID uint) (domain.ClientSummary, error)
}

type ClientHandler struct {
	svc ClientService
}

func NewClientHandler(svc ClientService) *ClientHandler {
	return &ClientHandler{
		svc: svc,
	}
}

// HandleListClients godoc
// @Summary      List the clients of a host
// @Tags         clients
// @Produce      json
// @Param        hostID  path      int  true  "host ID"
// @Success      200     {array}   domain.Client
// @Router       /hosts/{hostID}/clients [get]
// @Security BearerAuth
func (h *ClientHandler) HandleListClients(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	clients, err := h.svc.ListClients(ctx.Request.Context(), hostID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListClients -> h.svc.ListClients", err)
		return
	}

	ctx.JSON(http.StatusOK, clients)
}

// HandleCreateClient godoc
// @Summary      Register a client at a host
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        hostID  path      int                          true  "host ID"
// @Param        input   body      request.CreateClientRequest  true  "client"
// @Success      201     {object}  domain.Client
// @Failure      400     {object}  response.Err
// @Router       /hosts/{hostID}/clients [post]
// @Security BearerAuth
func (h *ClientHandler) HandleCreateClient(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	var req request.CreateClientRequest
	if !bindJSON(ctx, &req) {
		return
	}

	created, err := h.svc.CreateClient(ctx.Request.Context(), req.ToDomain(hostID))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateClient -> h.svc.CreateClient", err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleClientSummary godoc
// @Summary      Financial summary of a user across hosts
// @Description  Credit, loyalty points, spending and net due, per host and in total.
// @Tags         clients
// @Produce      json
// @Param        userID  path      int  true  "user ID"
// @Success      200     {object}  domain.ClientSummary
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Router       /users/{userID}/summary [get]
// @Security BearerAuth
func (h *ClientHandler) HandleClientSummary(ctx *gin.Context) {
	userID, ok := parseID(ctx, "userID")
	if !ok {
		return
	}
	if !authorizeUser(ctx, userID) {
		return
	}

	summary, err := h.svc.Summary(ctx.Request.Context(), userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleClientSummary -> h.svc.Summary", err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}
