package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderspot/connecthost-api/internal/service"
)

type ProductionService interface {
	Board(ctx context.Context, hostID uint) (service.ProductionBoard, error)
}

type ProductionHandler struct {
	svc ProductionService
}

func NewProductionHandler(svc ProductionService) *ProductionHandler {
	return &ProductionHandler{
		svc: svc,
	}
}

// HandleProductionBoard godoc
// @Summary      Active orders for the kitchen display
// @Description  Pending to ready orders, oldest first, with selected options grouped by option group.
// @Tags         production
// @Produce      json
// @Param        hostID  path      int  true  "host ID"
// @Success      200     {object}  service.ProductionBoard
// @Router       /hosts/{hostID}/production [get]
// @Security BearerAuth
func (h *ProductionHandler) HandleProductionBoard(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	board, err := h.svc.Board(ctx.Request.Context(), hostID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleProductionBoard -> h.svc.Board", err)
		return
	}

	ctx.JSON(http.StatusOK, board)
}
