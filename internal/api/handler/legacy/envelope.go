package legacy

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Envelope is the body of every /api response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func renderData(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

func renderFailure(ctx *gin.Context, status int, msg string) {
	ctx.AbortWithStatusJSON(status, Envelope{Success: false, Error: msg})
}

// renderInternal hides err from the caller and logs it.
func renderInternal(ctx *gin.Context, op string, err error) {
	zap.L().Error(op,
		zap.String("request_id", requestid.Get(ctx)),
		zap.String("path", ctx.Request.URL.Path),
		zap.Error(err),
	)
	renderFailure(ctx, http.StatusInternalServerError, "Internal server error")
}
