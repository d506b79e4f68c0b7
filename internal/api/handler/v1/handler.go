package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orderspot/connecthost-api/internal/api/handler/v1/response"
	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/service"
	"github.com/orderspot/connecthost-api/internal/session"
)

var (
	errNotSignedIn  = errors.New("sign in required")
	errNotYourHost  = errors.New("you cannot manage this host")
	errNotYourUser  = errors.New("you can only access your own account")
	errInvalidParam = errors.New("invalid path parameter")
)

var notFoundErrs = []error{
	service.ErrHostNotFound,
	service.ErrSiteNotFound,
	service.ErrLocationNotFound,
	service.ErrTagNotFound,
	service.ErrCategoryNotFound,
	service.ErrServiceNotFound,
	service.ErrFormNotFound,
	service.ErrMenuNotFound,
	service.ErrMenuItemNotFound,
	service.ErrProductNotFound,
	service.ErrOrderNotFound,
	service.ErrReservationNotFound,
	service.ErrClientNotFound,
	service.ErrUserNotFound,
}

var badRequestErrs = []error{
	domain.ErrInvalidStatus,
	domain.ErrInvalidRole,
	domain.ErrNoReservationType,
	domain.ErrInvalidAmount,
	domain.ErrInvalidStayDates,
	domain.ErrInvalidLocation,
	domain.ErrEmptyOrder,
	domain.ErrInvalidFormAnswers,
	service.ErrForeignHost,
	service.ErrReservationTypeDisabled,
	service.ErrServiceUnavailable,
	service.ErrInvalidQuantity,
	service.ErrInvalidForm,
	service.ErrUnsupportedFormat,
	service.ErrHostRequired,
}

var conflictErrs = []error{
	domain.ErrInvalidTransition,
	service.ErrStaleWrite,
	service.ErrUserEmailExists,
}

// renderServiceErr maps a service error to its HTTP status. Anything not
// recognised is a 500 and is logged under op.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	switch {
	case isAny(err, notFoundErrs):
		response.RenderErr(ctx, response.ErrMissing(errors.New(userMessage(err))))
	case isAny(err, badRequestErrs):
		response.RenderErr(ctx, response.ErrBadRequest(errors.New(userMessage(err))))
	case isAny(err, conflictErrs):
		response.RenderErr(ctx, response.ErrConflict(errors.New(userMessage(err))))
	case errors.Is(err, service.ErrLoginRequired):
		response.RenderErr(ctx, response.ErrUnauthorized(service.ErrLoginRequired))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// userMessage drops the "caller -> " prefixes added while the error went up
// the layers.
func userMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, " -> "); i >= 0 {
		msg = msg[i+len(" -> "):]
	}
	return msg
}

func parseID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("%w: %s", errInvalidParam, param)))
		return 0, false
	}
	return uint(id), true
}

func currentSession(ctx *gin.Context) *session.Session {
	return session.FromContext(ctx.Request.Context())
}

// authorizeHost renders 401/403 and returns false unless the caller manages
// hostID.
func authorizeHost(ctx *gin.Context, hostID uint) bool {
	sess := currentSession(ctx)
	if sess == nil {
		response.RenderErr(ctx, response.ErrUnauthorized(errNotSignedIn))
		return false
	}
	if !sess.CanManageHost(hostID) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errNotYourHost))
		return false
	}
	return true
}

// hostParam reads :hostID and checks the caller may manage it.
func hostParam(ctx *gin.Context) (uint, bool) {
	hostID, ok := parseID(ctx, "hostID")
	if !ok {
		return 0, false
	}
	return hostID, authorizeHost(ctx, hostID)
}

func authorizeUser(ctx *gin.Context, userID uint) bool {
	sess := currentSession(ctx)
	if sess == nil {
		response.RenderErr(ctx, response.ErrUnauthorized(errNotSignedIn))
		return false
	}
	if !sess.IsAdmin() && sess.UserID != userID {
		response.RenderErr(ctx, response.ErrPermissionDenied(errNotYourUser))
		return false
	}
	return true
}

func bindJSON(ctx *gin.Context, req interface{ Validate() error }) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return false
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return false
	}
	return true
}

// HandleHealthcheck godoc
// @Summary      Health check
// @Tags         infra
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
