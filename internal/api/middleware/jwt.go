package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orderspot/connecthost-api/internal/api/handler/v1/response"
	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/pkg/jwthelper"
	"github.com/orderspot/connecthost-api/internal/session"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errNoSession    = errors.New("no session")
)

type Authenticator struct {
	key []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{key: []byte(signingKey)}
}

// VerifyJWT rejects requests without a valid bearer token. The caller is
// stored as a session.Session in the request context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.key, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		attach(ctx, claims)
		ctx.Next()
	}
}

// OptionalJWT attaches a session when a valid token is present and lets
// anonymous requests through. A bad token is treated as no token.
func (a *Authenticator) OptionalJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token, ok := bearerToken(ctx); ok {
			if claims, err := jwthelper.ParseToken(a.key, token); err == nil {
				attach(ctx, claims)
			}
		}
		ctx.Next()
	}
}

// RequireRole must run after VerifyJWT.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sess := session.FromContext(ctx.Request.Context())
		if sess == nil {
			response.RenderErr(ctx, response.ErrUnauthorized(errNoSession))
			return
		}

		for _, r := range roles {
			if sess.Role == r {
				ctx.Next()
				return
			}
		}

		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("role %q is not allowed", sess.Role)))
	}
}

func bearerToken(ctx *gin.Context) (string, bool) {
	header := ctx.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func attach(ctx *gin.Context, claims *jwthelper.Claims) {
	sess := session.Session{
		UserID: claims.UserID,
		Role:   claims.Role,
		HostID: claims.HostID,
	}
	ctx.Request = ctx.Request.WithContext(session.WithSession(ctx.Request.Context(), sess))
}
