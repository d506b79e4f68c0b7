package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/pkg/jwthelper"
	"github.com/orderspot/connecthost-api/internal/session"
)

const testKey = "middleware-test-key"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(ctx *gin.Context) {
		sess := session.FromContext(ctx.Request.Context())
		if sess == nil {
			ctx.String(http.StatusOK, "anonymous")
			return
		}
		ctx.String(http.StatusOK, string(sess.Role))
	})
	r.GET("/", handlers...)
	return r
}

func tokenFor(t *testing.T, user domain.User) string {
	t.Helper()
	token, err := jwthelper.GenerateToken([]byte(testKey), user, "test", time.Hour)
	require.NoError(t, err)
	return token
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyJWT(t *testing.T) {
	r := newRouter(NewAuthenticator(testKey).VerifyJWT())

	tests := []struct {
		name     string
		token    string
		wantCode int
		wantBody string
	}{
		{name: "missing token", wantCode: http.StatusUnauthorized},
		{name: "garbage token", token: "not-a-jwt", wantCode: http.StatusUnauthorized},
		{
			name:     "valid token",
			token:    tokenFor(t, domain.User{ID: 1, Role: domain.RoleAdmin}),
			wantCode: http.StatusOK,
			wantBody: "admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.token)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestVerifyJWT_WrongKey(t *testing.T) {
	r := newRouter(NewAuthenticator("another-key").VerifyJWT())

	w := do(r, tokenFor(t, domain.User{ID: 1, Role: domain.RoleAdmin}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalJWT(t *testing.T) {
	r := newRouter(NewAuthenticator(testKey).OptionalJWT())

	assert.Equal(t, "anonymous", do(r, "").Body.String())
	assert.Equal(t, "anonymous", do(r, "broken").Body.String())
	assert.Equal(t, "client", do(r, tokenFor(t, domain.User{ID: 3, Role: domain.RoleClient})).Body.String())
}

func TestRequireRole(t *testing.T) {
	r := newRouter(NewAuthenticator(testKey).VerifyJWT(), RequireRole(domain.RoleAdmin, domain.RoleHost))

	assert.Equal(t, http.StatusOK, do(r, tokenFor(t, domain.User{ID: 2, Role: domain.RoleHost})).Code)
	assert.Equal(t, http.StatusForbidden, do(r, tokenFor(t, domain.User{ID: 3, Role: domain.RoleClient})).Code)
}
