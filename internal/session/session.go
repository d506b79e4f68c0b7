package session

import (
	"context"

	"github.com/orderspot/connecthost-api/internal/domain"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Session is the authenticated caller of one request.
type Session struct {
	UserID uint
	Role   domain.Role
	HostID *uint
}

func (s Session) IsAdmin() bool { return s.Role == domain.RoleAdmin }

// CanManageHost is true for admins and for host users bound to hostID.
func (s Session) CanManageHost(hostID uint) bool {
	if s.IsAdmin() {
		return true
	}
	return s.Role == domain.RoleHost && s.HostID != nil && *s.HostID == hostID
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

func FromContext(ctx context.Context) *Session {
	s, ok := ctx.Value(sessionContextKey).(Session)
	if !ok {
		return nil
	}
	return &s
}
