package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderspot/connecthost-api/internal/domain"
)

func TestFromContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	hostID := uint(4)
	ctx := WithSession(context.Background(), Session{UserID: 9, Role: domain.RoleHost, HostID: &hostID})

	s := FromContext(ctx)
	require.NotNil(t, s)
	assert.Equal(t, uint(9), s.UserID)
	assert.True(t, s.CanManageHost(4))
	assert.False(t, s.CanManageHost(5))
}

func TestSession_CanManageHost(t *testing.T) {
	assert.True(t, Session{Role: domain.RoleAdmin}.CanManageHost(1))
	assert.False(t, Session{Role: domain.RoleHost}.CanManageHost(1))
	assert.False(t, Session{Role: domain.RoleClient}.CanManageHost(1))
}
