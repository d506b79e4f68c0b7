package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository/dao"
)

func TestAuthService_SignupAndLogin(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	created, err := s.auth.Signup(ctx, domain.User{Email: " New@Guest.io ", Password: "s3cret!", Role: domain.RoleClient})
	require.NoError(t, err)
	assert.Equal(t, "new@guest.io", created.Email)
	assert.NotEqual(t, "s3cret!", created.Password)

	user, err := s.auth.Login(ctx, "NEW@guest.io", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = s.auth.Login(ctx, "new@guest.io", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = s.auth.Login(ctx, "nobody@guest.io", "s3cret!")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.auth.Signup(ctx, domain.User{Email: "new@guest.io", Password: "another"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestAuthService_LoginSeededUser(t *testing.T) {
	s := newStack(t)

	user, err := s.auth.Login(context.Background(), dao.SeedHostEmail, dao.SeedPassword)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleHost, user.Role)
	require.NotNil(t, user.HostID)
	assert.Equal(t, azurID, *user.HostID)
}

func TestAuthService_HostUsersNeedAHost(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	_, err := s.auth.Signup(ctx, domain.User{Email: "desk@azur.local", Password: "desk-pass", Role: domain.RoleHost})
	assert.ErrorIs(t, err, ErrHostRequired)

	_, err = s.auth.Signup(ctx, domain.User{Email: "desk@azur.local", Password: "desk-pass", Role: domain.RoleHost, HostID: uintPtr(99)})
	assert.ErrorIs(t, err, ErrHostNotFound)

	created, err := s.auth.Signup(ctx, domain.User{Email: "desk@azur.local", Password: "desk-pass", Role: domain.RoleHost, HostID: uintPtr(azurID)})
	require.NoError(t, err)
	assert.Equal(t, azurID, *created.HostID)
}
