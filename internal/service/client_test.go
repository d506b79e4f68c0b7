package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderspot/connecthost-api/internal/domain"
)

func TestClientService_Summary(t *testing.T) {
	s := newStack(t)

	summary, err := s.clients.Summary(context.Background(), guestID)
	require.NoError(t, err)

	assert.True(t, summary.TotalCredit.Equal(dec("40")))
	assert.Equal(t, 40, summary.TotalLoyaltyPoints)
	require.Len(t, summary.Hosts, 2)

	azur := summary.Hosts[0]
	assert.Equal(t, "Hotel Azur", azur.HostName)
	assert.Equal(t, "€", azur.Currency)
	assert.True(t, azur.TotalSpent.Equal(dec("35")))
	assert.True(t, azur.NetDue.Equal(dec("5")))

	paul := summary.Hosts[1]
	assert.Equal(t, "Chez Paul", paul.HostName)
	assert.True(t, paul.TotalSpent.IsZero())
	assert.True(t, paul.NetDue.Equal(dec("-10")))

	_, err = s.clients.Summary(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestClientService_CreateAndList(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	created, err := s.clients.CreateClient(ctx, domain.Client{
		HostID: paulID,
		Name:   "Léa Petit",
		Type:   domain.ClientPassager,
		Credit: decimal.NewNullDecimal(dec("5")),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	clients, err := s.clients.ListClients(ctx, paulID)
	require.NoError(t, err)
	assert.Len(t, clients, 2)

	_, err = s.clients.CreateClient(ctx, domain.Client{HostID: 404, Name: "Nobody"})
	assert.ErrorIs(t, err, ErrHostNotFound)

	_, err = s.clients.CreateClient(ctx, domain.Client{HostID: paulID, Name: "Ghost", UserID: uintPtr(404)})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
