package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderspot/connecthost-api/internal/repository/dao"
)

func TestStorefrontService_Browse(t *testing.T) {
	s := newStack(t)
	front := NewStorefrontService(s.hosts, s.venues, s.catalogRepo)

	room, err := front.Browse(context.Background(), azurID, dao.SeedRoomRefID)
	require.NoError(t, err)
	assert.Equal(t, "Hotel Azur", room.HostName)
	assert.Equal(t, "€", room.CurrencySymbol)
	require.Len(t, room.Services, 2)
	require.NotNil(t, room.Services[0].Form)
	assert.Len(t, room.Services[0].Form.Fields, 3)
	assert.Nil(t, room.Menu)

	table, err := front.Browse(context.Background(), azurID, dao.SeedTableRefID)
	require.NoError(t, err)
	require.Len(t, table.Services, 1, "the spa is only offered in rooms")
	assert.Equal(t, "Airport shuttle", table.Services[0].Name)
	require.NotNil(t, table.Menu)
	assert.Equal(t, "Room service", table.Menu.Name)

	_, err = front.Browse(context.Background(), paulID, dao.SeedRoomRefID)
	assert.ErrorIs(t, err, ErrLocationNotFound)
}
