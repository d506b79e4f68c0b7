package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository/dao"
)

func TestCatalogService_SaveFormReplacesDefinition(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	saved, err := s.catalog.SaveForm(ctx, spaID, domain.CustomForm{
		Fields: []domain.FormField{
			{ID: "slot", Label: "Slot", Type: domain.FieldSelect, Required: true, Options: []string{"am", "pm"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Spa access", saved.Name)
	assert.Equal(t, azurID, saved.HostID)

	form, err := s.catalog.GetForm(ctx, spaID)
	require.NoError(t, err)
	require.Len(t, form.Fields, 1)
	assert.Equal(t, []string{"am", "pm"}, form.Fields[0].Options)

	svc, err := s.catalog.GetService(ctx, spaID)
	require.NoError(t, err)
	require.NotNil(t, svc.FormID)
	assert.Equal(t, form.ID, *svc.FormID)
}

func TestCatalogService_SaveFormRejectsInvalidFields(t *testing.T) {
	s := newStack(t)

	tests := []struct {
		name   string
		fields []domain.FormField
	}{
		{name: "missing id", fields: []domain.FormField{{Label: "Name", Type: domain.FieldText}}},
		{name: "duplicate id", fields: []domain.FormField{
			{ID: "a", Type: domain.FieldText},
			{ID: "a", Type: domain.FieldNumber},
		}},
		{name: "select without options", fields: []domain.FormField{{ID: "size", Type: domain.FieldSelect}}},
		{name: "unknown type", fields: []domain.FormField{{ID: "sig", Type: "signature"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.catalog.SaveForm(context.Background(), spaID, domain.CustomForm{Fields: tt.fields})
			assert.ErrorIs(t, err, ErrInvalidForm)
		})
	}

	_, err := s.catalog.SaveForm(context.Background(), 404, domain.CustomForm{})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCatalogService_CreateServiceChecksCategoryHost(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	cats, err := s.catalog.ListCategories(ctx, azurID)
	require.NoError(t, err)
	require.NotEmpty(t, cats)

	_, err = s.catalog.CreateService(ctx, domain.Service{Name: "Wine tasting", HostID: paulID, CategoryID: &cats[0].ID})
	assert.ErrorIs(t, err, ErrForeignHost)

	created, err := s.catalog.CreateService(ctx, domain.Service{
		Name: "Late checkout", HostID: azurID, Price: decimal.NewNullDecimal(dec("20")),
	})
	require.NoError(t, err)
	assert.Nil(t, created.FormID)
}

func TestCatalogService_CreateMenuRejectsNegativePrice(t *testing.T) {
	s := newStack(t)

	_, err := s.catalog.CreateMenu(context.Background(), domain.MenuCard{
		HostID: paulID,
		Name:   "Bar",
		Categories: []domain.MenuCategory{{
			Name:  "Drinks",
			Items: []domain.MenuItem{{Name: "Refund", Price: dec("-1")}},
		}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestVenueService_CreateLocation(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	sites, err := s.venueSvc.ListSites(ctx, azurID)
	require.NoError(t, err)
	require.Len(t, sites, 1)

	loc, err := s.venueSvc.CreateLocation(ctx, domain.Location{
		Name: "Room 102", Type: domain.LocationRoom, HostID: azurID, GlobalSiteID: sites[0].ID, Capacity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PricePerNight, loc.PriceMode)
	assert.Len(t, loc.RefID, 36)
	assert.NotEqual(t, dao.SeedRoomRefID, loc.RefID)

	_, err = s.venueSvc.CreateLocation(ctx, domain.Location{
		Name: "Bar 1", Type: domain.LocationTable, HostID: paulID, GlobalSiteID: sites[0].ID,
	})
	assert.ErrorIs(t, err, ErrForeignHost)
}

func TestVenueService_DeleteTagStripsLocations(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	tags, err := s.venueSvc.ListTags(ctx, azurID)
	require.NoError(t, err)
	require.Len(t, tags, 1)

	touched, err := s.venueSvc.DeleteTag(ctx, azurID, tags[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, touched)

	room, err := s.venues.FindLocationByID(ctx, roomID)
	require.NoError(t, err)
	assert.Empty(t, room.TagIDs)
}
