package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository/dao"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:repo_"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(db))

	return db
}

func TestHostRepository_SettingsRoundTrip(t *testing.T) {
	r := NewHostRepository(dao.NewHostDAO(newTestDB(t)))
	ctx := context.Background()

	host, err := r.Create(ctx, domain.Host{
		Name:        "Hotel Azur",
		Email:       "a@azur.local",
		Currency:    "EUR",
		Reservation: domain.ReservationSettings{EnableRoomReservations: true, HeroImageURL: "hero.jpg"},
		Loyalty:     domain.LoyaltySettings{Enabled: true, PointsPerUnit: decimal.RequireFromString("0.25"), Rounding: domain.RoundCeil},
	})
	require.NoError(t, err)

	found, err := r.FindByID(ctx, host.ID)
	require.NoError(t, err)
	assert.True(t, found.Reservation.EnableRoomReservations)
	assert.False(t, found.Reservation.EnableTableReservations)
	assert.Equal(t, "hero.jpg", found.Reservation.HeroImageURL)
	assert.Equal(t, domain.RoundCeil, found.Loyalty.Rounding)
	assert.True(t, found.Loyalty.PointsPerUnit.Equal(decimal.RequireFromString("0.25")))

	byID, err := r.FindByIDs(ctx, []uint{host.ID, 42})
	require.NoError(t, err)
	assert.Len(t, byID, 1)

	_, err = r.FindByID(ctx, 42)
	assert.ErrorIs(t, err, ErrHostNotFound)
}

func TestOrderRepository_ItemsAndVersion(t *testing.T) {
	r := NewOrderRepository(dao.NewOrderDAO(newTestDB(t)))
	ctx := context.Background()

	userID := uint(7)
	created, err := r.Create(ctx, domain.Order{
		HostID: 1,
		UserID: &userID,
		Status: domain.OrderPending,
		Items: []domain.OrderItem{
			{Name: "Espresso", Price: decimal.RequireFromString("2.5"), Quantity: 2},
			{Name: "Croissant", Price: decimal.RequireFromString("1.8"), Quantity: 1},
		},
		PrixTotal:         decimal.NewNullDecimal(decimal.RequireFromString("6.8")),
		DonneesFormulaire: `{"allergies":"peanuts","spice_level":"mild"}`,
		DateHeure:         time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.Version)

	found, err := r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
	assert.True(t, domain.TotalOf(found.Items).Equal(decimal.RequireFromString("6.8")))

	answers, err := domain.DecodeFormAnswers(found.DonneesFormulaire)
	require.NoError(t, err)
	assert.Equal(t, domain.FormAnswers{"allergies": "peanuts", "spice_level": "mild"}, answers)

	require.NoError(t, found.Confirm())
	updated, err := r.Update(ctx, found, found.Version, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderConfirmed, updated.Status)

	_, err = r.Update(ctx, found, found.Version, nil)
	assert.ErrorIs(t, err, ErrStaleWrite)

	byUser, err := r.Find(ctx, OrderFilter{UserID: userID, Statuses: []domain.OrderStatus{domain.OrderConfirmed}})
	require.NoError(t, err)
	assert.Len(t, byUser, 1)
}

func TestReservationRepository_CheckinDataRoundTrip(t *testing.T) {
	r := NewReservationRepository(dao.NewReservationDAO(newTestDB(t)))
	ctx := context.Background()

	created, err := r.Create(ctx, domain.Reservation{
		HostID: 1, LocationID: 2, Type: domain.ReservationTable,
		DateArrivee: time.Now(), Status: domain.ReservationConfirmed, NombrePersonnes: 4,
	})
	require.NoError(t, err)
	assert.Empty(t, created.OnlineCheckinData)

	require.NoError(t, created.SubmitOnlineCheckin(domain.FormAnswers{"passport": "X123", "guests": float64(2)}))
	updated, err := r.Update(ctx, created, created.Version, ReservationUpdate{})
	require.NoError(t, err)

	assert.Equal(t, domain.CheckinSubmitted, updated.OnlineCheckinStatus)
	assert.Equal(t, domain.FormAnswers{"passport": "X123", "guests": float64(2)}, updated.OnlineCheckinData)
}

func TestCatalogRepository_MenuRoundTrip(t *testing.T) {
	r := NewCatalogRepository(dao.NewCatalogDAO(newTestDB(t)))
	ctx := context.Background()

	groups := []domain.OptionGroup{{
		ID: "cuisson", Name: "Cuisson",
		Options: []domain.Option{{ID: "rare", Name: "Saignant"}},
	}}
	menu, err := r.CreateMenu(ctx, domain.MenuCard{
		HostID: 3,
		Name:   "Bar",
		Categories: []domain.MenuCategory{{
			Name:  "Food",
			Items: []domain.MenuItem{{Name: "Steak", Price: decimal.NewFromInt(22), Configurable: true, OptionGroups: groups}},
		}},
	})
	require.NoError(t, err)
	require.Len(t, menu.Categories, 1)
	require.Len(t, menu.Categories[0].Items, 1)

	itemID := menu.Categories[0].Items[0].ID
	items, err := r.FindMenuItemsByIDs(ctx, []uint{itemID})
	require.NoError(t, err)
	assert.Equal(t, groups, items[itemID].OptionGroups)
	assert.Equal(t, uint(3), items[itemID].HostID)

	menus, err := r.FindMenusByHost(ctx, 3)
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, "Steak", menus[0].Categories[0].Items[0].Name)
}
