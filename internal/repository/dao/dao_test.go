package dao

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
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, InitTables(db))

	return db
}

func seededDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := newTestDB(t)
	require.NoError(t, Seed(db))
	return db
}

func TestUserDAO_InsertDuplicateEmail(t *testing.T) {
	d := NewUserDAO(newTestDB(t))
	ctx := context.Background()

	created, err := d.Insert(ctx, User{Email: "a@b.com", Password: "hash", Role: "client"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = d.Insert(ctx, User{Email: "a@b.com", Password: "other", Role: "client"})
	assert.ErrorIs(t, err, ErrUserEmailExists)

	found, err := d.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = d.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestHostDAO_UpdateSettingsWritesFalse(t *testing.T) {
	d := NewHostDAO(newTestDB(t))
	ctx := context.Background()

	host, err := d.Insert(ctx, Host{
		Name: "H", Email: "h@h.com",
		Reservation: ReservationSettings{EnableRooms: true, EnableTables: true},
		Loyalty:     LoyaltySettings{Enabled: true, PointsPerUnit: decimal.NewFromInt(1), Rounding: "floor"},
	})
	require.NoError(t, err)

	updated, err := d.UpdateSettings(ctx, host.ID,
		ReservationSettings{EnableRooms: false, EnableTables: true},
		LoyaltySettings{Enabled: false, PointsPerUnit: decimal.RequireFromString("0.5"), Rounding: "ceil"},
	)
	require.NoError(t, err)
	assert.False(t, updated.Reservation.EnableRooms)
	assert.True(t, updated.Reservation.EnableTables)
	assert.False(t, updated.Loyalty.Enabled)
	assert.True(t, updated.Loyalty.PointsPerUnit.Equal(decimal.RequireFromString("0.5")))

	_, err = d.UpdateSettings(ctx, 999, ReservationSettings{EnableTables: true}, LoyaltySettings{})
	assert.ErrorIs(t, err, ErrHostNotFound)
}

func TestHostDAO_DeleteCascade(t *testing.T) {
	db := seededDB(t)
	d := NewHostDAO(db)
	ctx := context.Background()

	var azur Host
	require.NoError(t, db.Where("name = ?", "Hotel Azur").First(&azur).Error)

	require.NoError(t, d.DeleteCascade(ctx, azur.ID))

	for _, model := range []any{&Site{}, &Location{}, &Tag{}, &Service{}, &ServiceCategory{}, &CustomForm{}, &MenuCard{}, &Client{}} {
		var n int64
		require.NoError(t, db.Model(model).Where("host_id = ?", azur.ID).Count(&n).Error)
		assert.Zerof(t, n, "%T rows left", model)
	}

	var items, hostUsers, otherUsers, orders int64
	require.NoError(t, db.Model(&MenuItem{}).Count(&items).Error)
	require.NoError(t, db.Model(&User{}).Where("host_id = ?", azur.ID).Count(&hostUsers).Error)
	require.NoError(t, db.Model(&User{}).Count(&otherUsers).Error)
	require.NoError(t, db.Model(&Order{}).Where("host_id = ?", azur.ID).Count(&orders).Error)
	assert.Zero(t, items)
	assert.Zero(t, hostUsers)
	assert.Equal(t, int64(2), otherUsers, "admin and client users are kept")
	assert.Equal(t, int64(2), orders, "orders are kept for accounting")

	var paulClients int64
	require.NoError(t, db.Model(&Client{}).Count(&paulClients).Error)
	assert.Equal(t, int64(1), paulClients)

	assert.ErrorIs(t, d.DeleteCascade(ctx, azur.ID), ErrHostNotFound)
}

func TestVenueDAO_DeleteTagCleansLocations(t *testing.T) {
	db := seededDB(t)
	d := NewVenueDAO(db)
	ctx := context.Background()

	room, err := d.FindLocationByRef(ctx, 1, SeedRoomRefID)
	require.NoError(t, err)
	ids, err := DecodeIDs(room.TagIDs)
	require.NoError(t, err)
	require.Len(t, ids, 1)

	touched, err := d.DeleteTag(ctx, room.HostID, ids[0])
	require.NoError(t, err)
	assert.Equal(t, 1, touched)

	room, err = d.FindLocationByID(ctx, room.ID)
	require.NoError(t, err)
	ids, err = DecodeIDs(room.TagIDs)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = d.DeleteTag(ctx, room.HostID, 999)
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestCatalogDAO_UpsertForm(t *testing.T) {
	db := newTestDB(t)
	d := NewCatalogDAO(db)
	ctx := context.Background()

	svc, err := d.InsertService(ctx, Service{Name: "Laundry", HostID: 1})
	require.NoError(t, err)

	first, err := d.UpsertForm(ctx, CustomForm{HostID: 1, ServiceID: svc.ID, Name: "v1", Fields: []byte(`[]`)})
	require.NoError(t, err)

	second, err := d.UpsertForm(ctx, CustomForm{HostID: 1, ServiceID: svc.ID, Name: "v2", Fields: []byte(`[{"id":"bags"}]`)})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "v2", second.Name)

	svc, err = d.FindServiceByID(ctx, svc.ID)
	require.NoError(t, err)
	require.NotNil(t, svc.FormID)
	assert.Equal(t, second.ID, *svc.FormID)
}

func TestCatalogDAO_FindProducts(t *testing.T) {
	d := NewCatalogDAO(seededDB(t))
	ctx := context.Background()

	all, err := d.FindProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	drinks, err := d.FindProducts(ctx, "drinks")
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.Equal(t, "Espresso", drinks[0].Name)
}

func TestOrderDAO_UpdateIsVersioned(t *testing.T) {
	db := newTestDB(t)
	d := NewOrderDAO(db)
	ctx := context.Background()

	order, err := d.Insert(ctx, Order{
		HostID: 1, Status: "pending", DateHeure: time.Now(),
		Items:     []OrderItem{{Name: "Espresso", Price: decimal.RequireFromString("2.5"), Quantity: 2}},
		PrixTotal: decimal.NewNullDecimal(decimal.NewFromInt(5)),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), order.Version)

	order.Status = "confirmed"
	order.MontantPaye = decimal.NewNullDecimal(decimal.NewFromInt(2))
	payment := &Payment{HostID: 1, TargetType: PaymentForOrder, TargetID: order.ID, Amount: decimal.NewFromInt(2)}

	updated, err := d.Update(ctx, order, 1, payment)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)
	assert.Equal(t, uint(2), updated.Version)
	require.Len(t, updated.Items, 1)

	_, err = d.Update(ctx, order, 1, nil)
	assert.ErrorIs(t, err, ErrStaleWrite)

	order.ID = 999
	_, err = d.Update(ctx, order, 1, nil)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	payments, err := NewPaymentDAO(db).FindByTarget(ctx, PaymentForOrder, updated.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.True(t, payments[0].Amount.Equal(decimal.NewFromInt(2)))
}

func TestOrderDAO_Find(t *testing.T) {
	d := NewOrderDAO(seededDB(t))
	ctx := context.Background()

	all, err := d.Find(ctx, OrderFilter{HostID: 1})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := d.Find(ctx, OrderFilter{HostID: 1, Statuses: []string{"pending", "preparing"}})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "preparing", active[0].Status)
}

func TestReservationDAO_UpdateCreditsLoyalty(t *testing.T) {
	db := seededDB(t)
	d := NewReservationDAO(db)
	ctx := context.Background()

	stays, err := d.Find(ctx, ReservationFilter{HostID: 1})
	require.NoError(t, err)
	require.Len(t, stays, 1)
	stay := stays[0]
	require.NotNil(t, stay.ClientID)

	now := time.Now()
	stay.Status = "checked-out"
	stay.CheckedOutAt = &now
	stay.LoyaltyPointsEarned = 360

	updated, err := d.Update(ctx, stay, stay.Version, nil, &LoyaltyCredit{ClientID: *stay.ClientID, Points: 360})
	require.NoError(t, err)
	assert.Equal(t, "checked-out", updated.Status)
	assert.Equal(t, 360, updated.LoyaltyPointsEarned)

	client, err := NewClientDAO(db).FindByID(ctx, *stay.ClientID)
	require.NoError(t, err)
	require.NotNil(t, client.PointsFidelite)
	assert.Equal(t, 400, *client.PointsFidelite)

	_, err = d.Update(ctx, stay, stay.Version, nil, &LoyaltyCredit{ClientID: *stay.ClientID, Points: 360})
	assert.ErrorIs(t, err, ErrStaleWrite)

	client, err = NewClientDAO(db).FindByID(ctx, *stay.ClientID)
	require.NoError(t, err)
	assert.Equal(t, 400, *client.PointsFidelite, "a stale write must not credit points")
}

func TestClientDAO_FindByUser(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()

	guest, err := NewUserDAO(db).FindByEmail(ctx, SeedClientEmail)
	require.NoError(t, err)

	linked, err := NewClientDAO(db).FindByUser(ctx, guest.ID, "")
	require.NoError(t, err)
	assert.Len(t, linked, 1)

	byEmail, err := NewClientDAO(db).FindByUser(ctx, guest.ID, "GUEST@example.com")
	require.NoError(t, err)
	assert.Len(t, byEmail, 2)
}
