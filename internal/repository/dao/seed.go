package dao

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Demo credentials of the seeded users. The mock backend is meant for local
// runs and demos only.
const (
	SeedAdminEmail  = "admin@connecthost.local"
	SeedHostEmail   = "host@hotel-azur.local"
	SeedClientEmail = "guest@example.com"
	SeedPassword    = "demo1234"
)

// Fixed reference ids so the seeded QR links stay stable across restarts.
const (
	SeedRoomRefID  = "6f1c2f0e-8a51-4c4e-9a36-3b1f7f2d9a01"
	SeedTableRefID = "0b7e4f6a-2d9c-4c1b-8f3e-5a6d7c8b9e02"
)

func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
		}

		azur := Host{
			Name:        "Hotel Azur",
			Email:       "contact@hotel-azur.local",
			Currency:    "EUR",
			Language:    "fr",
			Reservation: ReservationSettings{EnableRooms: true, EnableTables: true},
			Loyalty:     LoyaltySettings{Enabled: true, PointsPerUnit: decimal.NewFromInt(1), Rounding: "floor"},
		}
		paul := Host{
			Name:        "Chez Paul",
			Email:       "bonjour@chezpaul.local",
			Reservation: ReservationSettings{EnableTables: true},
			Loyalty:     LoyaltySettings{Enabled: true, PointsPerUnit: decimal.RequireFromString("0.5"), Rounding: "round"},
		}
		if err := tx.Create(&azur).Error; err != nil {
			return err
		}
		if err := tx.Create(&paul).Error; err != nil {
			return err
		}

		guest := User{Email: SeedClientEmail, Password: string(hash), Role: "client", Name: "Camille Martin"}
		users := []*User{
			{Email: SeedAdminEmail, Password: string(hash), Role: "admin", Name: "Platform Admin"},
			{Email: SeedHostEmail, Password: string(hash), Role: "host", Name: "Azur Reception", HostID: &azur.ID},
			&guest,
		}
		for _, u := range users {
			if err := tx.Create(u).Error; err != nil {
				return err
			}
		}

		site := Site{Name: "Azur Seafront", HostID: azur.ID, Color: "#1e6091"}
		if err := tx.Create(&site).Error; err != nil {
			return err
		}

		sea := Tag{Name: "Sea view", HostID: azur.ID}
		if err := tx.Create(&sea).Error; err != nil {
			return err
		}
		tagIDs, err := EncodeIDs([]uint{sea.ID})
		if err != nil {
			return err
		}

		room := Location{
			Name: "Room 101", Type: "Chambre", HostID: azur.ID, GlobalSiteID: site.ID, Capacity: 2,
			Price: decimal.NewNullDecimal(decimal.NewFromInt(120)), PriceMode: "per_night",
			TagIDs: tagIDs, RefID: SeedRoomRefID,
		}
		table := Location{
			Name: "Terrace 4", Type: "Table", HostID: azur.ID, GlobalSiteID: site.ID, Capacity: 4,
			PriceMode: "fixed", TagIDs: datatypes.JSON("[]"), RefID: SeedTableRefID,
		}
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		if err := tx.Create(&table).Error; err != nil {
			return err
		}

		wellness := ServiceCategory{Name: "Wellness", HostID: azur.ID}
		if err := tx.Create(&wellness).Error; err != nil {
			return err
		}

		roomOnly, err := EncodeIDs([]uint{room.ID})
		if err != nil {
			return err
		}
		spa := Service{
			Name: "Spa access", HostID: azur.ID, CategoryID: &wellness.ID,
			Price: decimal.NewNullDecimal(decimal.NewFromInt(35)), Currency: "EUR",
			TargetLocationIDs: roomOnly,
		}
		shuttle := Service{
			Name: "Airport shuttle", HostID: azur.ID, CategoryID: &wellness.ID,
			Price: decimal.NewNullDecimal(decimal.NewFromInt(50)), LoginRequired: true,
			TargetLocationIDs: datatypes.JSON("[]"),
		}
		if err := tx.Create(&spa).Error; err != nil {
			return err
		}
		if err := tx.Create(&shuttle).Error; err != nil {
			return err
		}

		form := CustomForm{
			HostID: azur.ID, ServiceID: spa.ID, Name: "Spa booking",
			Fields: datatypes.JSON(`[` +
				`{"id":"slot","label":"Preferred date","type":"date","required":true},` +
				`{"id":"allergies","label":"Allergies","type":"text","required":false},` +
				`{"id":"oils","label":"Oils","type":"multiselect","required":false,"options":["lavender","eucalyptus"]}` +
				`]`),
		}
		if err := tx.Create(&form).Error; err != nil {
			return err
		}
		if err := tx.Model(&spa).Update("form_id", form.ID).Error; err != nil {
			return err
		}

		menu := MenuCard{
			HostID: azur.ID,
			Name:   "Room service",
			Categories: []MenuCategory{{
				Name: "Mains",
				Items: []MenuItem{
					{
						HostID: azur.ID, Name: "Burger", Price: decimal.RequireFromString("18.50"), Configurable: true,
						OptionGroups: datatypes.JSON(`[` +
							`{"id":"cuisson","name":"Cuisson","multiple":false,"options":[{"id":"rare","name":"Saignant"},{"id":"medium","name":"À point"}]},` +
							`{"id":"extras","name":"Extras","multiple":true,"options":[{"id":"cheese","name":"Cheddar"},{"id":"bacon","name":"Bacon"}]}` +
							`]`),
					},
					{HostID: azur.ID, Name: "Caesar salad", Price: decimal.RequireFromString("14")},
				},
			}},
		}
		if err := tx.Create(&menu).Error; err != nil {
			return err
		}
		if err := tx.Model(&table).Update("menu_id", menu.ID).Error; err != nil {
			return err
		}

		products := []Product{
			{Name: "Espresso", Price: decimal.RequireFromString("2.5"), Category: "drinks", InStock: true},
			{Name: "Croissant", Price: decimal.RequireFromString("1.8"), Category: "bakery", InStock: true},
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		points := 40
		clients := []*Client{
			{HostID: azur.ID, Name: guest.Name, Email: guest.Email, Type: "heberge",
				Credit: decimal.NewNullDecimal(decimal.NewFromInt(30)), PointsFidelite: &points, UserID: &guest.ID},
			{HostID: paul.ID, Name: guest.Name, Email: guest.Email, Type: "passager",
				Credit: decimal.NewNullDecimal(decimal.NewFromInt(10))},
		}
		for _, c := range clients {
			if err := tx.Create(c).Error; err != nil {
				return err
			}
		}

		now := time.Now().UTC().Truncate(time.Second)
		orders := []Order{
			{
				ServiceID: &spa.ID, HostID: azur.ID, ChambreTableID: &room.ID, ClientNom: guest.Name,
				UserID: &guest.ID, ClientID: &clients[0].ID, Status: "completed",
				PrixTotal:         decimal.NewNullDecimal(decimal.NewFromInt(35)),
				MontantPaye:       decimal.NewNullDecimal(decimal.NewFromInt(35)),
				SoldeDu:           decimal.NewNullDecimal(decimal.Zero),
				DonneesFormulaire: `{"allergies":"peanuts","slot":"2026-07-01"}`,
				DateHeure:         now.Add(-48 * time.Hour), Version: 1,
			},
			{
				MenuItemID: &menu.Categories[0].Items[0].ID, HostID: azur.ID, ChambreTableID: &table.ID,
				ClientNom: "Table 4", Status: "preparing",
				PrixTotal:         decimal.NewNullDecimal(decimal.RequireFromString("18.50")),
				DonneesFormulaire: `{"cuisson":"medium","extras":["cheese","bacon"]}`,
				DateHeure:         now.Add(-10 * time.Minute), Version: 1,
			},
		}
		if err := tx.Create(&orders).Error; err != nil {
			return err
		}

		departure := now.Add(72 * time.Hour)
		stay := Reservation{
			HostID: azur.ID, LocationID: room.ID, Type: "Chambre", ClientName: guest.Name, ClientID: &clients[0].ID,
			DateArrivee: now, DateDepart: &departure, Status: "confirmed", NombrePersonnes: 2,
			PrixTotal:   decimal.NewNullDecimal(decimal.NewFromInt(360)),
			MontantPaye: decimal.NewNullDecimal(decimal.NewFromInt(100)),
			SoldeDu:     decimal.NewNullDecimal(decimal.NewFromInt(260)),
			Currency:    "EUR", Version: 1,
		}

		return tx.Create(&stay).Error
	})
}
