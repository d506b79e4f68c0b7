package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Reservation struct {
	ID                  uint   `gorm:"primaryKey"`
	HostID              uint   `gorm:"not null;index"`
	LocationID          uint   `gorm:"not null;index"`
	Type                string `gorm:"not null"`
	ClientName          string
	ClientID            *uint     `gorm:"index"`
	DateArrivee         time.Time `gorm:"not null"`
	DateDepart          *time.Time
	Status              string `gorm:"not null;index"`
	NombrePersonnes     int
	PrixTotal           decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	MontantPaye         decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	SoldeDu             decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Currency            string
	OnlineCheckinData   datatypes.JSON
	OnlineCheckinStatus string
	CheckoutNotes       string
	CheckedOutAt        *time.Time
	LoyaltyPointsEarned int  `gorm:"not null"`
	Version             uint `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type ReservationFilter struct {
	HostID     uint
	LocationID uint
	ClientID   uint
	Statuses   []string
}

// LoyaltyCredit adds points to a client record as part of a reservation
// update.
type LoyaltyCredit struct {
	ClientID uint
	Points   int
}

type ReservationDAO struct {
	db *gorm.DB
}

func NewReservationDAO(db *gorm.DB) *ReservationDAO {
	return &ReservationDAO{db: db}
}

func (d *ReservationDAO) Insert(ctx context.Context, r Reservation) (Reservation, error) {
	r.Version = 1
	if err := d.db.WithContext(ctx).Create(&r).Error; err != nil {
		return Reservation{}, err
	}
	return r, nil
}

func (d *ReservationDAO) FindByID(ctx context.Context, id uint) (Reservation, error) {
	var r Reservation
	if err := d.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return Reservation{}, notFound(err, ErrReservationNotFound)
	}
	return r, nil
}

func (d *ReservationDAO) Find(ctx context.Context, f ReservationFilter) ([]Reservation, error) {
	var reservations []Reservation

	q := d.db.WithContext(ctx)
	if f.HostID != 0 {
		q = q.Where("host_id = ?", f.HostID)
	}
	if f.LocationID != 0 {
		q = q.Where("location_id = ?", f.LocationID)
	}
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}

	if err := q.Order("date_arrivee DESC, id DESC").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// Update writes the mutable state of a reservation guarded by its version.
// The optional payment and loyalty credit commit with it or not at all.
func (d *ReservationDAO) Update(ctx context.Context, r Reservation, expectedVersion uint, payment *Payment, credit *LoyaltyCredit) (Reservation, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Reservation{}).
			Where("id = ? AND version = ?", r.ID, expectedVersion).
			Updates(map[string]any{
				"status":                r.Status,
				"montant_paye":          r.MontantPaye,
				"solde_du":              r.SoldeDu,
				"online_checkin_data":   r.OnlineCheckinData,
				"online_checkin_status": r.OnlineCheckinStatus,
				"checkout_notes":        r.CheckoutNotes,
				"checked_out_at":        r.CheckedOutAt,
				"loyalty_points_earned": r.LoyaltyPointsEarned,
				"version":               expectedVersion + 1,
				"updated_at":            time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return staleOrMissing(tx, &Reservation{}, r.ID, ErrReservationNotFound)
		}

		if payment != nil {
			if err := insertPayment(tx, *payment); err != nil {
				return err
			}
		}
		if credit != nil && credit.Points != 0 {
			if err := addLoyaltyPoints(tx, credit.ClientID, credit.Points); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Reservation{}, err
	}

	return d.FindByID(ctx, r.ID)
}
