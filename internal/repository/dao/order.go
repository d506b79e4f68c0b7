package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID                uint `gorm:"primaryKey"`
	ServiceID         *uint
	MenuItemID        *uint
	HostID            uint `gorm:"not null;index"`
	ChambreTableID    *uint
	ClientNom         string
	UserID            *uint       `gorm:"index"`
	ClientID          *uint       `gorm:"index"`
	Status            string      `gorm:"not null;index"`
	Items             []OrderItem `gorm:"foreignKey:OrderID"`
	PrixTotal         decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Currency          string
	DonneesFormulaire string `gorm:"type:text"`
	MontantPaye       decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	SoldeDu           decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Notes             string
	DateHeure         time.Time `gorm:"not null"`
	Version           uint      `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type OrderItem struct {
	ID         uint `gorm:"primaryKey"`
	OrderID    uint `gorm:"not null;index"`
	MenuItemID *uint
	ProductID  *uint
	Name       string
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity   int             `gorm:"not null"`
}

// OrderFilter narrows FindOrders. Zero fields do not filter.
type OrderFilter struct {
	HostID   uint
	UserID   uint
	ClientID uint
	Statuses []string
}

type OrderDAO struct {
	db *gorm.DB
}

func NewOrderDAO(db *gorm.DB) *OrderDAO {
	return &OrderDAO{db: db}
}

func (d *OrderDAO) Insert(ctx context.Context, order Order) (Order, error) {
	order.Version = 1
	if err := d.db.WithContext(ctx).Create(&order).Error; err != nil {
		return Order{}, err
	}
	return order, nil
}

func (d *OrderDAO) FindByID(ctx context.Context, id uint) (Order, error) {
	var order Order
	if err := d.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return Order{}, notFound(err, ErrOrderNotFound)
	}
	return order, nil
}

func (d *OrderDAO) Find(ctx context.Context, f OrderFilter) ([]Order, error) {
	var orders []Order

	q := d.db.WithContext(ctx).Preload("Items")
	if f.HostID != 0 {
		q = q.Where("host_id = ?", f.HostID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}

	if err := q.Order("date_heure DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindForUser returns the orders placed by the user or attached to one of
// the given client records.
func (d *OrderDAO) FindForUser(ctx context.Context, userID uint, clientIDs []uint) ([]Order, error) {
	var orders []Order

	q := d.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(clientIDs) > 0 {
		q = q.Or("client_id IN ?", clientIDs)
	}
	if err := q.Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Update writes the mutable state of an order if its stored version is still
// expectedVersion, bumping the version. A payment, when given, is recorded
// in the same transaction.
func (d *OrderDAO) Update(ctx context.Context, order Order, expectedVersion uint, payment *Payment) (Order, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Order{}).
			Where("id = ? AND version = ?", order.ID, expectedVersion).
			Updates(map[string]any{
				"status":       order.Status,
				"montant_paye": order.MontantPaye,
				"solde_du":     order.SoldeDu,
				"notes":        order.Notes,
				"version":      expectedVersion + 1,
				"updated_at":   time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return staleOrMissing(tx, &Order{}, order.ID, ErrOrderNotFound)
		}

		if payment != nil {
			return insertPayment(tx, *payment)
		}
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	return d.FindByID(ctx, order.ID)
}

func staleOrMissing(tx *gorm.DB, model any, id uint, missing error) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return ErrStaleWrite
}
