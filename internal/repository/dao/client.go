package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Client struct {
	ID             uint   `gorm:"primaryKey"`
	HostID         uint   `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	Email          string `gorm:"index"`
	Type           string `gorm:"not null"` // "heberge" or "passager"
	Credit         decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	PointsFidelite *int
	UserID         *uint `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ClientDAO struct {
	db *gorm.DB
}

func NewClientDAO(db *gorm.DB) *ClientDAO {
	return &ClientDAO{db: db}
}

func (d *ClientDAO) Insert(ctx context.Context, c Client) (Client, error) {
	if err := d.db.WithContext(ctx).Create(&c).Error; err != nil {
		return Client{}, err
	}
	return c, nil
}

func (d *ClientDAO) FindByID(ctx context.Context, id uint) (Client, error) {
	var c Client
	if err := d.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return Client{}, notFound(err, ErrClientNotFound)
	}
	return c, nil
}

func (d *ClientDAO) FindByIDs(ctx context.Context, ids []uint) ([]Client, error) {
	var clients []Client
	if len(ids) == 0 {
		return clients, nil
	}
	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (d *ClientDAO) FindByHost(ctx context.Context, hostID uint) ([]Client, error) {
	var clients []Client
	if err := d.db.WithContext(ctx).Where("host_id = ?", hostID).Order("id").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// FindByUser returns the client records linked to the user, plus the ones
// carrying the user's email when email is given.
func (d *ClientDAO) FindByUser(ctx context.Context, userID uint, email string) ([]Client, error) {
	var clients []Client

	q := d.db.WithContext(ctx).Where("user_id = ?", userID)
	if email != "" {
		q = q.Or("LOWER(email) = LOWER(?)", email)
	}
	if err := q.Order("id").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func addLoyaltyPoints(tx *gorm.DB, clientID uint, points int) error {
	result := tx.Model(&Client{}).
		Where("id = ?", clientID).
		Updates(map[string]any{
			"points_fidelite": gorm.Expr("COALESCE(points_fidelite, 0) + ?", points),
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}
