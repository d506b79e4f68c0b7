package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReservationSettings struct {
	EnableRooms  bool `gorm:"not null"`
	EnableTables bool `gorm:"not null"`
	HeroImageURL string
}

type LoyaltySettings struct {
	Enabled       bool            `gorm:"not null"`
	PointsPerUnit decimal.Decimal `gorm:"type:numeric(10,4);not null"`
	Rounding      string          `gorm:"not null;default:floor"`
}

type Host struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Email       string `gorm:"not null"`
	Currency    string
	Language    string
	Reservation ReservationSettings `gorm:"embedded;embeddedPrefix:res_"`
	Loyalty     LoyaltySettings     `gorm:"embedded;embeddedPrefix:loyalty_"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type HostDAO struct {
	db *gorm.DB
}

func NewHostDAO(db *gorm.DB) *HostDAO {
	return &HostDAO{db: db}
}

func (d *HostDAO) Insert(ctx context.Context, host Host) (Host, error) {
	if result := d.db.WithContext(ctx).Create(&host); result.Error != nil {
		return Host{}, result.Error
	}
	return host, nil
}

func (d *HostDAO) FindByID(ctx context.Context, id uint) (Host, error) {
	var host Host

	result := d.db.WithContext(ctx).First(&host, id)
	if result.Error != nil {
		return Host{}, notFound(result.Error, ErrHostNotFound)
	}

	return host, nil
}

func (d *HostDAO) FindByIDs(ctx context.Context, ids []uint) ([]Host, error) {
	var hosts []Host
	if len(ids) == 0 {
		return hosts, nil
	}

	if result := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&hosts); result.Error != nil {
		return nil, result.Error
	}
	return hosts, nil
}

func (d *HostDAO) FindAll(ctx context.Context) ([]Host, error) {
	var hosts []Host

	if result := d.db.WithContext(ctx).Order("id").Find(&hosts); result.Error != nil {
		return nil, result.Error
	}
	return hosts, nil
}

func (d *HostDAO) Count(ctx context.Context) (int64, error) {
	var n int64
	err := d.db.WithContext(ctx).Model(&Host{}).Count(&n).Error
	return n, err
}

// UpdateSettings writes both settings groups. Select is needed so that false
// toggles are written rather than skipped as zero values.
func (d *HostDAO) UpdateSettings(ctx context.Context, id uint, res ReservationSettings, loyalty LoyaltySettings) (Host, error) {
	result := d.db.WithContext(ctx).Model(&Host{ID: id}).
		Select("res_enable_rooms", "res_enable_tables", "res_hero_image_url",
			"loyalty_enabled", "loyalty_points_per_unit", "loyalty_rounding").
		Updates(Host{Reservation: res, Loyalty: loyalty})
	if result.Error != nil {
		return Host{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Host{}, ErrHostNotFound
	}

	return d.FindByID(ctx, id)
}

// DeleteCascade removes a host with everything it owns in one transaction:
// sites, locations, tags, catalog, forms, menus, client records and the
// host-role users bound to it. Orders, reservations and payments are kept
// for accounting and keep their host id.
func (d *HostDAO) DeleteCascade(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var host Host
		if err := tx.First(&host, id).Error; err != nil {
			return notFound(err, ErrHostNotFound)
		}

		var menuIDs []uint
		if err := tx.Model(&MenuCard{}).Where("host_id = ?", id).Pluck("id", &menuIDs).Error; err != nil {
			return err
		}
		if len(menuIDs) > 0 {
			var categoryIDs []uint
			if err := tx.Model(&MenuCategory{}).Where("menu_card_id IN ?", menuIDs).Pluck("id", &categoryIDs).Error; err != nil {
				return err
			}
			if len(categoryIDs) > 0 {
				if err := tx.Where("category_id IN ?", categoryIDs).Delete(&MenuItem{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("menu_card_id IN ?", menuIDs).Delete(&MenuCategory{}).Error; err != nil {
				return err
			}
		}

		owned := []any{
			&MenuCard{}, &CustomForm{}, &Service{}, &ServiceCategory{},
			&Tag{}, &Location{}, &Site{}, &Client{},
		}
		for _, model := range owned {
			if err := tx.Where("host_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("host_id = ? AND role = ?", id, "host").Delete(&User{}).Error; err != nil {
			return err
		}

		return tx.Delete(&host).Error
	})
}
