package dao

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Site struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	HostID    uint   `gorm:"not null;index"`
	Logo      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Location struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Type         string `gorm:"not null"` // "Chambre", "Table" or "Site"
	HostID       uint   `gorm:"not null;index"`
	GlobalSiteID uint   `gorm:"index"`
	ParentID     *uint
	Capacity     int
	Price        decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	PriceMode    string
	TagIDs       datatypes.JSON
	MenuID       *uint
	RefID        string `gorm:"not null;uniqueIndex"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Tag struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"not null"`
	HostID uint   `gorm:"not null;index"`
}

type VenueDAO struct {
	db *gorm.DB
}

func NewVenueDAO(db *gorm.DB) *VenueDAO {
	return &VenueDAO{db: db}
}

func (d *VenueDAO) InsertSite(ctx context.Context, site Site) (Site, error) {
	if err := d.db.WithContext(ctx).Create(&site).Error; err != nil {
		return Site{}, err
	}
	return site, nil
}

func (d *VenueDAO) FindSitesByHost(ctx context.Context, hostID uint) ([]Site, error) {
	var sites []Site
	if err := d.db.WithContext(ctx).Where("host_id = ?", hostID).Order("id").Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

func (d *VenueDAO) FindSiteByID(ctx context.Context, id uint) (Site, error) {
	var site Site
	if err := d.db.WithContext(ctx).First(&site, id).Error; err != nil {
		return Site{}, notFound(err, ErrSiteNotFound)
	}
	return site, nil
}

func (d *VenueDAO) InsertLocation(ctx context.Context, loc Location) (Location, error) {
	if err := d.db.WithContext(ctx).Create(&loc).Error; err != nil {
		return Location{}, err
	}
	return loc, nil
}

func (d *VenueDAO) FindLocationByID(ctx context.Context, id uint) (Location, error) {
	var loc Location
	if err := d.db.WithContext(ctx).First(&loc, id).Error; err != nil {
		return Location{}, notFound(err, ErrLocationNotFound)
	}
	return loc, nil
}

func (d *VenueDAO) FindLocationByRef(ctx context.Context, hostID uint, refID string) (Location, error) {
	var loc Location
	err := d.db.WithContext(ctx).Where("host_id = ? AND ref_id = ?", hostID, refID).First(&loc).Error
	if err != nil {
		return Location{}, notFound(err, ErrLocationNotFound)
	}
	return loc, nil
}

func (d *VenueDAO) FindLocationsByHost(ctx context.Context, hostID uint) ([]Location, error) {
	var locs []Location
	if err := d.db.WithContext(ctx).Where("host_id = ?", hostID).Order("id").Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

func (d *VenueDAO) FindLocationsByIDs(ctx context.Context, ids []uint) ([]Location, error) {
	var locs []Location
	if len(ids) == 0 {
		return locs, nil
	}
	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

func (d *VenueDAO) InsertTag(ctx context.Context, tag Tag) (Tag, error) {
	if err := d.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return Tag{}, err
	}
	return tag, nil
}

func (d *VenueDAO) FindTagsByHost(ctx context.Context, hostID uint) ([]Tag, error) {
	var tags []Tag
	if err := d.db.WithContext(ctx).Where("host_id = ?", hostID).Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// DeleteTag removes the tag and strips its id from every location of the
// host in the same transaction. It returns the number of locations touched.
func (d *VenueDAO) DeleteTag(ctx context.Context, hostID, tagID uint) (int, error) {
	touched := 0
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND host_id = ?", tagID, hostID).Delete(&Tag{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTagNotFound
		}

		var locs []Location
		if err := tx.Where("host_id = ?", hostID).Find(&locs).Error; err != nil {
			return err
		}

		for _, loc := range locs {
			ids, err := DecodeIDs(loc.TagIDs)
			if err != nil {
				return err
			}

			kept := ids[:0]
			for _, id := range ids {
				if id != tagID {
					kept = append(kept, id)
				}
			}
			if len(kept) == len(ids) {
				continue
			}

			raw, err := EncodeIDs(kept)
			if err != nil {
				return err
			}
			if err := tx.Model(&Location{ID: loc.ID}).Update("tag_ids", raw).Error; err != nil {
				return err
			}
			touched++
		}

		return nil
	})

	return touched, err
}

func EncodeIDs(ids []uint) (datatypes.JSON, error) {
	if ids == nil {
		ids = []uint{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func DecodeIDs(raw datatypes.JSON) ([]uint, error) {
	ids := []uint{}
	if len(raw) == 0 {
		return ids, nil
	}
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
