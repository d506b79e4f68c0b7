package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Site struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	HostID    uint      `json:"hostId"`
	Logo      string    `json:"logo,omitempty"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LocationType string

const (
	LocationRoom  LocationType = "Chambre"
	LocationTable LocationType = "Table"
	LocationSite  LocationType = "Site"
)

func ParseLocationType(s string) (LocationType, error) {
	switch t := LocationType(s); t {
	case LocationRoom, LocationTable, LocationSite:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLocation, s)
}

type PriceMode string

const (
	PricePerNight PriceMode = "per_night"
	PriceFixed    PriceMode = "fixed"
)

// Location is a room, table or zone of a site. RefID is the token printed in
// the QR code that leads clients to /client/{hostId}/{refId}.
type Location struct {
	ID           uint                `json:"id"`
	Name         string              `json:"name"`
	Type         LocationType        `json:"type"`
	HostID       uint                `json:"hostId"`
	GlobalSiteID uint                `json:"globalSiteId"`
	ParentID     *uint               `json:"parentId,omitempty"`
	Capacity     int                 `json:"capacity"`
	Price        decimal.NullDecimal `json:"price"`
	PriceMode    PriceMode           `json:"priceMode,omitempty"`
	TagIDs       []uint              `json:"tagIds"`
	MenuID       *uint               `json:"menuId,omitempty"`
	RefID        string              `json:"refId"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// StayPrice is the price of a reservation of this location. Per-night prices
// are multiplied by the number of nights, anything else is charged once.
func (l Location) StayPrice(nights int) decimal.NullDecimal {
	if !l.Price.Valid {
		return decimal.NullDecimal{}
	}
	if l.PriceMode == PricePerNight && nights > 0 {
		return decimal.NewNullDecimal(l.Price.Decimal.Mul(decimal.NewFromInt(int64(nights))))
	}
	return l.Price
}

func (l *Location) RemoveTag(tagID uint) bool {
	for i, id := range l.TagIDs {
		if id == tagID {
			l.TagIDs = append(l.TagIDs[:i], l.TagIDs[i+1:]...)
			return true
		}
	}
	return false
}

type Tag struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	HostID uint   `json:"hostId"`
}
