package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceCategory struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	HostID      uint   `json:"hostId"`
}

type Service struct {
	ID                uint                `json:"id"`
	Name              string              `json:"name"`
	Description       string              `json:"description,omitempty"`
	HostID            uint                `json:"hostId"`
	CategoryID        *uint               `json:"categoryId,omitempty"`
	Price             decimal.NullDecimal `json:"price"`
	Currency          string              `json:"currency,omitempty"`
	FormID            *uint               `json:"formId,omitempty"`
	TargetLocationIDs []uint              `json:"targetLocationIds"`
	LoginRequired     bool                `json:"loginRequired"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

// AvailableAt reports whether the service is offered at the location.
// An empty target list means every location of the host.
func (s Service) AvailableAt(locationID uint) bool {
	if len(s.TargetLocationIDs) == 0 {
		return true
	}
	for _, id := range s.TargetLocationIDs {
		if id == locationID {
			return true
		}
	}
	return false
}

type MenuCard struct {
	ID         uint           `json:"id"`
	HostID     uint           `json:"hostId"`
	Name       string         `json:"name"`
	Categories []MenuCategory `json:"categories"`
}

type MenuCategory struct {
	ID         uint       `json:"id"`
	MenuCardID uint       `json:"menuCardId"`
	Name       string     `json:"name"`
	Items      []MenuItem `json:"items"`
}

type MenuItem struct {
	ID           uint            `json:"id"`
	CategoryID   uint            `json:"categoryId"`
	HostID       uint            `json:"hostId"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Configurable bool            `json:"configurable"`
	OptionGroups []OptionGroup   `json:"optionGroups,omitempty"`
}

type OptionGroup struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Multiple bool     `json:"multiple"`
	Options  []Option `json:"options"`
}

type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product is a storefront article sold through the /api/products catalog.
type Product struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	InStock     bool            `json:"inStock"`
	CreatedAt   time.Time       `json:"createdAt"`
}
