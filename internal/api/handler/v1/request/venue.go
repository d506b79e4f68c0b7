package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/orderspot/connecthost-api/internal/domain"
)

type CreateSiteRequest struct {
	Name  string `json:"name"`
	Logo  string `json:"logo"`
	Color string `json:"color"`
}

func (req *CreateSiteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
	)
}

type CreateLocationRequest struct {
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	GlobalSiteID uint             `json:"globalSiteId"`
	ParentID     *uint            `json:"parentId"`
	Capacity     int              `json:"capacity"`
	Price        *decimal.Decimal `json:"price"`
	PriceMode    string           `json:"priceMode"`
	TagIDs       []uint           `json:"tagIds"`
	MenuID       *uint            `json:"menuId"`
}

func (req *CreateLocationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Type, validation.Required, validation.In(
			string(domain.LocationRoom), string(domain.LocationTable), string(domain.LocationSite),
		)),
		validation.Field(&req.GlobalSiteID, validation.Required),
		validation.Field(&req.Capacity, validation.Min(0)),
		validation.Field(&req.Price, validation.By(nonNegative)),
		validation.Field(&req.PriceMode, validation.In(string(domain.PricePerNight), string(domain.PriceFixed))),
	)
}

func (req *CreateLocationRequest) ToDomain(hostID uint) domain.Location {
	return domain.Location{
		Name:         req.Name,
		Type:         domain.LocationType(req.Type),
		HostID:       hostID,
		GlobalSiteID: req.GlobalSiteID,
		ParentID:     req.ParentID,
		Capacity:     req.Capacity,
		Price:        nullable(req.Price),
		PriceMode:    domain.PriceMode(req.PriceMode),
		TagIDs:       req.TagIDs,
		MenuID:       req.MenuID,
	}
}

type CreateTagRequest struct {
	Name string `json:"name"`
}

func (req *CreateTagRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 60)),
	)
}
