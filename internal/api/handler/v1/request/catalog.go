package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/orderspot/connecthost-api/internal/domain"
)

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (req *CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
	)
}

type CreateServiceRequest struct {
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	CategoryID        *uint            `json:"categoryId"`
	Price             *decimal.Decimal `json:"price"`
	Currency          string           `json:"currency"`
	TargetLocationIDs []uint           `json:"targetLocationIds"`
	LoginRequired     bool             `json:"loginRequired"`
}

func (req *CreateServiceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Price, validation.By(nonNegative)),
		validation.Field(&req.Currency, validation.Length(3, 3)),
	)
}

func (req *CreateServiceRequest) ToDomain(hostID uint) domain.Service {
	return domain.Service{
		Name:              req.Name,
		Description:       req.Description,
		HostID:            hostID,
		CategoryID:        req.CategoryID,
		Price:             nullable(req.Price),
		Currency:          req.Currency,
		TargetLocationIDs: req.TargetLocationIDs,
		LoginRequired:     req.LoginRequired,
	}
}

type SaveFormRequest struct {
	Name   string             `json:"name"`
	Fields []domain.FormField `json:"fields"`
}

func (req *SaveFormRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Fields, validation.Required),
	)
}

type CreateMenuRequest struct {
	Name       string                `json:"name"`
	Categories []domain.MenuCategory `json:"categories"`
}

func (req *CreateMenuRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
	)
}
