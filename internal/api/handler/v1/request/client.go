package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/shopspring/decimal"

	"github.com/orderspot/connecthost-api/internal/domain"
)

type CreateClientRequest struct {
	Name   string           `json:"nom"`
	Email  string           `json:"email"`
	Type   string           `json:"type"`
	Credit *decimal.Decimal `json:"credit"`
	UserID *uint            `json:"userId"`
}

func (req *CreateClientRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Type, validation.In(string(domain.ClientHeberge), string(domain.ClientPassager))),
	)
}

func (req *CreateClientRequest) ToDomain(hostID uint) domain.Client {
	t, _ := domain.ParseClientType(req.Type)
	return domain.Client{
		HostID: hostID,
		Name:   req.Name,
		Email:  req.Email,
		Type:   t,
		Credit: nullable(req.Credit),
		UserID: req.UserID,
	}
}
