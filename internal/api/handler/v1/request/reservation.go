package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/orderspot/connecthost-api/internal/domain"
)

type CreateReservationRequest struct {
	LocationID      uint             `json:"locationId"`
	ClientName      string           `json:"clientName"`
	ClientID        *uint            `json:"clientId"`
	DateArrivee     time.Time        `json:"dateArrivee"`
	DateDepart      *time.Time       `json:"dateDepart"`
	NombrePersonnes int              `json:"nombrePersonnes"`
	PrixTotal       *decimal.Decimal `json:"prixTotal"`
	Currency        string           `json:"currency"`
}

func (req *CreateReservationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.LocationID, validation.Required),
		validation.Field(&req.DateArrivee, validation.Required),
		validation.Field(&req.NombrePersonnes, validation.Min(1)),
		validation.Field(&req.PrixTotal, validation.By(nonNegative)),
		validation.Field(&req.Currency, validation.Length(3, 3)),
	)
}

func (req *CreateReservationRequest) PrixTotalValue() decimal.NullDecimal {
	return nullable(req.PrixTotal)
}

type CheckinRequest struct {
	Data domain.FormAnswers `json:"data"`
}

func (req *CheckinRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Data, validation.Required),
	)
}

type CheckoutRequest struct {
	Notes string `json:"notes"`
}

func (req *CheckoutRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Notes, validation.Length(0, 1000)),
	)
}
