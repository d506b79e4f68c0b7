package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/orderspot/connecthost-api/internal/domain"
)

var errAmount = errors.New("amount must be greater than zero")

// StatusRequest moves an order or a reservation to Status. When Version is
// set, the change is refused if the record was modified in between.
type StatusRequest struct {
	Status  string `json:"status"`
	Version *uint  `json:"version"`
	Notes   string `json:"notes"`
}

func (req *StatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required),
	)
}

type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
}

func (req *PaymentRequest) Validate() error {
	if req.Amount.Sign() <= 0 {
		return errAmount
	}
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Method, validation.Length(0, 40)),
	)
}

type ServiceOrderRequest struct {
	Answers   domain.FormAnswers `json:"answers"`
	ClientNom string             `json:"clientNom"`
	Notes     string             `json:"notes"`
}

func (req *ServiceOrderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ClientNom, validation.Length(0, 120)),
	)
}

type MenuOrderRequest struct {
	Quantity  int                `json:"quantity"`
	Options   domain.FormAnswers `json:"options"`
	ClientNom string             `json:"clientNom"`
	Notes     string             `json:"notes"`
}

func (req *MenuOrderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Quantity, validation.Min(0)),
	)
}
