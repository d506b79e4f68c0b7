package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/shopspring/decimal"

	"github.com/orderspot/connecthost-api/internal/domain"
)

type CreateHostRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
	Language string `json:"language"`
}

func (req *CreateHostRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Currency, validation.Length(3, 3)),
	)
}

type LoyaltyRequest struct {
	Enabled       bool            `json:"enabled"`
	PointsPerUnit decimal.Decimal `json:"pointsPerUnit"`
	Rounding      string          `json:"rounding"`
}

// UpdateSettingsRequest leaves the loyalty settings untouched when Loyalty
// is omitted.
type UpdateSettingsRequest struct {
	Reservation domain.ReservationSettings `json:"reservationSettings"`
	Loyalty     *LoyaltyRequest            `json:"loyaltySettings"`
}

func (req *UpdateSettingsRequest) Validate() error {
	if req.Loyalty == nil {
		return nil
	}
	return validation.ValidateStruct(
		req.Loyalty,
		validation.Field(&req.Loyalty.Rounding, validation.In(
			string(domain.RoundFloor), string(domain.RoundNearest), string(domain.RoundCeil),
		)),
		validation.Field(&req.Loyalty.PointsPerUnit, validation.By(nonNegative)),
	)
}

func (req *LoyaltyRequest) ToDomain() domain.LoyaltySettings {
	return domain.LoyaltySettings{
		Enabled:       req.Enabled,
		PointsPerUnit: req.PointsPerUnit,
		Rounding:      domain.Rounding(req.Rounding),
	}
}
