package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReservationSettings struct {
	EnableRoomReservations  bool   `json:"enableRoomReservations"`
	EnableTableReservations bool   `json:"enableTableReservations"`
	HeroImageURL            string `json:"heroImageUrl,omitempty"`
}

func (s ReservationSettings) Validate() error {
	if !s.EnableRoomReservations && !s.EnableTableReservations {
		return ErrNoReservationType
	}
	return nil
}

func (s ReservationSettings) Allows(t ReservationType) bool {
	switch t {
	case ReservationRoom:
		return s.EnableRoomReservations
	case ReservationTable:
		return s.EnableTableReservations
	}
	return false
}

type Rounding string

const (
	RoundFloor   Rounding = "floor"
	RoundNearest Rounding = "round"
	RoundCeil    Rounding = "ceil"
)

// LoyaltySettings decides how many points a checked-out stay earns.
// Points = amount × PointsPerUnit, rounded with Rounding (floor when unset).
type LoyaltySettings struct {
	Enabled       bool            `json:"enabled"`
	PointsPerUnit decimal.Decimal `json:"pointsPerUnit"`
	Rounding      Rounding        `json:"rounding"`
}

func DefaultLoyaltySettings() LoyaltySettings {
	return LoyaltySettings{
		Enabled:       true,
		PointsPerUnit: decimal.NewFromInt(1),
		Rounding:      RoundFloor,
	}
}

func (l LoyaltySettings) PointsFor(amount decimal.Decimal) int {
	if !l.Enabled || amount.Sign() <= 0 || l.PointsPerUnit.Sign() <= 0 {
		return 0
	}

	raw := amount.Mul(l.PointsPerUnit)
	switch l.Rounding {
	case RoundNearest:
		raw = raw.Round(0)
	case RoundCeil:
		raw = raw.Ceil()
	default:
		raw = raw.Floor()
	}

	return int(raw.IntPart())
}

type Host struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Currency    string              `json:"currency,omitempty"`
	Language    string              `json:"language,omitempty"`
	Reservation ReservationSettings `json:"reservationSettings"`
	Loyalty     LoyaltySettings     `json:"loyaltySettings"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ApplySettings replaces the reservation and loyalty settings only when the
// new reservation settings are valid, so a rejected save keeps the old ones.
func (h *Host) ApplySettings(res ReservationSettings, loyalty LoyaltySettings) error {
	if err := res.Validate(); err != nil {
		return err
	}

	h.Reservation = res
	h.Loyalty = loyalty
	return nil
}
