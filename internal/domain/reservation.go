package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type ReservationType string

const (
	ReservationRoom  ReservationType = "Chambre"
	ReservationTable ReservationType = "Table"
)

func ParseReservationType(s string) (ReservationType, error) {
	switch t := ReservationType(s); t {
	case ReservationRoom, ReservationTable:
		return t, nil
	}
	return "", fmt.Errorf("%w: reservation type %q", ErrInvalidLocation, s)
}

type ReservationStatus string

const (
	ReservationPending    ReservationStatus = "pending"
	ReservationConfirmed  ReservationStatus = "confirmed"
	ReservationCheckedIn  ReservationStatus = "checked-in"
	ReservationCheckedOut ReservationStatus = "checked-out"
	ReservationCancelled  ReservationStatus = "cancelled"
)

// Check-out is reachable from every non-terminal status because the public
// checkout page accepts any reservation that is not already closed.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:    {ReservationConfirmed, ReservationCheckedOut, ReservationCancelled},
	ReservationConfirmed:  {ReservationCheckedIn, ReservationCheckedOut, ReservationCancelled},
	ReservationCheckedIn:  {ReservationCheckedOut, ReservationCancelled},
	ReservationCheckedOut: nil,
	ReservationCancelled:  nil,
}

func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	if _, ok := reservationTransitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationCheckedOut || s == ReservationCancelled
}

func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type CheckinStatus string

const (
	CheckinNone      CheckinStatus = ""
	CheckinSubmitted CheckinStatus = "submitted"
	CheckinCompleted CheckinStatus = "completed"
)

type Reservation struct {
	ID                  uint                `json:"id"`
	HostID              uint                `json:"hostId"`
	LocationID          uint                `json:"locationId"`
	Type                ReservationType     `json:"type"`
	ClientName          string              `json:"clientName,omitempty"`
	ClientID            *uint               `json:"clientId,omitempty"`
	DateArrivee         time.Time           `json:"dateArrivee"`
	DateDepart          *time.Time          `json:"dateDepart,omitempty"`
	Status              ReservationStatus   `json:"status"`
	NombrePersonnes     int                 `json:"nombrePersonnes"`
	PrixTotal           decimal.NullDecimal `json:"prixTotal"`
	MontantPaye         decimal.NullDecimal `json:"montantPaye"`
	SoldeDu             decimal.NullDecimal `json:"soldeDu"`
	Currency            string              `json:"currency,omitempty"`
	OnlineCheckinData   FormAnswers         `json:"onlineCheckinData,omitempty"`
	OnlineCheckinStatus CheckinStatus       `json:"onlineCheckinStatus,omitempty"`
	CheckoutNotes       string              `json:"checkoutNotes,omitempty"`
	CheckedOutAt        *time.Time          `json:"checkedOutAt,omitempty"`
	LoyaltyPointsEarned int                 `json:"loyaltyPointsEarned"`
	Version             uint                `json:"version"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// Validate checks the date rules: rooms need a departure after the arrival,
// tables are single events and carry no departure.
func (r *Reservation) Validate() error {
	switch r.Type {
	case ReservationRoom:
		if r.DateDepart == nil || !r.DateDepart.After(r.DateArrivee) {
			return ErrInvalidStayDates
		}
	case ReservationTable:
		r.DateDepart = nil
	default:
		return fmt.Errorf("%w: reservation type %q", ErrInvalidLocation, r.Type)
	}
	return nil
}

func (r Reservation) Nights() int {
	if r.Type != ReservationRoom || r.DateDepart == nil {
		return 0
	}
	return int(math.Ceil(r.DateDepart.Sub(r.DateArrivee).Hours() / 24))
}

func (r *Reservation) transition(next ReservationStatus) error {
	if !r.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: reservation %d %s -> %s", ErrInvalidTransition, r.ID, r.Status, next)
	}
	r.Status = next
	return nil
}

// Confirm accepts a pending reservation.
func (r *Reservation) Confirm() error { return r.transition(ReservationConfirmed) }

// CheckIn requires a confirmed reservation. A submitted online check-in is
// marked completed.
func (r *Reservation) CheckIn() error {
	if err := r.transition(ReservationCheckedIn); err != nil {
		return err
	}
	if r.OnlineCheckinStatus == CheckinSubmitted {
		r.OnlineCheckinStatus = CheckinCompleted
	}
	return nil
}

// CheckOut closes any non-terminal reservation and stamps the checkout.
func (r *Reservation) CheckOut(notes string, at time.Time) error {
	if err := r.transition(ReservationCheckedOut); err != nil {
		return err
	}
	r.CheckoutNotes = notes
	r.CheckedOutAt = &at
	return nil
}

// Cancel is allowed from any non-terminal status.
func (r *Reservation) Cancel() error { return r.transition(ReservationCancelled) }

func (r *Reservation) ApplyStatus(target ReservationStatus, notes string, at time.Time) error {
	switch target {
	case ReservationConfirmed:
		return r.Confirm()
	case ReservationCheckedIn:
		return r.CheckIn()
	case ReservationCheckedOut:
		return r.CheckOut(notes, at)
	case ReservationCancelled:
		return r.Cancel()
	}
	return fmt.Errorf("%w: cannot move a reservation to %q", ErrInvalidTransition, target)
}

// SubmitOnlineCheckin stores the guest's pre-arrival data. It is only
// accepted before the guest is checked in.
func (r *Reservation) SubmitOnlineCheckin(data FormAnswers) error {
	if r.Status != ReservationPending && r.Status != ReservationConfirmed {
		return fmt.Errorf("%w: online check-in for a %s reservation", ErrInvalidTransition, r.Status)
	}
	r.OnlineCheckinData = data
	r.OnlineCheckinStatus = CheckinSubmitted
	return nil
}

func (r *Reservation) RefreshBalance() {
	r.SoldeDu = BalanceDue(r.PrixTotal, r.MontantPaye)
}

func (r *Reservation) RecordPayment(amount decimal.Decimal) error {
	if r.Status == ReservationCancelled {
		return fmt.Errorf("%w: reservation %d is cancelled", ErrInvalidTransition, r.ID)
	}

	paid, err := addPaid(r.MontantPaye, amount)
	if err != nil {
		return err
	}
	r.MontantPaye = paid
	r.RefreshBalance()
	return nil
}
