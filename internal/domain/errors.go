package domain

import "errors"

var (
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNoReservationType  = errors.New("at least one of room or table reservations must stay enabled")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidStayDates   = errors.New("departure date must be after arrival date")
	ErrInvalidLocation    = errors.New("invalid location type")
	ErrEmptyOrder         = errors.New("order must reference a service, a menu item or at least one item")
	ErrInvalidFormAnswers = errors.New("invalid form answers")
)
