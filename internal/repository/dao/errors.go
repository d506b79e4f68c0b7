package dao

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrHostNotFound        = errors.New("host not found")
	ErrSiteNotFound        = errors.New("site not found")
	ErrLocationNotFound    = errors.New("location not found")
	ErrTagNotFound         = errors.New("tag not found")
	ErrCategoryNotFound    = errors.New("service category not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrFormNotFound        = errors.New("form not found")
	ErrMenuNotFound        = errors.New("menu not found")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrClientNotFound      = errors.New("client not found")

	// ErrStaleWrite is returned when a versioned row changed since it was read.
	ErrStaleWrite = errors.New("record was modified by another request")
)

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
