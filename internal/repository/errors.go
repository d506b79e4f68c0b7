package repository

import "github.com/orderspot/connecthost-api/internal/repository/dao"

var (
	ErrUserEmailExists     = dao.ErrUserEmailExists
	ErrUserNotFound        = dao.ErrUserNotFound
	ErrHostNotFound        = dao.ErrHostNotFound
	ErrSiteNotFound        = dao.ErrSiteNotFound
	ErrLocationNotFound    = dao.ErrLocationNotFound
	ErrTagNotFound         = dao.ErrTagNotFound
	ErrCategoryNotFound    = dao.ErrCategoryNotFound
	ErrServiceNotFound     = dao.ErrServiceNotFound
	ErrFormNotFound        = dao.ErrFormNotFound
	ErrMenuNotFound        = dao.ErrMenuNotFound
	ErrMenuItemNotFound    = dao.ErrMenuItemNotFound
	ErrProductNotFound     = dao.ErrProductNotFound
	ErrOrderNotFound       = dao.ErrOrderNotFound
	ErrReservationNotFound = dao.ErrReservationNotFound
	ErrClientNotFound      = dao.ErrClientNotFound
	ErrStaleWrite          = dao.ErrStaleWrite
)
