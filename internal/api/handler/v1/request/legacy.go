package request

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/shopspring/decimal"
)

var (
	errProductFields   = errors.New("Name, price and category are required")
	errNegativePrice   = errors.New("Price must be a positive number")
	errOrderFields     = errors.New("userId and a non-empty items array are required")
	errOrderItem       = errors.New("Each item needs a price >= 0 and a quantity >= 1")
	errHostFields      = errors.New("Name and email are required")
	errUserFields      = errors.New("Email and password are required")
	errCredentials     = errors.New("Email and password are required")
	errInvalidEmail    = errors.New("Invalid email address")
	errInvalidUserRole = errors.New("Role must be admin, host or client")
)

// The /api routes answer with one plain sentence per failure, so these
// Validate methods return fixed messages instead of ozzo's field map.

type LegacyProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    string           `json:"category"`
	InStock     *bool            `json:"inStock"`
}

func (req *LegacyProductRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Price, validation.NotNil),
		validation.Field(&req.Category, validation.Required),
	)
	if err != nil {
		return errProductFields
	}
	if req.Price.IsNegative() {
		return errNegativePrice
	}
	return nil
}

type LegacyOrderItem struct {
	ProductID *uint           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type LegacyOrderRequest struct {
	UserID uint              `json:"userId"`
	HostID uint              `json:"hostId"`
	Items  []LegacyOrderItem `json:"items"`
	Notes  string            `json:"notes"`
}

func (req *LegacyOrderRequest) Validate() error {
	if req.UserID == 0 || len(req.Items) == 0 {
		return errOrderFields
	}
	for _, item := range req.Items {
		if item.Quantity < 1 || item.Price.IsNegative() {
			return errOrderItem
		}
	}
	return nil
}

type LegacyHostRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
	Language string `json:"language"`
}

func (req *LegacyHostRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required),
	)
	if err != nil {
		return errHostFields
	}
	if is.Email.Validate(req.Email) != nil {
		return errInvalidEmail
	}
	return nil
}

type LegacyUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	HostID   *uint  `json:"hostId"`
}

func (req *LegacyUserRequest) Validate() error {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return errUserFields
	}
	if is.Email.Validate(req.Email) != nil {
		return errInvalidEmail
	}
	if err := validPassword(req.Password); err != nil {
		return err
	}
	switch req.Role {
	case "", "admin", "host", "client":
		return nil
	}
	return errInvalidUserRole
}

type LegacyLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LegacyLoginRequest) Validate() error {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return errCredentials
	}
	return nil
}
