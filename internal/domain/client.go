package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ClientType string

const (
	ClientHeberge  ClientType = "heberge"
	ClientPassager ClientType = "passager"
)

func ParseClientType(s string) (ClientType, error) {
	switch t := ClientType(s); t {
	case ClientHeberge, ClientPassager:
		return t, nil
	case "":
		return ClientPassager, nil
	}
	return "", fmt.Errorf("invalid client type %q", s)
}

// Client is a host-scoped customer profile. It is distinct from the
// platform-wide User and only optionally linked to one.
type Client struct {
	ID             uint                `json:"id"`
	HostID         uint                `json:"hostId"`
	Name           string              `json:"nom"`
	Email          string              `json:"email,omitempty"`
	Type           ClientType          `json:"type"`
	Credit         decimal.NullDecimal `json:"credit"`
	PointsFidelite *int                `json:"pointsFidelite,omitempty"`
	UserID         *uint               `json:"userId,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

func (c Client) Points() int {
	if c.PointsFidelite == nil {
		return 0
	}
	return *c.PointsFidelite
}

func (c *Client) AddLoyaltyPoints(points int) {
	total := c.Points() + points
	c.PointsFidelite = &total
}
