package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// HostPosition is a client's net position at one host: what they spent on
// confirmed or completed orders minus the credit they hold there.
type HostPosition struct {
	HostID        uint            `json:"hostId"`
	HostName      string          `json:"hostName,omitempty"`
	Currency      string          `json:"currency"`
	TotalSpent    decimal.Decimal `json:"totalSpentAtHost"`
	Credit        decimal.Decimal `json:"credit"`
	NetDue        decimal.Decimal `json:"netDue"`
	LoyaltyPoints int             `json:"loyaltyPoints"`
}

type ClientSummary struct {
	TotalCredit        decimal.Decimal `json:"totalCredit"`
	TotalLoyaltyPoints int             `json:"totalLoyaltyPoints"`
	Hosts              []HostPosition  `json:"hosts"`
}

func TotalCredit(clients []Client) decimal.Decimal {
	total := decimal.Zero
	for _, c := range clients {
		total = total.Add(OrZero(c.Credit))
	}
	return total
}

func TotalLoyaltyPoints(clients []Client) int {
	total := 0
	for _, c := range clients {
		total += c.Points()
	}
	return total
}

// TotalSpentAtHost sums prixTotal over the host's confirmed and completed
// orders. Missing totals count as zero.
func TotalSpentAtHost(orders []Order, hostID uint) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.HostID != hostID || !o.Status.CountsTowardSpend() {
			continue
		}
		total = total.Add(OrZero(o.PrixTotal))
	}
	return total
}

// NetDue may be negative when the credit exceeds the spend.
func NetDue(totalSpent, credit decimal.Decimal) decimal.Decimal {
	return totalSpent.Sub(credit)
}

// Summarize builds the per-host positions of one user from their client
// records and orders. Every host with a client record or a counted order gets
// a position; hosts are listed by id.
func Summarize(clients []Client, orders []Order, hosts map[uint]Host) ClientSummary {
	positions := make(map[uint]*HostPosition)
	position := func(hostID uint) *HostPosition {
		p, ok := positions[hostID]
		if !ok {
			h := hosts[hostID]
			p = &HostPosition{
				HostID:     hostID,
				HostName:   h.Name,
				Currency:   CurrencySymbol("", h.Currency),
				TotalSpent: decimal.Zero,
				Credit:     decimal.Zero,
			}
			positions[hostID] = p
		}
		return p
	}

	for _, c := range clients {
		p := position(c.HostID)
		p.Credit = p.Credit.Add(OrZero(c.Credit))
		p.LoyaltyPoints += c.Points()
	}
	for _, o := range orders {
		if o.Status.CountsTowardSpend() {
			position(o.HostID)
		}
	}

	summary := ClientSummary{
		TotalCredit:        TotalCredit(clients),
		TotalLoyaltyPoints: TotalLoyaltyPoints(clients),
		Hosts:              make([]HostPosition, 0, len(positions)),
	}
	for hostID, p := range positions {
		p.TotalSpent = TotalSpentAtHost(orders, hostID)
		p.NetDue = NetDue(p.TotalSpent, p.Credit)
		summary.Hosts = append(summary.Hosts, *p)
	}
	sort.Slice(summary.Hosts, func(i, j int) bool {
		return summary.Hosts[i].HostID < summary.Hosts[j].HostID
	})

	return summary
}
