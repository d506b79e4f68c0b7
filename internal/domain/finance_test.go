package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nullDec(s string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(s)) }

func intPtr(i int) *int { return &i }

func TestTotals_MissingValuesCountAsZero(t *testing.T) {
	clients := []Client{
		{HostID: 1, Credit: nullDec("10.50"), PointsFidelite: intPtr(40)},
		{HostID: 2},
		{HostID: 3, Credit: nullDec("4.50"), PointsFidelite: intPtr(2)},
	}

	assert.True(t, TotalCredit(clients).Equal(dec("15")))
	assert.Equal(t, 42, TotalLoyaltyPoints(clients))
}

func TestTotalSpentAtHost(t *testing.T) {
	orders := []Order{
		{HostID: 1, Status: OrderCompleted, PrixTotal: nullDec("20")},
		{HostID: 1, Status: OrderConfirmed, PrixTotal: nullDec("5.25")},
		{HostID: 1, Status: OrderPending, PrixTotal: nullDec("100")},
		{HostID: 1, Status: OrderCancelled, PrixTotal: nullDec("100")},
		{HostID: 1, Status: OrderCompleted},
		{HostID: 2, Status: OrderCompleted, PrixTotal: nullDec("7")},
	}

	assert.True(t, TotalSpentAtHost(orders, 1).Equal(dec("25.25")))
	assert.True(t, TotalSpentAtHost(orders, 2).Equal(dec("7")))
	assert.True(t, TotalSpentAtHost(orders, 3).IsZero())
}

func TestSummarize(t *testing.T) {
	hosts := map[uint]Host{
		1: {ID: 1, Name: "Hotel Azur", Currency: "EUR"},
		2: {ID: 2, Name: "Chez Paul"},
	}
	clients := []Client{
		{HostID: 1, Credit: nullDec("30"), PointsFidelite: intPtr(12)},
		{HostID: 2, Credit: nullDec("15")},
	}
	orders := []Order{
		{HostID: 1, Status: OrderCompleted, PrixTotal: nullDec("45.50")},
		{HostID: 1, Status: OrderPreparing, PrixTotal: nullDec("99")},
		{HostID: 3, Status: OrderConfirmed, PrixTotal: nullDec("8")},
	}

	summary := Summarize(clients, orders, hosts)

	assert.True(t, summary.TotalCredit.Equal(dec("45")))
	assert.Equal(t, 12, summary.TotalLoyaltyPoints)
	require.Len(t, summary.Hosts, 3)

	azur := summary.Hosts[0]
	assert.Equal(t, "Hotel Azur", azur.HostName)
	assert.Equal(t, "€", azur.Currency)
	assert.True(t, azur.TotalSpent.Equal(dec("45.50")))
	assert.True(t, azur.NetDue.Equal(dec("15.50")))
	assert.Equal(t, 12, azur.LoyaltyPoints)

	paul := summary.Hosts[1]
	assert.Equal(t, "$", paul.Currency)
	assert.True(t, paul.TotalSpent.IsZero())
	assert.True(t, paul.NetDue.Equal(dec("-15")), "no orders means netDue = -credit")

	unknown := summary.Hosts[2]
	assert.Equal(t, uint(3), unknown.HostID)
	assert.True(t, unknown.NetDue.Equal(dec("8")))
}
