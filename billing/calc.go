package billing

import (
	"math"

	"jewelbill/models"
)

// Calculator holds the configured GST component rate (CGST and SGST are each
// charged at this rate on the invoice subtotal).
type Calculator struct {
	ComponentRate float64
}

func NewCalculator(componentRate float64) *Calculator {
	return &Calculator{ComponentRate: componentRate}
}

// Totals is the aggregate view of one invoice's money columns.
// SubTotal, CGST and SGST keep 2-decimal precision; GrandTotal is rounded
// off to whole rupees as on the printed bill.
type Totals struct {
	SubTotal   float64
	CGST       float64
	SGST       float64
	GrandTotal float64
	Balance    float64
}

// Round2 rounds to 2 decimal places, half up.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// Round3 rounds to 3 decimal places, half up. Weights are kept in grams to
// milligram precision.
func Round3(v float64) float64 {
	return math.Floor(v*1000+0.5) / 1000
}

// ComputeItem fills the derived fields of one line item in place.
// Net weight never goes negative: a less-weight larger than the gross weight
// clamps to zero instead of producing a negative row.
func (c *Calculator) ComputeItem(it *models.LineItem) {
	net := it.GrossWeight - it.LessWeight
	if net < 0 {
		net = 0
	}
	it.NetWeight = Round3(net)
	it.LineTotal = Round2(it.NetWeight*it.Rate + it.MakingCharges + it.HallmarkCharges)
}

// Aggregate computes every item and the invoice totals from scratch.
// Rounding is applied once per figure, never per addition, so recomputing
// from the same items always yields identical results.
func (c *Calculator) Aggregate(items []models.LineItem, received float64) Totals {
	var sum float64
	for i := range items {
		c.ComputeItem(&items[i])
		sum += items[i].LineTotal
	}

	t := Totals{}
	t.SubTotal = Round2(sum)
	t.CGST = Round2(t.SubTotal * c.ComponentRate)
	t.SGST = Round2(t.SubTotal * c.ComponentRate)
	t.GrandTotal = math.Round(t.SubTotal + t.CGST + t.SGST)
	t.Balance = Round2(t.GrandTotal - received) // negative means credit
	return t
}

// Apply writes freshly computed totals onto the invoice. Client-submitted
// totals are never stored.
func (c *Calculator) Apply(inv *models.Invoice) {
	t := c.Aggregate(inv.Items, inv.Received)
	inv.SubTotal = t.SubTotal
	inv.CGST = t.CGST
	inv.SGST = t.SGST
	inv.GrandTotal = t.GrandTotal
	inv.Balance = t.Balance
}
