package contract

import "github.com/tashfin/contractbot/money"

// Derived figures follow the "round at input, multiply afterward" rule:
// unit amounts were already rounded up when parsed, so products and sums
// of them need no re-rounding.

// CostTotal is the cost of goods across the whole quantity.
func (m MurabahaFields) CostTotal() money.Money {
	return m.UnitCost.Mul(m.qty())
}

// MarkupTotal is the markup across the whole quantity.
func (m MurabahaFields) MarkupTotal() money.Money {
	return m.UnitMarkup.Mul(m.qty())
}

// PriceTotal is the full contract price: cost of goods plus markup.
func (m MurabahaFields) PriceTotal() money.Money {
	return m.CostTotal() + m.MarkupTotal()
}

// RemainingDebt is the principal left after the advance payment, floored
// at zero: an advance above the price never produces a negative debt.
func (m MurabahaFields) RemainingDebt() money.Money {
	debt := m.PriceTotal() - m.Advance
	if debt < 0 {
		return 0
	}
	return debt
}

func (m MurabahaFields) qty() int {
	if m.Quantity <= 0 {
		return 1
	}
	return m.Quantity
}

// AutoTotal is unit price times quantity, the figure offered before the
// manual override choice.
func (i IstisnaFields) AutoTotal() money.Money {
	qty := i.Quantity
	if qty <= 0 {
		qty = 1
	}
	return i.UnitPrice.Mul(qty)
}
