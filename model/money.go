package model

import "github.com/shopspring/decimal"

// Money is an immutable amount in a single ISO 4217 currency. Amounts carry
// two-decimal wire semantics, so they are kept as decimals rather than
// floats.
type Money struct {
	Value        decimal.Decimal `json:"value"`
	CurrencyCode string          `json:"currencyCode"`
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) Money {
	return Money{Value: decimal.Zero, CurrencyCode: currency}
}

// MulInt returns the amount multiplied by a line quantity.
func (m Money) MulInt(n int) Money {
	return Money{Value: m.Value.Mul(decimal.NewFromInt(int64(n))), CurrencyCode: m.CurrencyCode}
}

// Add returns the sum of two amounts. The receiver's currency wins when the
// receiver is non-zero; adding onto a zero amount adopts the operand's
// currency so that summing a line list starts from Zero cleanly.
func (m Money) Add(other Money) Money {
	currency := m.CurrencyCode
	if currency == "" {
		currency = other.CurrencyCode
	}
	return Money{Value: m.Value.Add(other.Value), CurrencyCode: currency}
}

// Equal reports whether both amount and currency match.
func (m Money) Equal(other Money) bool {
	return m.CurrencyCode == other.CurrencyCode && m.Value.Equal(other.Value)
}
