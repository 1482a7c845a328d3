package investmap

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DisplayFraction is the number of decimals every amount is displayed with.
const DisplayFraction = 2

// Money represents a monetary value: a price per unit, an investment or a
// profit. There is a single implicit currency, the one of the service.
type Money struct {
	value decimal.Decimal
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney reads an amount leniently, see parseDecimal.
func ParseMoney(s string) Money { return Money{value: parseDecimal(s)} }

// NewFormatter returns the display formatter for amounts: two decimals, a dot
// as decimal separator and commas grouping thousands. A known ISO currency
// code only adds its symbol.
func NewFormatter(code string) *money.Formatter {
	f := money.NewFormatter(DisplayFraction, ".", ",", "", "1")
	if code == "" {
		return f
	}
	if c := money.GetCurrency(code); c != nil {
		f.Grapheme = c.Grapheme
		f.Template = c.Template
	}
	return f
}

var plain = NewFormatter("")

// String returns the amount with two decimals and thousands separators.
func (m Money) String() string { return m.Format(plain) }

// Format renders the money with f, rounding to f.Fraction decimals first.
func (m Money) Format(f *money.Formatter) string {
	minor := m.value.Round(int32(f.Fraction)).Shift(int32(f.Fraction))
	if minor.BigInt().IsInt64() {
		return f.Format(minor.IntPart())
	}
	return formatLarge(m.value, f)
}

// formatLarge formats amounts whose minor units overflow int64, the same way
// f.Format does.
func formatLarge(d decimal.Decimal, f *money.Formatter) string {
	negative := d.IsNegative()
	digits := d.Abs().StringFixed(int32(f.Fraction))
	integer, fraction, _ := strings.Cut(digits, ".")

	var b strings.Builder
	for i, r := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteString(f.Thousand)
		}
		b.WriteRune(r)
	}
	if f.Fraction > 0 {
		b.WriteString(f.Decimal)
		b.WriteString(fraction)
	}

	out := strings.Replace(f.Template, "1", b.String(), 1)
	out = strings.Replace(out, "$", f.Grapheme, 1)
	if negative {
		out = "-" + out
	}
	return out
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as "-".
func (m Money) SignedString() string {
	if m.value.Round(DisplayFraction).IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.value)} }
func (m Money) Decimal() decimal.Decimal        { return m.value }

// AsFloat is only meant for presentation layers that need a float (charts).
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// MarshalJSON writes the amount as a bare JSON number, the way the service
// expects prices.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	m.value = decodeDecimal(data)
	return nil
}
