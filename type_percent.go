package investmap

import "github.com/shopspring/decimal"

// Percent is a ratio expressed in percent (10 means 10%).
type Percent float64

// percentOf returns part/whole*100. A zero whole yields 0 rather than an
// infinite or undefined value.
func percentOf(part, whole Money) Percent {
	if whole.value.IsZero() {
		return 0
	}
	return Percent(part.value.Div(whole.value).Mul(decimal.NewFromInt(100)).InexactFloat64())
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// String formats the percentage like an amount: two decimals and thousands
// separators.
func (p Percent) String() string {
	return M(float64(p)).String() + "%"
}

func (p Percent) SignedString() string {
	s := M(float64(p)).SignedString()
	if s == "-" {
		return s
	}
	return s + "%"
}
