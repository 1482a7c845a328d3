package investmap

import (
	"bytes"
	"encoding/json"
)

// The service encodes its nullable columns the way database/sql does:
//
//	"name":         {"String": "Apple Inc", "Valid": true}
//	"currentPrice": {"Float64": 187.5, "Valid": true}
//
// Plain values and null are accepted as well, so both the raw and the
// flattened asset representations decode into the same types.

// NullString is a string that may be unknown. An unknown name is not the same
// as an empty one.
type NullString struct {
	String string
	Valid  bool
}

// SomeString returns a known string.
func SomeString(s string) NullString { return NullString{String: s, Valid: true} }

func (n NullString) MarshalJSON() ([]byte, error) {
	type wire struct {
		String string
		Valid  bool
	}
	return json.Marshal(wire(n))
}

func (n *NullString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*n = NullString{}
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		if err := json.Unmarshal(data, &n.String); err != nil {
			return err
		}
		n.Valid = true
		return nil
	}
	var w struct {
		String string
		Valid  bool
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*n = NullString(w)
	return nil
}

// NullMoney is an amount that may be unknown, typically a current price
// that has never been refreshed.
type NullMoney struct {
	Money Money
	Valid bool
}

// SomeMoney returns a known amount.
func SomeMoney(m Money) NullMoney { return NullMoney{Money: m, Valid: true} }

func (n NullMoney) MarshalJSON() ([]byte, error) {
	type wire struct {
		Float64 Money
		Valid   bool
	}
	return json.Marshal(wire{Float64: n.Money, Valid: n.Valid})
}

func (n *NullMoney) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*n = NullMoney{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] != '{' {
		n.Valid = true
		return n.Money.UnmarshalJSON(data)
	}
	var w struct {
		Float64 Money
		Valid   bool
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	n.Money, n.Valid = w.Float64, w.Valid
	return nil
}
