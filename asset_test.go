package investmap

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestAssetRecord_UnmarshalServiceJSON(t *testing.T) {
	data := `[
	{"id":1,"stockTag":"AAPL","exchange":"NASDAQ","name":{"String":"Apple Inc","Valid":true},
	 "price":100,"quantity":2,"currentPrice":{"Float64":110,"Valid":true},"isPurchase":true,
	 "createdAt":"2024-01-02T10:00:00Z","updatedAt":"2024-01-02T10:00:00Z"},
	{"id":2,"stockTag":"MSFT","exchange":"NASDAQ","name":{"String":"","Valid":false},
	 "price":"300.5","quantity":"abc","currentPrice":{"Float64":0,"Valid":false},"isPurchase":false,
	 "createdAt":"2024-01-03T10:00:00Z","updatedAt":"2024-01-03T10:00:00Z"},
	{"id":3,"stockTag":"TSLA","exchange":"NASDAQ","name":null,"price":null,"quantity":1,
	 "currentPrice":250.25,"isPurchase":true,
	 "createdAt":"2024-01-04T10:00:00Z","updatedAt":"2024-01-04T10:00:00Z"}
	]`

	var records []AssetRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	tests := []struct {
		name         string
		record       AssetRecord
		wantName     string
		wantPrice    Money
		wantQuantity Quantity
		wantCurrent  Money
		wantKind     string
	}{
		{"refreshed", records[0], "Apple Inc", M(100), Q(2), M(110), "Purchase"},
		{"never refreshed", records[1], "N/A", ParseMoney("300.5"), Q(0), M(0), "Sale"},
		{"plain values", records[2], "N/A", M(0), Q(1), ParseMoney("250.25"), "Purchase"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.record
			if got := r.ResolvedName(); got != tt.wantName {
				t.Errorf("ResolvedName() = %q, want %q", got, tt.wantName)
			}
			if !r.Price.Equal(tt.wantPrice) {
				t.Errorf("Price = %v, want %v", r.Price, tt.wantPrice)
			}
			if !r.Quantity.Equal(tt.wantQuantity) {
				t.Errorf("Quantity = %v, want %v", r.Quantity, tt.wantQuantity)
			}
			if got := r.ResolvedCurrentPrice(); !got.Equal(tt.wantCurrent) {
				t.Errorf("ResolvedCurrentPrice() = %v, want %v", got, tt.wantCurrent)
			}
			if got := r.Kind(); got != tt.wantKind {
				t.Errorf("Kind() = %q, want %q", got, tt.wantKind)
			}
		})
	}

	// a non-numeric quantity counts as zero in the totals
	if got, want := TotalInvestment(records), M(200); !got.Equal(want) {
		t.Errorf("TotalInvestment() = %v, want %v", got, want)
	}
}

func TestAssetRecord_MarshalRoundTrip(t *testing.T) {
	r := AssetRecord{ID: 7, StockTag: "AAPL", Exchange: "NASDAQ", Name: SomeString("Apple Inc"), Price: ParseMoney("100.25"), Quantity: Q(3), IsPurchase: true}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got AssetRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Name != r.Name || got.CurrentPrice.Valid || !got.Price.Equal(r.Price) || got.ID != r.ID {
		t.Errorf("round trip = %+v, want %+v", got, r)
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, false},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrValidation) {
			t.Errorf("ParseID(%q) error = %v, want ErrValidation", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMoney_String(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{M(0), "0.00"},
		{M(1234.56), "1,234.56"},
		{M(-20), "-20.00"},
		{ParseMoney("1234567.891"), "1,234,567.89"},
		{ParseMoney("0.005"), "0.01"},
		{ParseMoney("100000000000000000000"), "100,000,000,000,000,000,000.00"},
		{ParseMoney("-1234567890123456789.456"), "-1,234,567,890,123,456,789.46"},
		{M(1e18).Mul(Q(1000)), "1,000,000,000,000,000,000,000.00"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Money(%s).String() = %q, want %q", tt.in.Decimal(), got, tt.want)
		}
	}
}

func TestMoney_SignedString(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{M(0), "-"},
		{ParseMoney("0.001"), "-"},
		{M(20), "+20.00"},
		{M(-30), "-30.00"},
	}
	for _, tt := range tests {
		if got := tt.in.SignedString(); got != tt.want {
			t.Errorf("Money(%s).SignedString() = %q, want %q", tt.in.Decimal(), got, tt.want)
		}
	}
}

func TestPercent_String(t *testing.T) {
	if got, want := Percent(10).String(), "10.00%"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := Percent(-2.5).SignedString(), "-2.50%"; got != want {
		t.Errorf("SignedString() = %q, want %q", got, want)
	}
	if got, want := Percent(0).SignedString(), "-"; got != want {
		t.Errorf("SignedString() = %q, want %q", got, want)
	}
}

func TestNewFormatter(t *testing.T) {
	if got, want := M(1234.5).Format(NewFormatter("USD")), "$1,234.50"; got != want {
		t.Errorf("Format(USD) = %q, want %q", got, want)
	}
	if got, want := M(1234.5).Format(NewFormatter("")), "1,234.50"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
	if got, want := ParseMoney("123456789012345678").Format(NewFormatter("USD")), "$123,456,789,012,345,678.00"; got != want {
		t.Errorf("Format(USD) of a large amount = %q, want %q", got, want)
	}
	if got, want := M(1234.5).Format(NewFormatter("NOPE")), "1,234.50"; got != want {
		t.Errorf("Format(unknown) = %q, want %q", got, want)
	}
}
