package investmap

import (
	"errors"
	"testing"
)

func TestParseAssetInput(t *testing.T) {
	tests := []struct {
		name         string
		stockTag     string
		exchange     string
		price        string
		quantity     string
		wantErr      bool
		wantTag      string
		wantPrice    Money
		wantQuantity Quantity
	}{
		{name: "plain", stockTag: "AAPL", exchange: "NASDAQ", price: "100", quantity: "2", wantTag: "AAPL", wantPrice: M(100), wantQuantity: Q(2)},
		{name: "comma decimal", stockTag: " aapl ", exchange: "NASDAQ", price: "100,5", quantity: "0,25", wantTag: "AAPL", wantPrice: ParseMoney("100.5"), wantQuantity: ParseQuantity("0.25")},
		{name: "leading separator", stockTag: "MSFT", exchange: "NYSE", price: ".5", quantity: "3.", wantTag: "MSFT", wantPrice: ParseMoney("0.5"), wantQuantity: Q(3)},
		{name: "zero", stockTag: "MSFT", exchange: "NYSE", price: "0", quantity: "0", wantTag: "MSFT", wantPrice: M(0), wantQuantity: Q(0)},
		{name: "letters in price", stockTag: "AAPL", exchange: "NASDAQ", price: "10a", quantity: "2", wantErr: true},
		{name: "negative", stockTag: "AAPL", exchange: "NASDAQ", price: "-10", quantity: "2", wantErr: true},
		{name: "two separators", stockTag: "AAPL", exchange: "NASDAQ", price: "1.000,5", quantity: "2", wantErr: true},
		{name: "empty price", stockTag: "AAPL", exchange: "NASDAQ", price: "", quantity: "2", wantErr: true},
		{name: "lone separator", stockTag: "AAPL", exchange: "NASDAQ", price: "100", quantity: ",", wantErr: true},
		{name: "missing tag", stockTag: "  ", exchange: "NASDAQ", price: "1", quantity: "2", wantErr: true},
		{name: "missing exchange", stockTag: "AAPL", exchange: "", price: "1", quantity: "2", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAssetInput(tt.stockTag, tt.exchange, tt.price, tt.quantity)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("ParseAssetInput() error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAssetInput() error = %v", err)
			}
			if got.StockTag != tt.wantTag {
				t.Errorf("StockTag = %q, want %q", got.StockTag, tt.wantTag)
			}
			if !got.Price.Equal(tt.wantPrice) {
				t.Errorf("Price = %v, want %v", got.Price, tt.wantPrice)
			}
			if !got.Quantity.Equal(tt.wantQuantity) {
				t.Errorf("Quantity = %v, want %v", got.Quantity, tt.wantQuantity)
			}
		})
	}
}

func TestParseAssetInput_ReportsEveryField(t *testing.T) {
	_, err := ParseAssetInput("", "", "x", "y")
	if err == nil {
		t.Fatal("ParseAssetInput() error = nil")
	}
	fields := map[string]bool{}
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var v *ValidationError
		if errors.As(e, &v) {
			fields[v.Field] = true
		}
	}
	for _, f := range []string{"stockTag", "exchange", "price", "quantity"} {
		if !fields[f] {
			t.Errorf("no validation error for %s in %v", f, err)
		}
	}
}

func TestAssetInput_Validate(t *testing.T) {
	ok := AssetInput{StockTag: "AAPL", Exchange: "NASDAQ", Price: M(1), Quantity: Q(1)}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	bad := ok
	bad.Quantity = Q(-1)
	if err := bad.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("Validate() error = %v, want ErrValidation", err)
	}
}

func TestAssetRecord_Input(t *testing.T) {
	r := purchase(1, "AAPL", 100, 2)
	in := r.Input()
	if in.StockTag != "AAPL" || in.Exchange != "NASDAQ" || !in.Price.Equal(M(100)) || !in.Quantity.Equal(Q(2)) {
		t.Errorf("Input() = %+v", in)
	}
}
