package investmap

import (
	"errors"
	"regexp"
	"strings"
)

// amountPattern is what the entry forms accept for a price or a quantity:
// digits with an optional dot or comma decimal separator.
var amountPattern = regexp.MustCompile(`^(\d+)?([.,](\d+)?)?$`)

// AssetInput is the body of an add, sell or update submission.
type AssetInput struct {
	StockTag string   `json:"stockTag"`
	Exchange string   `json:"exchange"`
	Price    Money    `json:"price"`
	Quantity Quantity `json:"quantity"`
}

// ParseAssetInput validates raw form values and returns the submission.
// It returns an error with all validation failures, each one matching
// ErrValidation.
func ParseAssetInput(stockTag, exchange, price, quantity string) (AssetInput, error) {
	in := AssetInput{
		StockTag: strings.ToUpper(strings.TrimSpace(stockTag)),
		Exchange: strings.TrimSpace(exchange),
	}
	var errs []error
	if in.StockTag == "" {
		errs = append(errs, &ValidationError{Field: "stockTag", Reason: "is required"})
	}
	if in.Exchange == "" {
		errs = append(errs, &ValidationError{Field: "exchange", Reason: "is required"})
	}
	p, err := parseAmount("price", price)
	if err != nil {
		errs = append(errs, err)
	}
	q, err := parseAmount("quantity", quantity)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return AssetInput{}, errors.Join(errs...)
	}
	in.Price = ParseMoney(p)
	in.Quantity = ParseQuantity(q)
	return in, nil
}

// parseAmount checks value against amountPattern and returns it with a dot
// decimal separator.
func parseAmount(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if !amountPattern.MatchString(v) || strings.Trim(v, ".,") == "" {
		return "", &ValidationError{Field: field, Value: value, Reason: "must be a non-negative number"}
	}
	return strings.Replace(v, ",", ".", 1), nil
}

// Validate checks an input built without ParseAssetInput.
func (in AssetInput) Validate() error {
	var errs []error
	if strings.TrimSpace(in.StockTag) == "" {
		errs = append(errs, &ValidationError{Field: "stockTag", Reason: "is required"})
	}
	if strings.TrimSpace(in.Exchange) == "" {
		errs = append(errs, &ValidationError{Field: "exchange", Reason: "is required"})
	}
	if in.Price.IsNegative() {
		errs = append(errs, &ValidationError{Field: "price", Value: in.Price.Decimal().String(), Reason: "must be a non-negative number"})
	}
	if in.Quantity.IsNegative() {
		errs = append(errs, &ValidationError{Field: "quantity", Value: in.Quantity.String(), Reason: "must be a non-negative number"})
	}
	return errors.Join(errs...)
}

// Input returns the editable part of a record, the starting point of an
// update submission.
func (r AssetRecord) Input() AssetInput {
	return AssetInput{StockTag: r.StockTag, Exchange: r.Exchange, Price: r.Price, Quantity: r.Quantity}
}
