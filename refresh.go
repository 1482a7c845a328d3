package investmap

import (
	"context"
	"fmt"
)

// PriceRefresher asks the service to update the current price of every
// record matching one of the symbols.
type PriceRefresher interface {
	RefreshAssets(ctx context.Context, symbols []string) error
}

// RefreshSymbols resolves the selected ids to their stock tags, in record
// order and without duplicates. The result never holds more than
// MaxSelection symbols, whatever the selection size.
func RefreshSymbols(records []AssetRecord, sel *Selection) []string {
	var symbols []string
	seen := make(map[string]bool)
	for _, r := range records {
		if !sel.Has(r.ID) || seen[r.StockTag] {
			continue
		}
		seen[r.StockTag] = true
		symbols = append(symbols, r.StockTag)
	}
	if len(symbols) > MaxSelection {
		symbols = symbols[:MaxSelection]
	}
	return symbols
}

// RefreshSelected issues one refresh request for the selected records, then
// clears the selection and calls reload. An empty symbol list issues no
// request at all and returns (false, nil).
//
// On a failed request neither the selection nor the records are touched.
func RefreshSelected(ctx context.Context, records []AssetRecord, sel *Selection, prices PriceRefresher, reload func(context.Context) error) (bool, error) {
	symbols := RefreshSymbols(records, sel)
	if len(symbols) == 0 {
		return false, nil
	}
	if err := prices.RefreshAssets(ctx, symbols); err != nil {
		return false, fmt.Errorf("refreshing %v: %w", symbols, err)
	}
	sel.Clear()
	if reload == nil {
		return true, nil
	}
	if err := reload(ctx); err != nil {
		return true, fmt.Errorf("reloading assets after refresh: %w", err)
	}
	return true, nil
}
