package investmap

// This file contains the portfolio formulas. They are pure functions over a
// list of records; nothing is cached, the list is the only source of truth.

// Investment returns the capital committed by the record: price * quantity.
func Investment(r AssetRecord) Money {
	return r.Price.Mul(r.Quantity)
}

// ProfitOrLoss returns (current price - price) * quantity.
//
// While the current price is zero it returns exactly zero: an unknown current
// price and a current price of zero are not told apart.
func ProfitOrLoss(r AssetRecord) Money {
	current := r.ResolvedCurrentPrice()
	if current.IsZero() {
		return Money{}
	}
	return current.Sub(r.Price).Mul(r.Quantity)
}

// ProfitOrLossPercent returns ProfitOrLoss relative to Investment, or 0 for a
// zero investment.
func ProfitOrLossPercent(r AssetRecord) Percent {
	return percentOf(ProfitOrLoss(r), Investment(r))
}

// TotalInvestment sums the investment of purchases. Sales do not contribute
// to the invested capital.
func TotalInvestment(records []AssetRecord) Money {
	var total Money
	for _, r := range records {
		if r.IsPurchase {
			total = total.Add(Investment(r))
		}
	}
	return total
}

// TotalProfitLoss sums the profit or loss of purchases. Sales contribute
// nothing, and a purchase without a current price contributes zero.
func TotalProfitLoss(records []AssetRecord) Money {
	var total Money
	for _, r := range records {
		if r.IsPurchase {
			total = total.Add(ProfitOrLoss(r))
		}
	}
	return total
}

// TotalProfitLossPercent returns TotalProfitLoss relative to TotalInvestment,
// or 0 when nothing is invested.
func TotalProfitLossPercent(records []AssetRecord) Percent {
	return percentOf(TotalProfitLoss(records), TotalInvestment(records))
}

// PortfolioValue returns the invested capital plus the unrealized profit or loss.
func PortfolioValue(records []AssetRecord) Money {
	return TotalInvestment(records).Add(TotalProfitLoss(records))
}

// UniqueAssetTagCount counts distinct stock tags, purchases and sales alike.
func UniqueAssetTagCount(records []AssetRecord) int {
	tags := make(map[string]struct{})
	for _, r := range records {
		tags[r.StockTag] = struct{}{}
	}
	return len(tags)
}

// Row holds the derived values of a single record.
type Row struct {
	AssetRecord
	Investment          Money
	ProfitOrLoss        Money
	ProfitOrLossPercent Percent
}

// Summary is the table view of a list of records: one row per record, in
// the service order, and the portfolio totals.
type Summary struct {
	Rows                   []Row
	TotalInvestment        Money
	TotalProfitLoss        Money
	TotalProfitLossPercent Percent
	PortfolioValue         Money
	UniqueAssets           int
}

// NewSummary computes the Summary of records.
func NewSummary(records []AssetRecord) *Summary {
	s := &Summary{
		Rows:                   make([]Row, 0, len(records)),
		TotalInvestment:        TotalInvestment(records),
		TotalProfitLoss:        TotalProfitLoss(records),
		TotalProfitLossPercent: TotalProfitLossPercent(records),
		PortfolioValue:         PortfolioValue(records),
		UniqueAssets:           UniqueAssetTagCount(records),
	}
	for _, r := range records {
		s.Rows = append(s.Rows, Row{
			AssetRecord:         r,
			Investment:          Investment(r),
			ProfitOrLoss:        ProfitOrLoss(r),
			ProfitOrLossPercent: ProfitOrLossPercent(r),
		})
	}
	return s
}

// Allocation returns the invested capital per stock tag, purchases only, in
// first-seen order.
func Allocation(records []AssetRecord) (tags []string, invested map[string]Money) {
	invested = make(map[string]Money)
	for _, r := range records {
		if !r.IsPurchase {
			continue
		}
		if _, ok := invested[r.StockTag]; !ok {
			tags = append(tags, r.StockTag)
		}
		invested[r.StockTag] = invested[r.StockTag].Add(Investment(r))
	}
	return tags, invested
}
