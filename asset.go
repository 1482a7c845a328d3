package investmap

import (
	"fmt"
	"strconv"
	"time"
)

// ID identifies an asset record. It is assigned by the service and never
// changes.
type ID int

// ParseID parses a record identifier as typed by a user.
func ParseID(s string) (ID, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, &ValidationError{Field: "id", Value: s, Reason: "must be a non-negative integer"}
	}
	return ID(n), nil
}

func (id ID) String() string { return strconv.Itoa(int(id)) }

// AssetRecord is one purchase or sale entry of the portfolio.
//
// Name and CurrentPrice are market data filled by the service on refresh;
// they stay unknown until then. Use ResolvedName and ResolvedCurrentPrice
// rather than reading them directly.
type AssetRecord struct {
	ID           ID         `json:"id"`
	StockTag     string     `json:"stockTag"`
	Exchange     string     `json:"exchange"`
	Name         NullString `json:"name"`
	Price        Money      `json:"price"`
	Quantity     Quantity   `json:"quantity"`
	CurrentPrice NullMoney  `json:"currentPrice"`
	IsPurchase   bool       `json:"isPurchase"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ResolvedName returns the instrument name, or "N/A" while it is unknown.
func (r AssetRecord) ResolvedName() string {
	if !r.Name.Valid {
		return "N/A"
	}
	return r.Name.String
}

// ResolvedCurrentPrice returns the latest known market price, or zero while it
// is unknown.
func (r AssetRecord) ResolvedCurrentPrice() Money {
	if !r.CurrentPrice.Valid {
		return Money{}
	}
	return r.CurrentPrice.Money
}

// Kind returns "Purchase" or "Sale".
func (r AssetRecord) Kind() string {
	if r.IsPurchase {
		return "Purchase"
	}
	return "Sale"
}

func (r AssetRecord) String() string {
	return fmt.Sprintf("#%d %s %s %s x %s on %s", r.ID, r.Kind(), r.StockTag, r.Quantity, r.Price, r.Exchange)
}

// Find returns the record with the given id.
func Find(records []AssetRecord, id ID) (AssetRecord, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return AssetRecord{}, false
}
