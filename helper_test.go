package investmap

// purchase is a helper for tests to create a purchase record.
func purchase(id ID, tag string, price, quantity float64) AssetRecord {
	return AssetRecord{ID: id, StockTag: tag, Exchange: "NASDAQ", Price: M(price), Quantity: Q(quantity), IsPurchase: true}
}

// sale is a helper for tests to create a sale record.
func sale(id ID, tag string, price, quantity float64) AssetRecord {
	r := purchase(id, tag, price, quantity)
	r.IsPurchase = false
	return r
}

// priced returns r with a known current price.
func priced(r AssetRecord, current float64) AssetRecord {
	r.CurrentPrice = SomeMoney(M(current))
	return r
}
