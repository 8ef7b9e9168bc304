package receipt

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a single line item on a receipt.
type Item struct {
	ShortDescription string
	Price            decimal.Decimal
}

// Receipt is a validated, normalized purchase submission. It is immutable
// once built; points are derived at creation time and never recomputed.
type Receipt struct {
	ID           string
	Retailer     string
	PurchaseDate time.Time // date only
	PurchaseTime time.Time // time of day, minute resolution
	Items        []Item
	Total        decimal.Decimal // quantized to two fractional digits
}
