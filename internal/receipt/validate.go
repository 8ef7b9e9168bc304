package receipt

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// requiredFields is the declared order for missing-field reporting.
var requiredFields = []string{"retailer", "purchaseDate", "purchaseTime", "items", "total"}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type rawItem struct {
	ShortDescription string          `json:"shortDescription"`
	Price            json.RawMessage `json:"price"`
}

// ParseSubmission validates a raw submission body and produces a normalized
// Receipt without an ID; the caller assigns one. Checks run in a fixed order
// and stop at the first failure, which is always a *ValidationError.
func ParseSubmission(body []byte) (*Receipt, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, errMalformedPayload()
	}

	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			return nil, errMissingField(name)
		}
	}

	var rawItems []rawItem
	if err := json.Unmarshal(fields["items"], &rawItems); err != nil {
		return nil, errMalformedPayload()
	}
	if len(rawItems) == 0 {
		return nil, errEmptyItems()
	}

	var retailer string
	if err := json.Unmarshal(fields["retailer"], &retailer); err != nil {
		return nil, errMalformedPayload()
	}

	var dateStr, timeStr string
	if err := json.Unmarshal(fields["purchaseDate"], &dateStr); err != nil {
		return nil, errMalformedPayload()
	}
	if err := json.Unmarshal(fields["purchaseTime"], &timeStr); err != nil {
		return nil, errMalformedPayload()
	}
	purchaseDate, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, errInvalidDateOrTime()
	}
	purchaseTime, err := time.Parse(timeLayout, timeStr)
	if err != nil {
		return nil, errInvalidDateOrTime()
	}

	total, rawTotal, err := decimalFromRaw(fields["total"])
	if err != nil {
		return nil, errInvalidTotal()
	}

	items := make([]Item, 0, len(rawItems))
	sum := decimal.Zero
	for _, ri := range rawItems {
		price, _, err := decimalFromRaw(ri.Price)
		if err != nil {
			return nil, errInvalidTotal()
		}
		sum = sum.Add(price)
		items = append(items, Item{ShortDescription: ri.ShortDescription, Price: price})
	}
	if !sum.Equal(total) {
		return nil, errTotalMismatch(formatExact(sum), rawTotal)
	}

	return &Receipt{
		Retailer:     retailer,
		PurchaseDate: purchaseDate,
		PurchaseTime: purchaseTime,
		Items:        items,
		Total:        total.Round(2),
	}, nil
}

// formatExact renders a decimal at its carried scale. Decimal.String trims
// trailing zeros, but an exact sum of item prices keeps the scale of its
// inputs, so a sum of cents must read "30.00", not "30".
func formatExact(d decimal.Decimal) string {
	if d.Exponent() < 0 {
		return d.StringFixed(-d.Exponent())
	}
	return d.String()
}

// decimalFromRaw parses a JSON value that may be either a quoted decimal
// string or a bare number. It also returns the value as it appeared on the
// wire, for error messages that must echo the original representation.
func decimalFromRaw(raw json.RawMessage) (decimal.Decimal, string, error) {
	text := string(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		text = s
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, text, err
	}
	return d, text, nil
}
