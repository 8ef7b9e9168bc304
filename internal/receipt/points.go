package receipt

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var quarter = decimal.New(25, -2) // 0.25

// Points computes the loyalty score for a receipt. Pure and deterministic:
// the same receipt always scores the same.
func Points(r *Receipt) int {
	points := 0

	// One point per ASCII alphanumeric character in the retailer name.
	for _, c := range r.Retailer {
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			points++
		}
	}

	// 50 points for a round dollar amount, 25 for a multiple of 0.25.
	// Both checks use exact decimal arithmetic.
	if r.Total.IsInteger() {
		points += 50
	}
	if r.Total.Mod(quarter).IsZero() {
		points += 25
	}

	// 5 points for every two items.
	points += 5 * (len(r.Items) / 2)

	// If the trimmed description length is a positive multiple of 3, the
	// item earns ceil(price * 0.2). This is the one rule that intentionally
	// goes through floating point.
	for _, item := range r.Items {
		n := len(strings.TrimSpace(item.ShortDescription))
		if n > 0 && n%3 == 0 {
			points += int(math.Ceil(item.Price.InexactFloat64() * 0.2))
		}
	}

	// 6 points for an odd purchase day.
	if r.PurchaseDate.Day()%2 == 1 {
		points += 6
	}

	// 10 points for a purchase strictly between 14:00 and 16:00.
	minutes := r.PurchaseTime.Hour()*60 + r.PurchaseTime.Minute()
	if minutes > 14*60 && minutes < 16*60 {
		points += 10
	}

	return points
}
