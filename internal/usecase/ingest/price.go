package ingest

import "regexp"

// priceRe pulls the currency symbol and amount out of messy price text,
// e.g. "MRP: ₹ 1,299 incl. tax" -> "₹ 1,299".
var priceRe = regexp.MustCompile(`(₹\s?[\d,]+)`)

// NormalizePrice extracts a clean display price from scraped text.
// Unparseable text passes through unchanged; empty text becomes "N/A".
func NormalizePrice(raw string) string {
	if raw == "" {
		return "N/A"
	}
	if m := priceRe.FindString(raw); m != "" {
		return m
	}
	return raw
}
