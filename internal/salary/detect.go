// Package salary extracts pay ranges from free-text listing bodies.
package salary

import (
	"regexp"
	"strconv"
	"strings"
)

// Range is a pay range recovered from listing text. Unit is one of
// "hour", "day", "month", "year" or "unknown".
type Range struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
	Unit     string  `json:"unit"`
}

// rangeRe matches "<symbol?><amount> - <symbol?><amount>" with an ASCII
// hyphen or an en/em dash between the two amounts. Amounts may carry
// thousands separators written as commas or dots.
var rangeRe = regexp.MustCompile(`([$€£])?\s*([0-9][0-9.,]*[0-9]|[0-9])\s*[-–—]\s*([$€£])?\s*([0-9][0-9.,]*[0-9]|[0-9])`)

var currencyBySymbol = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
}

// unitPatterns are tried in order; the first match wins. Word boundaries
// keep short forms like "mo" from matching inside unrelated words.
var unitPatterns = []struct {
	re   *regexp.Regexp
	unit string
}{
	{regexp.MustCompile(`(?i)\b(hourly|hour|hr)\b`), "hour"},
	{regexp.MustCompile(`(?i)\b(yearly|year|yr|annually|annual)\b`), "year"},
	{regexp.MustCompile(`(?i)\b(monthly|month|mo)\b`), "month"},
	{regexp.MustCompile(`(?i)\b(daily|day)\b`), "day"},
}

// Detect scans text for a pay range and returns nil when none is found.
// A nil result means "no reliable signal", never "zero income".
func Detect(text string) *Range {
	m := rangeRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	min, okMin := parseAmount(m[2])
	max, okMax := parseAmount(m[4])
	if !okMin || !okMax {
		return nil
	}

	currency := "USD"
	if c, ok := currencyBySymbol[m[1]]; ok {
		currency = c
	} else if c, ok := currencyBySymbol[m[3]]; ok {
		currency = c
	}

	unit := "unknown"
	for _, p := range unitPatterns {
		if p.re.MatchString(text) {
			unit = p.unit
			break
		}
	}

	return &Range{Min: min, Max: max, Currency: currency, Unit: unit}
}

// parseAmount strips thousands separators (commas or dots) and parses the
// remaining digits.
func parseAmount(s string) (float64, bool) {
	s = strings.NewReplacer(",", "", ".", "").Replace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
