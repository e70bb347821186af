package jurisdiction

import "strings"

// ParseLocation resolves a free-text location to a country code and a
// two-letter region code, either of which may be empty. The country comes
// from keyword matching; a region code match (e.g. ", WA") also implies its
// country when no keyword is present, so "Seattle, WA" resolves without the
// text ever saying "USA".
func (e *Engine) ParseLocation(location string) (country, region string) {
	if location == "" {
		return "", ""
	}

	lowered := strings.ToLower(location)
	for _, c := range e.countries {
		for _, kw := range c.Keywords {
			if strings.Contains(lowered, kw) {
				country = c.Code
				break
			}
		}
		if country != "" {
			break
		}
	}

	// Region codes are matched as stand-alone upper-case tokens; matching
	// case-insensitively would turn ordinary words ("in", "or") into states.
	for _, tok := range strings.FieldsFunc(location, func(r rune) bool {
		return r < 'A' || (r > 'Z' && r < 'a') || r > 'z'
	}) {
		if len(tok) != 2 || tok != strings.ToUpper(tok) {
			continue
		}
		if c, ok := e.regionCountry[tok]; ok {
			region = tok
			if country == "" {
				country = c
			}
			break
		}
	}

	return country, region
}
