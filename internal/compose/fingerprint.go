package compose

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"

	"jobradar/aggregator-service/internal/model"
)

// Fingerprint reduces a job to its cross-provider dedup key: the SHA-256 of
// lower-cased (title, company, location, applyUrl host). Two listings with
// the same fingerprint are treated as the same real-world job reported by
// different sources. The value is derived per composition pass and never
// stored.
func Fingerprint(j *model.Job) string {
	host := ""
	if j.ApplyURL != "" {
		if u, err := url.Parse(j.ApplyURL); err == nil {
			host = u.Host
		}
	}
	key := strings.ToLower(j.Title + "|" + j.Company + "|" + j.Location + "|" + host)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
