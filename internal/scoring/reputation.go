package scoring

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/jonesrussell/credibility/internal/logger"
)

// ReputationTable maps normalized domain names to reputation values in
// [0,1]. It is loaded once at startup and read-only afterwards, so lookups
// are safe for concurrent use.
type ReputationTable struct {
	scores map[string]float64
}

// NormalizeDomain lower-cases a domain and strips a leading "www.".
func NormalizeDomain(domainName string) string {
	d := strings.ToLower(strings.TrimSpace(domainName))
	return strings.TrimPrefix(d, "www.")
}

// LoadReputationTable reads a flat JSON object mapping domain to reputation
// from path. A missing or malformed file yields an empty table with a
// warning, never an error: reputation is an optional signal.
func LoadReputationTable(path string, log logger.Logger) *ReputationTable {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("Domain reputation file not found, using empty table",
				logger.String("path", path))
		} else {
			log.Warn("Failed to read domain reputation file, using empty table",
				logger.String("path", path),
				logger.Error(err))
		}
		return &ReputationTable{scores: map[string]float64{}}
	}

	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn("Malformed domain reputation file, using empty table",
			logger.String("path", path),
			logger.Error(err))
		return &ReputationTable{scores: map[string]float64{}}
	}

	scores := make(map[string]float64, len(raw))
	for d, v := range raw {
		scores[NormalizeDomain(d)] = v
	}

	log.Info("Domain reputation table loaded",
		logger.String("path", path),
		logger.Int("domains", len(scores)))

	return &ReputationTable{scores: scores}
}

// NewReputationTable builds a table directly from a map. Keys are normalized.
func NewReputationTable(scores map[string]float64) *ReputationTable {
	normalized := make(map[string]float64, len(scores))
	for d, v := range scores {
		normalized[NormalizeDomain(d)] = v
	}
	return &ReputationTable{scores: normalized}
}

// Score returns the reputation sub-score for a domain. A missing domain or
// an unknown one resolves to the neutral value; this never fails.
func (t *ReputationTable) Score(domainName string) float64 {
	if domainName == "" {
		return neutralScore
	}
	if v, ok := t.scores[NormalizeDomain(domainName)]; ok {
		return v
	}
	return neutralScore
}

// Lookup returns the stored reputation and whether the domain is known.
func (t *ReputationTable) Lookup(domainName string) (float64, bool) {
	v, ok := t.scores[NormalizeDomain(domainName)]
	return v, ok
}

// Len returns the number of domains in the table.
func (t *ReputationTable) Len() int {
	return len(t.scores)
}
