package factcheck

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonesrussell/credibility/internal/sentence"
)

const (
	// minClaimLength is the trimmed length in runes a sentence needs before
	// it is worth sending to the fact-check API.
	minClaimLength = 20
	// maxClaims bounds both extraction and the merged result list.
	maxClaims = 5
)

var (
	digitsRe    = regexp.MustCompile(`\d`)
	reportingRe = regexp.MustCompile(`(?i)\b(said|reported|according|study|research|data)\b`)
	magnitudeRe = regexp.MustCompile(`(?i)\b(percent|million|billion|thousand)\b`)
)

// ExtractClaims picks the sentences most likely to contain checkable factual
// claims: long enough, and carrying numbers, reporting verbs, or magnitude
// words. At most maxClaims are returned, in document order.
func ExtractClaims(text string) []string {
	var claims []string
	for _, s := range sentence.Split(text) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) <= minClaimLength {
			continue
		}
		if digitsRe.MatchString(s) || reportingRe.MatchString(s) || magnitudeRe.MatchString(s) {
			claims = append(claims, s)
			if len(claims) == maxClaims {
				break
			}
		}
	}
	return claims
}
