package domain

import "strings"

// Verdict is the normalized fact-check rating.
type Verdict string

const (
	VerdictTrue       Verdict = "True"
	VerdictFalse      Verdict = "False"
	VerdictMisleading Verdict = "Misleading"
	VerdictUnproven   Verdict = "Unproven"
	VerdictUnknown    Verdict = "Unknown"
)

// NormalizeVerdict maps a fact-check publisher's free-text rating to the
// closed verdict taxonomy. Publishers use wildly different rating scales, so
// only well-established phrasings are recognized; everything else is Unknown.
func NormalizeVerdict(raw string) Verdict {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "correct", "accurate", "verified":
		return VerdictTrue
	case "false", "incorrect", "fabricated", "fake":
		return VerdictFalse
	case "misleading", "partly false", "mixture":
		return VerdictMisleading
	case "unproven", "unsubstantiated", "research in progress":
		return VerdictUnproven
	default:
		return VerdictUnknown
	}
}
