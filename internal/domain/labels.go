package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label is the normalized classifier output class.
type Label string

// Known label classes. Anything outside these four is treated as Unknown
// when scoring, even if NormalizeLabel preserved the original string.
const (
	LabelReal    Label = "Real"
	LabelFake    Label = "Fake"
	LabelBiased  Label = "Biased"
	LabelSatire  Label = "Satire"
	LabelUnknown Label = "Unknown"
)

var titleCaser = cases.Title(language.English)

// NormalizeLabel maps heterogeneous classifier label strings to the closed
// label taxonomy. It is total: unrecognized input falls through to a
// title-cased copy of the raw string, which scorers treat as Unknown.
func NormalizeLabel(raw string) Label {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fake", "false", "unreliable", "fabricated":
		return LabelFake
	case "real", "true", "reliable", "factual":
		return LabelReal
	case "biased", "opinion", "misleading":
		return LabelBiased
	case "satire", "humor", "comedy":
		return LabelSatire
	case "", "unknown":
		return LabelUnknown
	default:
		return Label(titleCaser.String(strings.ToLower(strings.TrimSpace(raw))))
	}
}

// Known reports whether the label is one of the four meaningful classes.
// Labels outside these carry no credibility direction.
func (l Label) Known() bool {
	switch l {
	case LabelReal, LabelFake, LabelBiased, LabelSatire:
		return true
	default:
		return false
	}
}
