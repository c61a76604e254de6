// Package lang screens extracted document text by language before it is
// sent for structured extraction. Detection is deliberately lenient:
// a document is only ruled out when the detector is confident it is not
// English, so ambiguous or short text still gets processed.
package lang

import (
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// sampleSize bounds how much text the detector sees. Accuracy plateaus
// well before this and full syllabi can run to hundreds of KB.
const sampleSize = 4096

// minChars below which detection is too unreliable to act on.
const minChars = 40

// confidenceFloor a foreign-language call must clear before we exclude.
const confidenceFloor = 0.90

type Detector struct {
	det lingua.LanguageDetector
}

// NewDetector builds a detector over the languages that actually show up
// in the document corpus. Building is expensive; share one detector
// across workers.
func NewDetector() *Detector {
	return &Detector{
		det: lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.Spanish,
				lingua.French,
				lingua.German,
				lingua.Portuguese,
				lingua.Chinese,
				lingua.Arabic,
			).
			Build(),
	}
}

// English reports whether text reads as English. When it returns false,
// reason names the detected language.
func (d *Detector) English(text string) (bool, string) {
	sample := TruncateUTF8(strings.TrimSpace(text), sampleSize)
	if len(sample) < minChars {
		return true, ""
	}

	language, ok := d.det.DetectLanguageOf(sample)
	if !ok || language == lingua.English {
		return true, ""
	}
	if d.det.ComputeLanguageConfidence(sample, language) < confidenceFloor {
		return true, ""
	}
	return false, language.String()
}

// TruncateUTF8 cuts s to at most max bytes without splitting a rune.
func TruncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
