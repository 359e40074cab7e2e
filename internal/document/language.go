package document

import (
	"strings"

	"github.com/src-d/enry/v2"
)

// syntheticFilename is the filename handed to enry when classifying
// untagged code blocks, forcing content-based detection.
const syntheticFilename = "snippet"

// DetectLanguages fills DetectedLang for code segments whose opening
// fence declared no language tag. Tagged segments are left untouched;
// detection is informational and never fails.
func DetectLanguages(segments []Segment) {
	for i := range segments {
		seg := &segments[i]
		if !seg.IsCode() || seg.Lang != "" {
			continue
		}

		content := strings.TrimSpace(seg.Content)
		if content == "" {
			continue
		}

		lang := enry.GetLanguage(syntheticFilename, []byte(seg.Content))
		if lang != enry.OtherLanguage {
			seg.DetectedLang = strings.ToLower(lang)
		}
	}
}

// EffectiveLang returns the declared tag when present, falling back to
// the detected language.
func EffectiveLang(seg Segment) string {
	if seg.Lang != "" {
		return seg.Lang
	}

	return seg.DetectedLang
}
