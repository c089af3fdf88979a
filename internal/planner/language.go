package planner

import (
	"strings"

	"golang.org/x/text/language"
)

// LangMatches reports whether a stream's language tag matches the configured
// target language. ISO 639-1 and 639-2 spellings of the same language match
// each other ("en"/"eng", "fr"/"fra"/"fre") via base-tag comparison; tags
// that do not parse fall back to case-insensitive string equality. "und"
// never matches a real language, so untagged streams are dropped when
// stripping, as in the legacy tool.
func LangMatches(want, have string) bool {
	if strings.EqualFold(want, have) {
		return true
	}
	// language.Parse("und") succeeds and Base() then infers a likely base
	// ("en" with low confidence), so base comparison alone would match
	// untagged streams against any target. Cut that off here.
	if strings.EqualFold(want, "und") || strings.EqualFold(have, "und") {
		return false
	}

	wt, werr := language.Parse(want)
	ht, herr := language.Parse(have)
	if werr != nil || herr != nil {
		return false
	}

	wb, _ := wt.Base()
	hb, _ := ht.Base()
	return wb == hb
}
