// Language resolution for API requests.
//
// The API answers in Polish or English. Resolution order mirrors the
// frontend contract: explicit `language` field in the body, then the X-Lang
// header, then Accept-Language, then Polish as the site default.
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LangPolish  = "pl"
	LangEnglish = "en"
)

// supportedLangs drives Accept-Language negotiation. Polish first so an
// unmatchable header falls back to the site default.
var supportedLangs = language.NewMatcher([]language.Tag{
	language.Polish,
	language.English,
})

// resolveLanguage picks "pl" or "en" for the request. bodyLang is the
// optional language field from the JSON payload and wins when recognizable.
func resolveLanguage(c *gin.Context, bodyLang string) string {
	if l, ok := normalizeLang(bodyLang); ok {
		return l
	}
	if l, ok := normalizeLang(c.GetHeader("X-Lang")); ok {
		return l
	}
	if accept := c.GetHeader("Accept-Language"); accept != "" {
		if tag, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tag) > 0 {
			matched, _, conf := supportedLangs.Match(tag...)
			if conf > language.No {
				base, _ := matched.Base()
				if base.String() == "en" {
					return LangEnglish
				}
				return LangPolish
			}
		}
	}
	return LangPolish
}

// normalizeLang maps a raw language value onto a supported code by prefix,
// so "pl-PL" and "en-GB" resolve as expected.
func normalizeLang(raw string) (string, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(raw, LangPolish):
		return LangPolish, true
	case strings.HasPrefix(raw, LangEnglish):
		return LangEnglish, true
	default:
		return "", false
	}
}
