package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// resolveOn runs resolveLanguage against a synthetic request.
func resolveOn(t *testing.T, bodyLang string, headers map[string]string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return resolveLanguage(c, bodyLang)
}

func TestResolveLanguage_Precedence(t *testing.T) {
	cases := []struct {
		name     string
		bodyLang string
		headers  map[string]string
		want     string
	}{
		{"default is polish", "", nil, LangPolish},
		{"body wins", "en", map[string]string{"X-Lang": "pl", "Accept-Language": "pl"}, LangEnglish},
		{"body with region", "pl-PL", nil, LangPolish},
		{"unrecognized body falls through", "de", map[string]string{"X-Lang": "en"}, LangEnglish},
		{"x-lang over accept-language", "", map[string]string{"X-Lang": "en", "Accept-Language": "pl"}, LangEnglish},
		{"accept-language english", "", map[string]string{"Accept-Language": "en-GB,en;q=0.9"}, LangEnglish},
		{"accept-language polish", "", map[string]string{"Accept-Language": "pl-PL,pl;q=0.9,en;q=0.5"}, LangPolish},
		{"unsupported accept-language defaults", "", map[string]string{"Accept-Language": "de-DE,de;q=0.9"}, LangPolish},
		{"garbage accept-language defaults", "", map[string]string{"Accept-Language": ";;;"}, LangPolish},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveOn(t, tc.bodyLang, tc.headers); got != tc.want {
				t.Fatalf("resolveLanguage = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeLang(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"pl", LangPolish, true},
		{"PL", LangPolish, true},
		{"pl-PL", LangPolish, true},
		{"en", LangEnglish, true},
		{"en-GB", LangEnglish, true},
		{" en ", LangEnglish, true},
		{"", "", false},
		{"de", "", false},
		{"fr-FR", "", false},
	}
	for _, tc := range cases {
		got, ok := normalizeLang(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("normalizeLang(%q) = (%q,%v); want (%q,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
