//go:build !integration

package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetTranslatorIsShared(t *testing.T) {
	assert.Same(t, GetTranslator(), GetTranslator())
}

func TestTranslate(t *testing.T) {
	tr := NewTranslator()

	assert.Equal(t, "The quote is missing required selections", tr.Translate(ErrKeyIncompleteQuote, "en"))
	assert.Equal(t, "De offerte mist verplichte keuzes", tr.Translate(ErrKeyIncompleteQuote, "nl"))
	assert.Equal(t, "Requisição inválida", tr.Translate(ErrKeyInvalidRequest, "pt"))

	// Unsupported or empty locales read the default messages.
	assert.Equal(t, "Quote not found", tr.Translate(ErrKeyQuoteNotFound, "fr"))
	assert.Equal(t, "Quote not found", tr.Translate(ErrKeyQuoteNotFound, ""))

	// Unknown keys come back verbatim.
	assert.Equal(t, "error.quote.lost", tr.Translate("error.quote.lost", "nl"))
}

func TestNegotiate(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", DefaultLocale},
		{"nl", "nl"},
		{"EN", "en"},
		{"en-US", "en"},
		{"pt-BR,pt;q=0.9", "pt"},
		{"nl-BE,en;q=0.5", "nl"},
		{"en-GB,en;q=0.9,pt;q=0.8", "en"},
		{"fr-FR,fr;q=0.9,nl;q=0.5", "nl"},
		{"fr", DefaultLocale},
		{"=;q=x", DefaultLocale},
	}
	for _, tc := range cases {
		t.Run("header="+tc.header, func(t *testing.T) {
			assert.Equal(t, tc.want, Negotiate(tc.header))
		})
	}
}

func TestGetLocaleReadsHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/api/quotes/estimate", nil)
	c.Request.Header.Set(AcceptLanguageHeader, "pt-PT")

	assert.Equal(t, "pt", GetLocale(c))
}

func TestMessagesCoverEveryKeyInEveryLocale(t *testing.T) {
	messages := defaultMessages()
	for key := range messages[DefaultLocale] {
		for locale, m := range messages {
			assert.Containsf(t, m, key, "locale %s is missing %s", locale, key)
		}
	}
}
