// Package i18n translates user-facing messages for the coating service.
package i18n

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	// DefaultLocale is the fallback locale.
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once

	// supported must list DefaultLocale first so the matcher falls back to it.
	supported = []language.Tag{language.English, language.Portuguese, language.Dutch}
	matcher   = language.NewMatcher(supported)
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the built-in messages.
func NewTranslator() *Translator {
	return &Translator{messages: defaultMessages()}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, falling back to
// DefaultLocale and then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Negotiate picks the best supported locale for an Accept-Language value.
func Negotiate(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// GetLocale negotiates the request locale from the Accept-Language header.
func GetLocale(c *gin.Context) string {
	return Negotiate(c.GetHeader(AcceptLanguageHeader))
}

func defaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			ErrKeyInvalidRequest:     "Invalid request",
			ErrKeyInvalidRequestBody: "Invalid request body",
			ErrKeyInternalError:      "An unexpected error occurred",
			ErrKeyUnauthorized:       "Unauthorized",
			ErrKeyInvalidCredentials: "Invalid email or password",
			ErrKeyForbidden:          "Forbidden",
			ErrKeyNotFound:           "Not found",
			ErrKeyRateLimitExceeded:  "Too many requests, please try again later",
			ErrKeyConflict:           "Conflict",
			ErrKeyInvalidToken:       "Invalid or expired token",
			ErrKeyTokenRequired:      "Authentication token is required",
			ErrKeyTimeout:            "The request took too long",
			ErrKeyUnavailable:        "Service temporarily unavailable",
			ErrKeyEmailTaken:         "An account with this email already exists",
			ErrKeyIncompleteQuote:    "The quote is missing required selections",
			ErrKeyUnknownOption:      "The quote refers to options that are not in the catalog",
			ErrKeyInvalidStep:        "The form step is not valid",
			ErrKeyInvalidDimensions:  "The part dimensions are out of range",
			ErrKeyQuoteNotFound:      "Quote not found",
			ErrKeyInvalidTransition:  "The quote cannot move to that status",
			ErrKeyInvalidCatalog:     "The catalog is not valid",
			ErrKeyPostNotFound:       "Post not found",
			ErrKeyInvalidPost:        "The post is not valid",
			ErrKeyIdempotencyReuse:   "Idempotency key was already used for a different request",

			SuccessKeyQuoteEstimated:  "Quote estimated",
			SuccessKeyQuoteSubmitted:  "Quote submitted",
			SuccessKeyCatalogPublish:  "Catalog published",
			SuccessKeyContactReceived: "Thanks, we will be in touch shortly",
		},
		"pt": {
			ErrKeyInvalidRequest:     "Requisição inválida",
			ErrKeyInvalidRequestBody: "Corpo da requisição inválido",
			ErrKeyInternalError:      "Ocorreu um erro inesperado",
			ErrKeyUnauthorized:       "Não autorizado",
			ErrKeyInvalidCredentials: "E-mail ou senha inválidos",
			ErrKeyForbidden:          "Proibido",
			ErrKeyNotFound:           "Não encontrado",
			ErrKeyRateLimitExceeded:  "Muitas requisições, tente novamente mais tarde",
			ErrKeyConflict:           "Conflito",
			ErrKeyInvalidToken:       "Token inválido ou expirado",
			ErrKeyTokenRequired:      "Token de autenticação é obrigatório",
			ErrKeyTimeout:            "A requisição demorou demais",
			ErrKeyUnavailable:        "Serviço temporariamente indisponível",
			ErrKeyEmailTaken:         "Já existe uma conta com este e-mail",
			ErrKeyIncompleteQuote:    "O orçamento não tem todas as seleções obrigatórias",
			ErrKeyUnknownOption:      "O orçamento usa opções que não estão no catálogo",
			ErrKeyInvalidStep:        "A etapa do formulário é inválida",
			ErrKeyInvalidDimensions:  "As dimensões da peça estão fora do limite",
			ErrKeyQuoteNotFound:      "Orçamento não encontrado",
			ErrKeyInvalidTransition:  "O orçamento não pode mudar para esse status",
			ErrKeyInvalidCatalog:     "O catálogo é inválido",
			ErrKeyPostNotFound:       "Artigo não encontrado",
			ErrKeyInvalidPost:        "O artigo é inválido",
			ErrKeyIdempotencyReuse:   "A chave de idempotência já foi usada em outra requisição",

			SuccessKeyQuoteEstimated:  "Orçamento calculado",
			SuccessKeyQuoteSubmitted:  "Orçamento enviado",
			SuccessKeyCatalogPublish:  "Catálogo publicado",
			SuccessKeyContactReceived: "Obrigado, entraremos em contato em breve",
		},
		"nl": {
			ErrKeyInvalidRequest:     "Ongeldig verzoek",
			ErrKeyInvalidRequestBody: "Ongeldige aanvraag body",
			ErrKeyInternalError:      "Er is een onverwachte fout opgetreden",
			ErrKeyUnauthorized:       "Niet geautoriseerd",
			ErrKeyInvalidCredentials: "Ongeldig e-mailadres of wachtwoord",
			ErrKeyForbidden:          "Verboden",
			ErrKeyNotFound:           "Niet gevonden",
			ErrKeyRateLimitExceeded:  "Te veel verzoeken, probeer het later opnieuw",
			ErrKeyConflict:           "Conflict",
			ErrKeyInvalidToken:       "Ongeldig of verlopen token",
			ErrKeyTokenRequired:      "Authenticatietoken is vereist",
			ErrKeyTimeout:            "Het verzoek duurde te lang",
			ErrKeyUnavailable:        "Dienst tijdelijk niet beschikbaar",
			ErrKeyEmailTaken:         "Er bestaat al een account met dit e-mailadres",
			ErrKeyIncompleteQuote:    "De offerte mist verplichte keuzes",
			ErrKeyUnknownOption:      "De offerte bevat opties die niet in de catalogus staan",
			ErrKeyInvalidStep:        "De formulierstap is ongeldig",
			ErrKeyInvalidDimensions:  "De afmetingen van het onderdeel vallen buiten het bereik",
			ErrKeyQuoteNotFound:      "Offerte niet gevonden",
			ErrKeyInvalidTransition:  "De offerte kan niet naar die status",
			ErrKeyInvalidCatalog:     "De catalogus is ongeldig",
			ErrKeyPostNotFound:       "Artikel niet gevonden",
			ErrKeyInvalidPost:        "Het artikel is ongeldig",
			ErrKeyIdempotencyReuse:   "Idempotentiesleutel is al gebruikt voor een ander verzoek",

			SuccessKeyQuoteEstimated:  "Offerte berekend",
			SuccessKeyQuoteSubmitted:  "Offerte verzonden",
			SuccessKeyCatalogPublish:  "Catalogus gepubliceerd",
			SuccessKeyContactReceived: "Bedankt, we nemen snel contact op",
		},
	}
}
