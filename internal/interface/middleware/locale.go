package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/i18n"
)

const (
	ctxLang       = "lang"
	ctxTranslator = "i18n"
)

// Locale negotiates the response language from ?lang= and Accept-Language.
func Locale(tr *i18n.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Negotiate(c.Query("lang"), c.GetHeader("Accept-Language"))
		c.Set(ctxLang, lang)
		c.Set(ctxTranslator, tr)
		c.Header("Content-Language", i18n.Tag(lang))
		c.Next()
	}
}

// Lang is the negotiated locale (en, ru, tm).
func Lang(c *gin.Context) string {
	if l := c.GetString(ctxLang); l != "" {
		return l
	}
	return i18n.LangEN
}

// T translates a message id into the request language.
func T(c *gin.Context, id string) string {
	tr, _ := c.Get(ctxTranslator)
	t, ok := tr.(*i18n.Translator)
	if !ok {
		return id
	}
	return t.T(Lang(c), id)
}
