package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	ctxutil "github.com/ufukozendev/noobgg-sub002/pkg/context"
	"github.com/ufukozendev/noobgg-sub002/pkg/validation"
	"golang.org/x/text/language"
)

// Locale negotiates the response language from Accept-Language. The first
// entry of supported is the fallback. The chosen locale and its translator
// are stored on the gin context and the locale on the request context.
func Locale(v *validation.Validator, supported []string) gin.HandlerFunc {
	if len(supported) == 0 {
		supported = []string{constants.DefaultLocale}
	}
	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		tags = append(tags, language.Make(s))
	}
	matcher := language.NewMatcher(tags)

	return func(c *gin.Context) {
		locale := negotiate(matcher, supported, c.GetHeader(constants.HeaderAcceptLanguage))

		c.Set(constants.GinKeyLocale, locale)
		c.Set(constants.GinKeyTranslator, v.Translator(locale))
		c.Request = c.Request.WithContext(ctxutil.WithLocale(c.Request.Context(), locale))
		c.Header(constants.HeaderContentLanguage, locale)

		c.Next()
	}
}

func negotiate(matcher language.Matcher, supported []string, header string) string {
	if header == "" {
		return supported[0]
	}
	requested, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(requested) == 0 {
		return supported[0]
	}
	_, index, confidence := matcher.Match(requested...)
	if confidence == language.No {
		return supported[0]
	}
	return supported[index]
}
