// Package validation validates request DTOs and renders field errors in the caller's locale.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/tr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	trtranslations "github.com/go-playground/validator/v10/translations/tr"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
)

var usernameRegexp = regexp.MustCompile(constants.UsernamePattern)

// FieldErrors maps a JSON field name to a translated message
type FieldErrors map[string]string

// Error is returned by Struct when validation fails
type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator wraps validator/v10 with one translator per supported locale
type Validator struct {
	validate      *validator.Validate
	uni           *ut.UniversalTranslator
	defaultLocale string
}

// New builds a Validator with English and Turkish messages
func New(defaultLocale string) (*Validator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, tr.New())

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegexp.MatchString(fl.Field().String())
	}); err != nil {
		return nil, err
	}

	enTrans, _ := uni.GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(v, enTrans); err != nil {
		return nil, err
	}
	trTrans, _ := uni.GetTranslator("tr")
	if err := trtranslations.RegisterDefaultTranslations(v, trTrans); err != nil {
		return nil, err
	}
	if err := registerCustomTranslations(v, enTrans, trTrans); err != nil {
		return nil, err
	}
	if err := registerResponseMessages(enTrans, trTrans); err != nil {
		return nil, err
	}

	if _, found := uni.GetTranslator(defaultLocale); !found {
		defaultLocale = constants.DefaultLocale
	}

	return &Validator{validate: v, uni: uni, defaultLocale: defaultLocale}, nil
}

// Translator returns the translator for locale, falling back to the default one
func (v *Validator) Translator(locale string) ut.Translator {
	if trans, found := v.uni.GetTranslator(locale); found {
		return trans
	}
	trans, _ := v.uni.GetTranslator(v.defaultLocale)
	return trans
}

// Message returns the response text registered under key in locale
func (v *Validator) Message(locale, key string) string {
	if msg, err := v.Translator(locale).T(key); err == nil {
		return msg
	}
	return responseMessages["en"][key]
}

// Supports reports whether messages exist for locale
func (v *Validator) Supports(locale string) bool {
	_, found := v.uni.GetTranslator(locale)
	return found
}

// Struct validates s and returns *Error with messages in locale
func (v *Validator) Struct(s any, locale string) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	trans := v.Translator(locale)
	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		msg := fe.Translate(trans)
		if msg == fe.Error() {
			msg = DefaultMessage(trans.Locale(), fe.Field(), fe.Tag())
		}
		fields[fieldPath(fe)] = msg
	}
	return &Error{Fields: fields}
}

// fieldPath drops the root struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
