package validation

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var customMessages = map[string]map[string]string{
	"en": {
		"username": "{0} may only contain letters, digits, dots, dashes and underscores",
	},
	"tr": {
		"username": "{0} yalnızca harf, rakam, nokta, tire ve alt çizgi içerebilir",
	},
}

// Message keys for response-level texts
const (
	MsgValidationFailed = "validation_failed"
	MsgInvalidBody      = "invalid_body"
	MsgInvalidID        = "invalid_id"
)

var responseMessages = map[string]map[string]string{
	"en": {
		MsgValidationFailed: "Validation failed",
		MsgInvalidBody:      "Request body is not valid JSON",
		MsgInvalidID:        "id must be a positive integer",
	},
	"tr": {
		MsgValidationFailed: "Doğrulama başarısız",
		MsgInvalidBody:      "İstek gövdesi geçerli bir JSON değil",
		MsgInvalidID:        "id pozitif bir tam sayı olmalıdır",
	},
}

func registerResponseMessages(translators ...ut.Translator) error {
	for _, trans := range translators {
		for key, text := range responseMessages[trans.Locale()] {
			if err := trans.Add(key, text, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func registerCustomTranslations(v *validator.Validate, translators ...ut.Translator) error {
	for _, trans := range translators {
		for tag, text := range customMessages[trans.Locale()] {
			err := v.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
				return ut.Add(tag, text, true)
			}, func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field())
				return t
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
