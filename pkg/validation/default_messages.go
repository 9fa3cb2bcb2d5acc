package validation

import "fmt"

// DefaultMessage is used for tags that have no registered translation
func DefaultMessage(locale, field, tag string) string {
	if locale == "tr" {
		switch tag {
		case "required":
			return fmt.Sprintf("%s zorunlu bir alandır", field)
		case "gtfield":
			return fmt.Sprintf("%s daha sonraki bir değer olmalıdır", field)
		default:
			return fmt.Sprintf("%s geçersiz", field)
		}
	}

	switch tag {
	case "required":
		return fmt.Sprintf("%s is a required field", field)
	case "gtfield":
		return fmt.Sprintf("%s must be later than the related field", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
