package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"bagshop/internal/domain"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return Password(fl.Field().String())
		})
		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			return domain.CategoryCode(strings.ToUpper(strings.TrimSpace(fl.Field().String()))).Valid()
		})
	})
	return v
}

// Struct validates s against its `validate` tags. Violations come back as a
// VALIDATION_ERROR carrying one FieldError per field, named by JSON name.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Validation(domain.CodeValidation, "invalid input")
	}
	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return domain.Validation(domain.CodeValidation, "invalid input", fields...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "numeric":
		return "must contain only digits"
	case "eqfield":
		return "does not match"
	case "password":
		return "must contain a letter, a digit and a special character"
	case "category":
		return "must be one of TWIN_BAG, REMOOD_BAG, CLO_BAG, MINIMAL_BAG, ACCESSORY"
	default:
		return "is invalid"
	}
}

// Password requires at least one letter, one digit and one non-alphanumeric rune.
// Length is checked separately by the min tag.
func Password(s string) bool {
	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			hasLetter = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLetter && hasDigit && hasSymbol
}

// Qty parses a requested quantity. Missing, non-numeric or non-positive input
// becomes 1; anything above domain.MaxLineQuantity is rejected.
func Qty(s string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return 0, domain.QuantityTooLarge()
	}
	if err != nil || n < 1 {
		return 1, nil
	}
	if n > domain.MaxLineQuantity {
		return 0, domain.QuantityTooLarge()
	}
	return int(n), nil
}

// ID parses a positive numeric resource identifier.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// CategoryCode normalises an optional category filter. Empty means no filter.
func CategoryCode(s string) (domain.CategoryCode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	code := domain.CategoryCode(strings.ToUpper(s))
	if !code.Valid() {
		return "", domain.InvalidCategory(s)
	}
	return code, nil
}
