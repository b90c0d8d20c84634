package httpx

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate = newValidator()

	isbn10Pattern = regexp.MustCompile(`^\d{9}[\dX]$`)
	isbn13Pattern = regexp.MustCompile(`^\d{13}$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("isbn", validateISBN)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// NormalizeISBN strips hyphens and spaces.
func NormalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	return strings.ReplaceAll(isbn, " ", "")
}

// ValidISBN reports whether isbn is a 10 or 13 digit ISBN after normalization.
func ValidISBN(isbn string) bool {
	isbn = NormalizeISBN(isbn)
	switch len(isbn) {
	case 10:
		return isbn10Pattern.MatchString(isbn)
	case 13:
		return isbn13Pattern.MatchString(isbn)
	}
	return false
}

func validateISBN(fl validator.FieldLevel) bool {
	return ValidISBN(fl.Field().String())
}

// ValidateStruct runs struct tag validation and returns field level details.
func ValidateStruct(s any) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ErrorDetail{{Field: "", Message: err.Error()}}
	}

	details := make([]ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		param := fe.Param()

		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, param)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, param)
		case "isbn":
			message = fmt.Sprintf("%s must be a valid ISBN (10 or 13 digits)", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		details = append(details, ErrorDetail{
			Field:   field,
			Message: message,
		})
	}
	return details
}
