package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// DigitsOnly strips every non-digit character from s. Phone numbers are
// stored in this form.
func DigitsOnly(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// New returns a validator configured for the API request structs: error
// fields are reported under their json names, and the custom
// emailformat and phonedigits rules are registered.
func New() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// emailformat mirrors the documented pattern rather than the
	// RFC 5322 check the builtin email tag performs.
	v.RegisterValidation("emailformat", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	})

	// phonedigits accepts separators but requires 10 to 15 digits overall.
	v.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
		n := len(DigitsOnly(fl.Field().String()))
		return n >= 10 && n <= 15
	})

	return v
}

// fieldLabels maps json field names to the labels used in error messages.
var fieldLabels = map[string]string{
	"fullName":        "Full Name",
	"name":            "Name",
	"email":           "Email",
	"phone":           "Phone number",
	"password":        "Password",
	"confirmPassword": "Confirm Password",
	"title":           "Title",
	"description":     "Description",
	"price":           "Price",
	"image":           "Image",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// Errors flattens a validator error into the field→message map returned
// by the API. All failing fields are reported, not just the first. A nil
// error yields a nil map.
func Errors(err error) map[string]string {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}

	messages := make(map[string]string, len(verrs))
	for _, e := range verrs {
		messages[e.Field()] = messageFor(e)
	}
	return messages
}

func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return label(e.Field()) + " is required"
	case "min":
		return label(e.Field()) + " must be at least " + e.Param() + " characters long"
	case "emailformat":
		return "Must be a valid email format"
	case "phonedigits":
		return "Phone must contain 10 to 15 digits only"
	case "eqfield":
		return "Passwords do not match"
	case "gt":
		return label(e.Field()) + " must be a positive number"
	default:
		return label(e.Field()) + " is invalid"
	}
}
