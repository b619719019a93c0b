// Package validation wires go-playground/validator with the field rules
// shared by the back-office entities and adapts it to echo's Validator
// interface so handlers can call c.Validate.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	sizeRe     = regexp.MustCompile(`^(\d+)\s?(sqft|sqm|acres)$`)
	phone10Re  = regexp.MustCompile(`^\d{10}$`)
	phoneRe    = regexp.MustCompile(`^\+?\d{7,15}$`)
	imageURLRe = regexp.MustCompile(`^(https?://)?([\da-zA-Z.-]+)\.([a-zA-Z.]{2,6})([/\w .%~+-]*)*/?$`)
)

// Validator validates structs tagged with `validate`.  The zero value is
// not usable; construct with New.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the custom rules registered:
//
//	startsletter  – first rune is a letter
//	nodigitprefix – first rune is not a digit
//	propsize      – "<positive int><space?><sqft|sqm|acres>"
//	phone10       – exactly ten digits
//	phone         – 7 to 15 digits with an optional leading +
//	imageurl      – http(s) URL or bare host/path
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	must(v.RegisterValidation("startsletter", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return false
		}
		return s[0] >= 'A' && s[0] <= 'Z' || s[0] >= 'a' && s[0] <= 'z'
	}))
	must(v.RegisterValidation("nodigitprefix", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, r := range s {
			return !unicode.IsDigit(r)
		}
		return false
	}))
	must(v.RegisterValidation("propsize", func(fl validator.FieldLevel) bool {
		return ValidSize(fl.Field().String())
	}))
	must(v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phone10Re.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("imageurl", func(fl validator.FieldLevel) bool {
		return imageURLRe.MatchString(fl.Field().String())
	}))
	return &Validator{v: v}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// ValidSize reports whether s is a positive whole number followed by an
// optional space and one of sqft, sqm or acres.
func ValidSize(s string) bool {
	m := sizeRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	// Any magnitude is accepted as long as it is not all zeros.
	return strings.TrimLeft(m[1], "0") != ""
}

// Validate implements echo.Validator.  Rule violations are returned as
// *Error; anything else (e.g. a non-struct argument) is returned as is.
func (cv *Validator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(ves))}
	for _, fe := range ves {
		out.Fields = append(out.Fields, FieldError{
			Field:   trimNamespace(fe.Namespace()),
			Rule:    fe.Tag(),
			Message: describe(fe),
		})
	}
	return out
}

// FieldError describes one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error is returned by Validate when one or more rules fail.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// trimNamespace drops the leading struct name, e.g. "Property.name" -> "name".
func trimNamespace(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	field := trimNamespace(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "startsletter":
		return field + " must start with a letter"
	case "nodigitprefix":
		return field + " cannot start with a number"
	case "propsize":
		return field + " must be a positive number followed by sqft, sqm or acres (e.g. '1000 sqft')"
	case "phone10":
		return field + " must be a 10-digit number"
	case "phone":
		return field + " must be a phone number of 7 to 15 digits"
	case "imageurl":
		return field + " must be a valid URL"
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
