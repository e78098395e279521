// Package validation checks player and academy forms before they are sent
// and reports failures keyed by JSON field name, the same shape the
// backend uses for its field errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a JSON field name to its messages.
type FieldErrors map[string][]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for _, field := range f.Fields() {
		parts = append(parts, field+": "+strings.Join(f[field], ", "))
	}
	return strings.Join(parts, "; ")
}

// Fields returns the failing field names in sorted order.
func (f FieldErrors) Fields() []string {
	fields := make([]string, 0, len(f))
	for k := range f {
		fields = append(fields, k)
	}
	slices.Sort(fields)
	return fields
}

func (f FieldErrors) First(field string) string {
	if msgs := f[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

var now = time.Now

var ymdPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
			return ymdPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("position", func(fl validator.FieldLevel) bool {
			return slices.Contains(Positions, fl.Field().String())
		})
		_ = v.RegisterValidation("notfutureyear", func(fl validator.FieldLevel) bool {
			return fl.Field().Int() <= int64(now().Year())
		})
		validate = v
	})
	return validate
}

// Validate checks a PlayerForm or AcademyForm. It returns nil when the
// form is valid.
func Validate(form any) FieldErrors {
	err := instance().Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": {err.Error()}}
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], message(fe))
	}
	return out
}

var messages = map[string]string{
	"first_name.min":    "First name must be at least 2 characters",
	"first_name.max":    "First name must be less than 50 characters",
	"last_name.min":     "Last name must be at least 2 characters",
	"last_name.max":     "Last name must be less than 50 characters",
	"date_of_birth.ymd": "Date must be in YYYY-MM-DD format",
	"position.position": "Please select a valid position",
	"country.min":       "Country is required",
	"name.min":          "Academy name must be at least 2 characters",
	"name.max":          "Academy name must be less than 100 characters",
	"email.email":       "Invalid email address",
	"website.url":       "Invalid URL",
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "max":
		return fmt.Sprintf("Number must be less than or equal to %s", fe.Param())
	case "notfutureyear":
		return fmt.Sprintf("Number must be less than or equal to %d", now().Year())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "uuid":
		return "Invalid uuid"
	case "url":
		return "Invalid url"
	default:
		return fmt.Sprintf("Invalid %s", fe.Field())
	}
}
