package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags and the localized-field rules.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register installs tag names, aliases and custom rules on v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("pwd", "min=8")       // password minimum length
	v.RegisterAlias("score", "min=1,max=5") // rating range
	_ = v.RegisterValidation("locales", validateLocales)
	_ = v.RegisterValidation("localekeys", validateLocaleKeys)
	_ = v.RegisterValidation("isodate", validateISODate)
}

// localizedText reads a string-keyed map field as a LocalizedText.
func localizedText(fl validator.FieldLevel) (entity.LocalizedText, bool) {
	m := fl.Field()
	if m.Kind() != reflect.Map || m.Type().Key().Kind() != reflect.String || m.Type().Elem().Kind() != reflect.String {
		return nil, false
	}
	t := make(entity.LocalizedText, m.Len())
	iter := m.MapRange()
	for iter.Next() {
		t[entity.Locale(iter.Key().String())] = iter.Value().String()
	}
	return t, true
}

// validateLocales: a non-blank value for every supported locale and no other keys.
func validateLocales(fl validator.FieldLevel) bool {
	t, ok := localizedText(fl)
	return ok && len(t.Unknown(entity.SupportedLocales)) == 0 && t.Complete(entity.SupportedLocales)
}

// validateLocaleKeys: only supported locales as keys. Values may be empty.
func validateLocaleKeys(fl validator.FieldLevel) bool {
	t, ok := localizedText(fl)
	return ok && len(t.Unknown(entity.SupportedLocales)) == 0
}

func localeList() string {
	codes := make([]string, len(entity.SupportedLocales))
	for i, l := range entity.SupportedLocales {
		codes[i] = string(l)
	}
	if len(codes) < 2 {
		return strings.Join(codes, "")
	}
	return strings.Join(codes[:len(codes)-1], ", ") + " and " + codes[len(codes)-1]
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) {
		return map[string]string{"payload": "invalid json"}
	}
	if errors.As(err, &ute) {
		field := ute.Field
		if field == "" {
			field = "payload"
		}
		return map[string]string{field: "must be " + ute.Type.String()}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return "is required"
	case "score":
		return "must be an integer between 1 and 5"
	case "locales":
		return "must contain non-empty " + localeList() + " values"
	case "localekeys":
		return "may only contain " + localeList()
	case "isodate":
		return "must be a date in YYYY-MM-DD format"
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "pwd":
		return "must be at least 8 characters long"
	case "min":
		if isNumeric(fe.Kind()) {
			return "must be greater than or equal to " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumeric(fe.Kind()) {
			return "must be less than or equal to " + param
		}
		return "must be at most " + param + " characters long"
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "gt":
		return "must be greater than " + param
	case "numeric", "number":
		return "must be a number"
	default:
		if param != "" {
			return "failed on '" + fe.Tag() + "' (" + param + ")"
		}
		return "failed on '" + fe.Tag() + "'"
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
