package validate

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/5w1tchy/password-meter/internal/api/apperr"
)

var v = newValidator()

func newValidator() *validator.Validate {
	vd := validator.New(validator.WithRequiredStructEnabled())
	// report json names, not Go field names
	vd.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return vd
}

// Struct runs `validate` tags on s and converts failures into field errors.
// Non-validation errors are returned as-is.
func Struct(s any, messages map[string]string) ([]apperr.FieldError, error) {
	err := v.Struct(s)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	out := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := messages[fe.Field()]
		if msg == "" {
			msg = fe.Field() + " failed " + fe.Tag()
		}
		out = append(out, apperr.FieldError{Field: fe.Field(), Code: fe.Tag(), Message: msg})
	}
	return out, nil
}

// ClampInt parses raw and clamps it to [1, max]; def on empty or garbage.
func ClampInt(raw string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	if n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}

// ParseBool accepts "1", "true", "yes" (case-insensitive).
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
