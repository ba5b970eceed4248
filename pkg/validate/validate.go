package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	// report json names so errors match the payload the client sent
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return val
}

// Struct validates s against its `validate` tags. The returned error, if any,
// is validator.ValidationErrors.
func Struct(s any) error {
	return v.Struct(s)
}

// FirstFieldError returns the first field failure of err, if err came from Struct.
func FirstFieldError(err error) (validator.FieldError, bool) {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return nil, false
	}
	return verrs[0], true
}
