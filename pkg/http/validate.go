package http

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// RegisterValidation adds a custom tag. It panics on a bad registration,
// so call it from init.
func RegisterValidation(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// ValidateStruct fills defaults and validates v. Used for payloads that do
// not arrive through echo, such as Kafka messages and CLI request files.
func ValidateStruct(ctx context.Context, v interface{}) error {
	if err := defaults.Set(v); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	return validate.StructCtx(ctx, v)
}

// ReadAndValidateRequest binds the body and query into req, fills defaults and
// validates it. It returns nil when req is usable.
func ReadAndValidateRequest(c echo.Context, req interface{}) []ValidationError {
	if err := c.Bind(req); err != nil {
		return ValidationErrors(err)
	}
	if err := ValidateStruct(c.Request().Context(), req); err != nil {
		return ValidationErrors(err)
	}
	return nil
}

// ValidationErrors converts err into the API error list.
func ValidationErrors(err error) []ValidationError {
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if errors.As(err, &fes) {
		out := make([]ValidationError, len(fes))
		for i, fe := range fes {
			out[i] = fieldError(fe)
		}
		return out
	}
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg = fmt.Sprint(he.Message)
	}
	return []ValidationError{{Code: "ERR_MALFORMED", Message: msg}}
}

// fieldPath drops the root type from the namespace: ScanRequest.profile.dayPillar
// becomes profile.dayPillar.
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

var tagMessages = map[string]string{
	"required": "is required",
	"ganji":    "must be a sexagenary pillar such as 갑자",
	"gt":       "must be greater than %s",
	"gte":      "must be at least %s",
	"lt":       "must be less than %s",
	"lte":      "must be at most %s",
	"ltfield":  "must be less than %s",
	"max":      "must be at most %s",
	"min":      "must be at least %s",
	"oneof":    "must be one of %s",
}

func fieldError(fe validator.FieldError) ValidationError {
	path := fieldPath(fe)
	ve := ValidationError{
		Code:  "ERR_" + strings.ToUpper(fe.Tag()),
		Field: path,
	}

	tmpl, ok := tagMessages[fe.Tag()]
	if !ok {
		ve.Message = fmt.Sprintf("%s failed %q", path, fe.Tag())
		return ve
	}
	param := fe.Param()
	switch fe.Tag() {
	case "oneof":
		opts := strings.Fields(param)
		ve.Params = map[string]interface{}{"options": opts}
		param = strings.Join(opts, ", ")
	case "min", "max":
		switch fe.Kind() {
		case reflect.String:
			tmpl += " characters"
		case reflect.Slice, reflect.Map:
			tmpl += " items"
		}
		ve.Params = map[string]interface{}{fe.Tag(): param}
	case "gt", "gte", "lt", "lte", "ltfield":
		ve.Params = map[string]interface{}{"limit": param}
	}
	if strings.Contains(tmpl, "%s") {
		ve.Message = path + " " + fmt.Sprintf(tmpl, param)
	} else {
		ve.Message = path + " " + tmpl
	}
	return ve
}
