package dto

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/guttosm/coating-service/internal/domain/model"
)

var quoteRefPattern = regexp.MustCompile(`(?i)^QT-[0-9A-Z]+-[0-9A-Z]{3}$`)

var sharedValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	v.RegisterStructValidation(dimensionsStructValidation, DimensionsInput{})
	err := v.RegisterValidation("quote_ref", func(fl validator.FieldLevel) bool {
		return quoteRefPattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic("dto: register quote_ref validation: " + err.Error())
	}
	return v
})

// Validator returns the validator shared by every handler.
func Validator() *validator.Validate {
	return sharedValidator()
}

// Validate runs the struct tags of v.
func Validate(v any) error {
	return sharedValidator().Struct(v)
}

// dimensionTags names the rule reported for each axis problem.
var dimensionTags = map[error]string{
	model.ErrDimensionNegative:   "gte_zero",
	model.ErrDimensionTooLarge:   "max_dimension",
	model.ErrDimensionTooPrecise: "max_places",
}

// dimensionsStructValidation rejects axes that are negative, larger than
// model.MaxDimension or more precise than model.MaxDimensionPlaces.
func dimensionsStructValidation(sl validator.StructLevel) {
	d := sl.Current().Interface().(DimensionsInput)
	for _, a := range []struct {
		value      decimal.Decimal
		field, raw string
	}{
		{d.Length, "length", "Length"},
		{d.Width, "width", "Width"},
		{d.Height, "height", "Height"},
	} {
		if err := model.CheckAxis(a.value); err != nil {
			sl.ReportError(a.value, a.field, a.raw, dimensionTags[err], "")
		}
	}
}

// FieldErrors flattens validation errors to field -> failed rule. Other
// errors are reported under "body".
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}
			out[fieldPath(fe)] = rule
		}
		return out
	}
	out["body"] = err.Error()
	return out
}

// fieldPath drops the root struct name from the namespace, so
// "QuoteInput.dimensions.length" becomes "dimensions.length".
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Namespace()
}
