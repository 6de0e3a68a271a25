package stripe

import (
	"reflect"
	"strings"

	"github.com/broady/stripe/form"
	"github.com/go-playground/validator/v10"
)

var (
	validate = newValidator()
	isoCheck = validator.New()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name so messages match the API's param
	// names ("limit: must be at most 100").
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get(form.TagName), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("currency", validateCurrency); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("known", validateKnown); err != nil {
		panic(err)
	}
	return v
}

// validateCurrency accepts lowercase ISO 4217 codes.
func validateCurrency(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 3 || s != strings.ToLower(s) {
		return false
	}
	return isoCheck.Var(strings.ToUpper(s), "iso4217") == nil
}

// validateKnown accepts enum values in the type's known set. It is used on
// closed enum params.
func validateKnown(fl validator.FieldLevel) bool {
	k, ok := fl.Field().Interface().(interface{ IsKnown() bool })
	return ok && k.IsKnown()
}

// ValidateParams runs struct validation on params.
func ValidateParams(params any) error {
	if params == nil {
		return nil
	}
	rv := reflect.ValueOf(params)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	if err := validate.Struct(params); err != nil {
		return invalidRequestError(err)
	}
	return nil
}
