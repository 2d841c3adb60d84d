package wizard

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/barakadvert/storefront/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStep validates the struct owning the fields of one step. Missing
// required fields are reported with requiredMsg; other failures name the fields.
func checkStep(step int, fields any, requiredMsg string) error {
	err := validate.Struct(fields)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &domain.ValidationError{Step: step}
	missing := false
	for _, fe := range verrs {
		out.Fields = append(out.Fields, fe.Field())
		if fe.Tag() == "required" {
			missing = true
		}
	}
	if missing {
		out.Message = requiredMsg
	} else {
		out.Message = "Please check: " + strings.Join(out.Fields, ", ")
	}
	return out
}
