package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("zip5", func(fl validator.FieldLevel) bool {
			return domain.ValidZip(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// validateStruct checks the struct tags of dst and reports the first failing
// field as an apperr.ValidationError with its JSON path ("order.dimensions.length").
func validateStruct(dst any) error {
	err := validatorInstance().Struct(dst)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) || len(fes) == 0 {
		return fmt.Errorf("%w: %v", apperr.ErrInvalid, err)
	}
	fe := fes[0]
	return apperr.Validation(fieldPath(fe), reason(fe))
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be > " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " elements"
	case "max":
		return "must have at most " + fe.Param() + " elements"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "zip5":
		return "must be a 5-digit postal code"
	case "unique":
		return "must not contain duplicates"
	default:
		return "is invalid"
	}
}
