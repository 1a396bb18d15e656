package row

import (
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"fensql/pkg/dberror"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// rowValidator returns the shared validator with the byte-width rules registered.
// The stock "max" tag counts runes, the on-page layout counts bytes.
func rowValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
			limit, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return len(fl.Field().String()) <= limit
		})
		_ = v.RegisterValidation("nonul", func(fl validator.FieldLevel) bool {
			return !strings.ContainsRune(fl.Field().String(), 0)
		})
		validate = v
	})
	return validate
}

// Validate checks that r can be serialized: text columns fit their byte
// width and contain no NUL padding bytes. It reports the first violation.
func Validate(r Row) error {
	err := rowValidator().Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return dberror.Wrap(err, dberror.CodeInvalidField, "Validate", "RowCodec")
	}

	fe := fieldErrs[0]
	column := strings.ToLower(fe.Field())
	value, _ := fe.Value().(string)

	switch fe.Tag() {
	case "maxbytes":
		return dberror.From(dberror.ErrFieldTooLong, "%s is %d bytes, limit is %s", column, len(value), fe.Param()).
			At("Validate", "RowCodec")
	default:
		return dberror.From(dberror.ErrInvalidField, "%s failed %q", column, fe.Tag()).
			At("Validate", "RowCodec")
	}
}
