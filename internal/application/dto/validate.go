package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// decimal.Decimal se valida como número (gte=0, gt=0).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate aplica las etiquetas validate y devuelve el primer campo inválido como *domain.ValidationError.
func Validate(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError("", err.Error())
	}
	fe := verrs[0]
	return domain.NewValidationError(fieldPath(fe.Namespace()), tagMessage(fe))
}

// fieldPath quita el nombre del struct raíz: "CreateSaleRequest.items[0].quantity" -> "items[0].quantity".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "es obligatorio"
	case "gt":
		if fe.Param() == "0" {
			return "debe ser mayor que cero"
		}
		return "debe ser mayor que " + fe.Param()
	case "gte":
		if fe.Param() == "0" {
			return "no puede ser negativo"
		}
		return "no puede ser menor que " + fe.Param()
	case "min":
		return "debe tener al menos " + fe.Param()
	case "max":
		return "no puede superar " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "datetime":
		return "fecha inválida (AAAA-MM-DD)"
	default:
		return fmt.Sprintf("inválido (%s)", fe.Tag())
	}
}
