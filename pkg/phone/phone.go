// Package phone valida teléfonos de clientes con libphonenumber.
package phone

import (
	"errors"
	"strings"

	"github.com/ttacon/libphonenumber"
)

// ErrInvalid número que no es válido para la región.
var ErrInvalid = errors.New("número de teléfono inválido")

// Normalize valida number para region (ISO 3166, ej. "NI") y lo devuelve en formato nacional
// ("8888 1234"). Números de otra región con prefijo +código se devuelven en formato internacional.
// Con region vacía solo recorta espacios.
func Normalize(number, region string) (string, error) {
	number = strings.TrimSpace(number)
	if region == "" {
		return number, nil
	}
	p, err := libphonenumber.Parse(number, region)
	if err != nil {
		return "", ErrInvalid
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", ErrInvalid
	}
	if libphonenumber.GetRegionCodeForNumber(p) == strings.ToUpper(region) {
		return libphonenumber.Format(p, libphonenumber.NATIONAL), nil
	}
	return libphonenumber.Format(p, libphonenumber.INTERNATIONAL), nil
}
