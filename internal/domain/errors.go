package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrUsernameTaken       = errors.New("el nombre de usuario ya existe")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrStorage             = errors.New("falla de almacenamiento")
	ErrCreditLimitExceeded = errors.New("límite de crédito excedido")
	ErrOverpayment         = errors.New("el pago no puede ser mayor al saldo")
	ErrInvalidBackupFormat = errors.New("formato de respaldo inválido")
	ErrClientHasBalance    = errors.New("el cliente tiene saldo pendiente")
	ErrProtectedUser       = errors.New("no se puede eliminar al administrador principal")
)

// ValidationError falla de una regla de campo (requerido, numérico, no negativo).
// errors.Is(err, ErrInvalidInput) es verdadero.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// CreditLimitExceededError rechazo de una venta a crédito que dejaría el saldo por encima del límite.
type CreditLimitExceededError struct {
	ClientID  string
	Balance   decimal.Decimal
	Amount    decimal.Decimal
	Projected decimal.Decimal
	Limit     decimal.Decimal
}

func (e *CreditLimitExceededError) Error() string {
	return fmt.Sprintf("límite de crédito excedido: saldo proyectado %s > límite %s",
		e.Projected.StringFixed(2), e.Limit.StringFixed(2))
}

func (e *CreditLimitExceededError) Is(target error) bool { return target == ErrCreditLimitExceeded }

// OverpaymentError rechazo de un abono mayor al saldo pendiente (o no positivo).
type OverpaymentError struct {
	ClientID string
	Amount   decimal.Decimal
	Balance  decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("abono %s inválido para saldo %s", e.Amount.StringFixed(2), e.Balance.StringFixed(2))
}

func (e *OverpaymentError) Is(target error) bool { return target == ErrOverpayment }

// InvalidBackupFormatError el documento de respaldo no tiene la forma esperada. El store no se toca.
type InvalidBackupFormatError struct {
	Reason string
	Err    error
}

func (e *InvalidBackupFormatError) Error() string {
	if e.Err != nil {
		return "formato de respaldo inválido: " + e.Reason + ": " + e.Err.Error()
	}
	return "formato de respaldo inválido: " + e.Reason
}

func (e *InvalidBackupFormatError) Is(target error) bool { return target == ErrInvalidBackupFormat }

func (e *InvalidBackupFormatError) Unwrap() error { return e.Err }
