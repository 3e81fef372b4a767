package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound    = errors.New("recurso no encontrado")
	ErrValidation  = errors.New("entrada inválida")
	ErrConnection  = errors.New("no se pudo obtener una conexión a la base de datos")
	ErrTransaction = errors.New("la transacción falló")
)

// ValidationError describe un campo rechazado antes de tocar la base de datos.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye el error para un campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConnectionError indica que no se pudo obtener una conexión del pool.
// Ocurre antes de abrir cualquier transacción, por lo que no requiere rollback.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: %v", ErrConnection.Error(), e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrConnection).
func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

// TransactionError indica que una sentencia, el begin o el commit fallaron dentro
// de una unidad de trabajo. Cuando se devuelve, el rollback ya fue ejecutado.
type TransactionError struct {
	Op  string // begin, exec, commit
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transacción (%s): %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrTransaction).
func (e *TransactionError) Is(target error) bool { return target == ErrTransaction }

// IsRecoverable indica si el llamador puede resolver el error localmente
// (redirigir o volver a mostrar el formulario con un mensaje).
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation)
}
