package cart

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindInsufficientStock
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInternal          = errors.New("internal error")
)

// Messages are part of the public response contract.
const (
	MsgMissingProductID  = "Falta productId"
	MsgInvalidProductID  = "productId inválido"
	MsgInvalidAddQty     = "Cantidad inválida (debe ser > 0)"
	MsgInvalidUpdateQty  = "qty/cantidad debe ser número >= 0"
	MsgProductNotFound   = "Producto no encontrado"
	MsgLineNotFound      = "No estaba en el carrito"
	MsgInsufficientStock = "Producto sin stock suficiente"
	MsgInternal          = "Error interno del servidor"
)

// Error is the only failure type returned by Service. Available is set for
// KindInsufficientStock.
type Error struct {
	Kind      Kind
	Message   string
	Available int
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindValidation:
		return target == ErrValidation
	case KindNotFound:
		return target == ErrNotFound
	case KindInsufficientStock:
		return target == ErrInsufficientStock
	case KindInternal:
		return target == ErrInternal
	}
	return false
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func insufficientStock(available int) *Error {
	return &Error{Kind: KindInsufficientStock, Message: MsgInsufficientStock, Available: available}
}

func internalError(err error) *Error {
	return &Error{Kind: KindInternal, Message: MsgInternal, Err: err}
}

// KindOf reports the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
