package httperr

import "errors"

type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindNotFound
	KindForbidden
	KindUnauthorized
	KindUnavailable
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	case KindUnavailable:
		return "unavailable"
	case KindStore:
		return "store"
	}
	return "unknown"
}

// Error is a classified application error. Code is the stable,
// machine-readable identifier sent to clients.
type Error struct {
	Kind Kind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(code string) error   { return &Error{Kind: KindValidation, Code: code} }
func Conflict(code string) error     { return &Error{Kind: KindConflict, Code: code} }
func NotFound(code string) error     { return &Error{Kind: KindNotFound, Code: code} }
func Forbidden(code string) error    { return &Error{Kind: KindForbidden, Code: code} }
func Unauthorized(code string) error { return &Error{Kind: KindUnauthorized, Code: code} }
func Unavailable(code string) error  { return &Error{Kind: KindUnavailable, Code: code} }

func Store(err error) error {
	return &Error{Kind: KindStore, Code: "store_error", Err: err}
}

// As extracts the classified error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

func Is(err error, code string) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
