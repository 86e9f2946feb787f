package models

import "errors"

// Kind is the closed set of failure kinds the point service can report.
type Kind uint8

const (
	KindUnexpected Kind = iota
	KindInvalidAmount
	KindInsufficientBalance
	KindMaxPointExceeded
	KindBadArgument
	KindUserNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidAmount:
		return "invalid_amount"
	case KindInsufficientBalance:
		return "insufficient_balance"
	case KindMaxPointExceeded:
		return "max_point_exceeded"
	case KindBadArgument:
		return "bad_argument"
	case KindUserNotFound:
		return "user_not_found"
	default:
		return "unexpected"
	}
}

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is
// regardless of the message carried.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidAmount       = &Error{Kind: KindInvalidAmount}
	ErrInsufficientBalance = &Error{Kind: KindInsufficientBalance}
	ErrMaxPointExceeded    = &Error{Kind: KindMaxPointExceeded}
	ErrBadArgument         = &Error{Kind: KindBadArgument}
	ErrUserNotFound        = &Error{Kind: KindUserNotFound}
)

func newError(kind Kind, msg string) error { return &Error{Kind: kind, Message: msg} }

func BadArgument(msg string) error { return newError(KindBadArgument, msg) }

func UserNotFound(msg string) error { return newError(KindUserNotFound, msg) }

// KindOf returns the kind of the first *Error in err's chain, KindUnexpected otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}
