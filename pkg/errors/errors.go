package errors

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidArg is a caller error; malformed or missing input.
	ErrInvalidArg = errors.New("invalid arg")

	// ErrNotFound means the referenced execution, step or job does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState means the operation is not legal given the current lifecycle state.
	ErrInvalidState = errors.New("invalid state")

	// ErrUnavailable is a store level failure (connectivity, timeout). Callers may retry.
	ErrUnavailable = errors.New("unavailable")
)

// Re-exported so callers only import one errors package.
var (
	New      = errors.New
	Newf     = errors.Newf
	Wrap     = errors.Wrap
	Wrapf    = errors.Wrapf
	Is       = errors.Is
	As       = errors.As
	Mark     = errors.Mark
	WithHint = errors.WithHint
	GetHint  = errors.FlattenHints
)

// Unavailable marks err as a store failure, keeping the original message.
// Nil in, nil out.
func Unavailable(err error, op string) error {
	if err == nil {
		return nil
	}
	err = errors.Wrap(err, op)
	err = errors.WithHint(err, "the store may be temporarily unreachable, retry with backoff")
	return errors.Mark(err, ErrUnavailable)
}

// IsRetryable returns true for errors a caller may retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
