package per

import (
	"errors"
	"fmt"

	"github.com/thebagchi/ngap-go/lib/bitbuffer"
)

var (
	// ErrOutOfBounds is returned when the input ends before a field does.
	ErrOutOfBounds = bitbuffer.ErrOutOfBounds

	// ErrValueOutOfRange is returned when a value (or a length) lies outside
	// its PER-visible constraint and no extension escape applies. On encode it
	// signals a caller bug; on decode, corrupt input.
	ErrValueOutOfRange = errors.New("per: value out of range")

	// ErrLengthMismatch is returned when an open type's declared length does
	// not match what its content decoder consumed.
	ErrLengthMismatch = errors.New("per: length mismatch")
)

func rangeError(what string, value any, lb, ub any) error {
	return fmt.Errorf("%w: %s %v not in [%v, %v]", ErrValueOutOfRange, what, value, lb, ub)
}
