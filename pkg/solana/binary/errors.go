package binary

import (
	"github.com/pkg/errors"
)

var (
	// ErrTruncatedInput indicates fewer bytes remain than the value requires.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrInvalidTag indicates an option presence flag, bool or fixed option
	// tag holding something other than 0 or 1.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrInvalidEncoding indicates string bytes that are not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// checkRemaining checks that n bytes are available at offset in src.
func checkRemaining(src []byte, offset, n int) error {
	if offset < 0 || n < 0 || offset > len(src) || len(src)-offset < n {
		return errors.Wrapf(ErrTruncatedInput, "need %d bytes at offset %d, have %d", n, offset, remaining(src, offset))
	}
	return nil
}

func remaining(src []byte, offset int) int {
	if offset < 0 || offset > len(src) {
		return 0
	}
	return len(src) - offset
}

func invalidTag(kind string, tag uint32, offset int) error {
	return errors.Wrapf(ErrInvalidTag, "%s tag %d at offset %d", kind, tag, offset)
}
