package redelegate

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var (
	ErrBufferTooSmall      = errors.New("buffer too small")
	ErrWrongAccountType    = errors.New("wrong account type")
	ErrTrailingBytes       = errors.New("trailing bytes")
	ErrUnknownVariant      = errors.New("unknown variant")
	ErrAccountListMismatch = errors.New("account list mismatch")
	ErrMissingSignerFlag   = errors.New("missing signer flag")
)

// Reasons reported by AccountListMismatchError.
const (
	MismatchReasonCount    = "count"
	MismatchReasonAddress  = "address"
	MismatchReasonWritable = "writable"
)

// BufferTooSmallError is returned when a buffer cannot hold the minimum
// encoding of the value being decoded.
type BufferTooSmallError struct {
	Expected int
	Actual   int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("buffer too small: need %d bytes, got %d", e.Expected, e.Actual)
}

func (e *BufferTooSmallError) Is(target error) bool {
	return target == ErrBufferTooSmall
}

// WrongAccountTypeError is returned when an account discriminator does not
// match. Expected is empty when no known account type matches.
type WrongAccountTypeError struct {
	Expected []byte
	Found    []byte
}

func (e *WrongAccountTypeError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("wrong account type: unknown discriminator %x", e.Found)
	}
	return fmt.Sprintf("wrong account type: expected discriminator %x, found %x", e.Expected, e.Found)
}

func (e *WrongAccountTypeError) Is(target error) bool {
	return target == ErrWrongAccountType
}

type TrailingBytesError struct {
	Remaining int
}

func (e *TrailingBytesError) Error() string {
	return fmt.Sprintf("trailing bytes: %d bytes left after decoding", e.Remaining)
}

func (e *TrailingBytesError) Is(target error) bool {
	return target == ErrTrailingBytes
}

// UnknownVariantError is returned when an enum ordinal is out of range.
type UnknownVariantError struct {
	Type    string
	Ordinal uint32
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown variant: %s ordinal %d", e.Type, e.Ordinal)
}

func (e *UnknownVariantError) Is(target error) bool {
	return target == ErrUnknownVariant
}

// AccountListMismatchError is returned when the accounts supplied for an
// instruction differ from what it requires at Index. For a count mismatch,
// Index is the first position present in only one of the lists.
type AccountListMismatchError struct {
	Index    int
	Expected ed25519.PublicKey
	Found    ed25519.PublicKey
	Reason   string
}

func (e *AccountListMismatchError) Error() string {
	switch e.Reason {
	case MismatchReasonCount:
		if len(e.Found) == 0 {
			return fmt.Sprintf("account list mismatch: missing account %d (%s)", e.Index, encodeKey(e.Expected))
		}
		return fmt.Sprintf("account list mismatch: unexpected account %d (%s)", e.Index, encodeKey(e.Found))
	case MismatchReasonWritable:
		return fmt.Sprintf("account list mismatch: account %d (%s) must be writable", e.Index, encodeKey(e.Expected))
	default:
		return fmt.Sprintf(
			"account list mismatch: account %d expected %s, found %s",
			e.Index,
			encodeKey(e.Expected),
			encodeKey(e.Found),
		)
	}
}

func (e *AccountListMismatchError) Is(target error) bool {
	return target == ErrAccountListMismatch
}

type MissingSignerFlagError struct {
	Index   int
	Account ed25519.PublicKey
}

func (e *MissingSignerFlagError) Error() string {
	return fmt.Sprintf("missing signer flag: account %d (%s) must sign", e.Index, encodeKey(e.Account))
}

func (e *MissingSignerFlagError) Is(target error) bool {
	return target == ErrMissingSignerFlag
}

func encodeKey(key ed25519.PublicKey) string {
	if len(key) == 0 {
		return "<none>"
	}
	return base58.Encode(key)
}
