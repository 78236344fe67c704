package binary

import (
	"crypto/ed25519"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	// LengthSize is the size of the length prefix of strings and sequences.
	LengthSize = 4

	PublicKeySize = ed25519.PublicKeySize
)

// SizeOfString returns the encoded size of s.
func SizeOfString(s string) int {
	return LengthSize + len(s)
}

// AppendString writes a u32 length prefix followed by the raw bytes of s.
// There is no null terminator.
func AppendString(dst []byte, s string) []byte {
	dst = AppendUint32(dst, uint32(len(s)))
	return append(dst, s...)
}

// AppendBytes writes a u32 length prefix followed by b.
func AppendBytes(dst []byte, b []byte) []byte {
	dst = AppendUint32(dst, uint32(len(b)))
	return append(dst, b...)
}

// AppendFixedBytes writes b verbatim.
func AppendFixedBytes(dst []byte, b []byte) []byte {
	return append(dst, b...)
}

// AppendKey32 writes the 32 byte key verbatim. A nil key is written as
// 32 zero bytes.
func AppendKey32(dst []byte, key ed25519.PublicKey) []byte {
	var buf [PublicKeySize]byte
	copy(buf[:], key)
	return append(dst, buf[:]...)
}

func GetString(src []byte, dst *string, offset *int) error {
	var b []byte
	start := *offset
	if err := GetBytes(src, &b, offset); err != nil {
		return err
	}

	if !utf8.Valid(b) {
		*offset = start
		return errors.Wrapf(ErrInvalidEncoding, "string at offset %d is not valid utf-8", start)
	}

	*dst = string(b)
	return nil
}

func GetBytes(src []byte, dst *[]byte, offset *int) error {
	cursor := *offset

	var length uint32
	if err := GetUint32(src, &length, &cursor); err != nil {
		return err
	}
	if err := checkRemaining(src, cursor, int(length)); err != nil {
		return err
	}

	b := make([]byte, length)
	copy(b, src[cursor:])

	*dst = b
	*offset = cursor + int(length)
	return nil
}

// GetFixedBytes fills dst from src verbatim.
func GetFixedBytes(src []byte, dst []byte, offset *int) error {
	if err := checkRemaining(src, *offset, len(dst)); err != nil {
		return err
	}
	copy(dst, src[*offset:])
	*offset += len(dst)
	return nil
}

// GetKey32 reads a 32 byte key into a newly allocated slice.
func GetKey32(src []byte, dst *ed25519.PublicKey, offset *int) error {
	if err := checkRemaining(src, *offset, PublicKeySize); err != nil {
		return err
	}
	key := make(ed25519.PublicKey, PublicKeySize)
	copy(key, src[*offset:])
	*dst = key
	*offset += PublicKeySize
	return nil
}
