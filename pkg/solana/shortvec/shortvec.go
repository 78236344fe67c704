// Package shortvec implements the compact u16 length prefix used by the
// transaction wire format.
package shortvec

import (
	"math"

	"github.com/pkg/errors"

	"github.com/code-payments/redelegate-client/pkg/solana/binary"
)

// MaxEncodedSize is the largest encoding of a length, in bytes.
const MaxEncodedSize = 3

var ErrLengthTooLarge = errors.Errorf("length exceeds %d", math.MaxUint16)

// AppendLen appends the encoding of length to dst: seven bits per byte, low
// bits first, with the high bit set on every byte but the last.
func AppendLen(dst []byte, length int) ([]byte, error) {
	if length < 0 || length > math.MaxUint16 {
		return dst, ErrLengthTooLarge
	}

	for {
		b := byte(length & 0x7f)
		length >>= 7
		if length == 0 {
			return append(dst, b), nil
		}
		dst = append(dst, b|0x80)
	}
}

// GetLen decodes a length from src at offset. The offset only advances on
// success.
func GetLen(src []byte, dst *int, offset *int) error {
	cursor := *offset

	var val int
	for i := 0; ; i++ {
		if i == MaxEncodedSize {
			return errors.Errorf("invalid size: more than %d bytes", MaxEncodedSize)
		}

		var b uint8
		if err := binary.GetUint8(src, &b, &cursor); err != nil {
			return err
		}

		val |= int(b&0x7f) << (i * 7)
		if b&0x80 == 0 {
			break
		}
	}

	if val > math.MaxUint16 {
		return ErrLengthTooLarge
	}

	*dst = val
	*offset = cursor
	return nil
}
