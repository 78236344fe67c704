package redelegate

import (
	"github.com/pkg/errors"

	"github.com/code-payments/redelegate-client/pkg/solana/binary"
)

const (
	// AccountDiscriminatorSize is the width of the tag that prefixes every
	// account owned by the program.
	AccountDiscriminatorSize = 8

	// InstructionDiscriminatorSize is the width of the tag that prefixes
	// instruction data.
	InstructionDiscriminatorSize = 1

	// EnumOrdinalSize is the width of a borsh enum ordinal.
	EnumOrdinalSize = 1

	// StakeStateOrdinalSize is the width of the bincode tag of the native
	// stake state.
	StakeStateOrdinalSize = 4

	// StakeStateV2Size is the allocated size of a native stake account.
	StakeStateV2Size = 200
)

func appendOrdinal(dst []byte, ordinal uint32, size int) []byte {
	switch size {
	case 1:
		return binary.AppendUint8(dst, uint8(ordinal))
	case 2:
		return binary.AppendUint16(dst, uint16(ordinal))
	case 4:
		return binary.AppendUint32(dst, ordinal)
	default:
		return binary.AppendUint64(dst, uint64(ordinal))
	}
}

func getOrdinal(src []byte, dst *uint32, offset *int, size int) error {
	switch size {
	case 1:
		var v uint8
		if err := binary.GetUint8(src, &v, offset); err != nil {
			return err
		}
		*dst = uint32(v)
	case 2:
		var v uint16
		if err := binary.GetUint16(src, &v, offset); err != nil {
			return err
		}
		*dst = uint32(v)
	case 4:
		return binary.GetUint32(src, dst, offset)
	default:
		cursor := *offset
		var v uint64
		if err := binary.GetUint64(src, &v, &cursor); err != nil {
			return err
		}
		if v > uint64(^uint32(0)) {
			return errors.Wrapf(binary.ErrInvalidTag, "ordinal %d at offset %d", v, *offset)
		}
		*dst = uint32(v)
		*offset = cursor
	}
	return nil
}

// getEnum reads an ordinal of the given width and rejects values at or above
// count without advancing offset.
func getEnum(src []byte, dst *uint32, offset *int, size int, typeName string, count uint32) error {
	cursor := *offset

	var ordinal uint32
	if err := getOrdinal(src, &ordinal, &cursor, size); err != nil {
		return err
	}
	if ordinal >= count {
		return &UnknownVariantError{Type: typeName, Ordinal: ordinal}
	}

	*dst = ordinal
	*offset = cursor
	return nil
}

// unmarshalStrict decodes data as a single T and rejects leftover bytes.
func unmarshalStrict[T any](data []byte, dst *T, dec binary.Decoder[T]) error {
	var offset int
	var v T
	if err := dec(data, &v, &offset); err != nil {
		return err
	}
	if offset != len(data) {
		return &TrailingBytesError{Remaining: len(data) - offset}
	}

	*dst = v
	return nil
}

// wrapField names the field that failed to decode. A nil err stays nil.
func wrapField(err error, field string) error {
	return errors.Wrapf(err, "invalid %s", field)
}
