package binary

import (
	"crypto/ed25519"
	"encoding/binary"
)

// OptionSize is the size of the presence flag of an option.
const OptionSize = 1

// Encoder appends the encoding of v to dst.
type Encoder[T any] func(dst []byte, v T) []byte

// Decoder reads a T from src at offset, advancing offset on success.
type Decoder[T any] func(src []byte, dst *T, offset *int) error

// AppendOption writes a 1 byte presence flag, followed by the value iff v
// is non-nil.
func AppendOption[T any](dst []byte, v *T, enc Encoder[T]) []byte {
	if v == nil {
		return append(dst, 0)
	}
	dst = append(dst, 1)
	return enc(dst, *v)
}

// AppendOptionalKey32 encodes an empty key as an absent option.
func AppendOptionalKey32(dst []byte, key ed25519.PublicKey) []byte {
	if len(key) == 0 {
		return append(dst, 0)
	}
	dst = append(dst, 1)
	return AppendKey32(dst, key)
}

// GetOption reads a presence flag and, if set, the value. An absent option
// leaves *dst nil.
func GetOption[T any](src []byte, dst **T, offset *int, dec Decoder[T]) error {
	cursor := *offset

	present, err := getPresence(src, &cursor)
	if err != nil {
		return err
	}

	if !present {
		*dst = nil
		*offset = cursor
		return nil
	}

	var v T
	if err := dec(src, &v, &cursor); err != nil {
		return err
	}

	*dst = &v
	*offset = cursor
	return nil
}

func GetOptionalKey32(src []byte, dst *ed25519.PublicKey, offset *int) error {
	var key *ed25519.PublicKey
	if err := GetOption(src, &key, offset, GetKey32); err != nil {
		return err
	}

	if key == nil {
		*dst = nil
	} else {
		*dst = *key
	}
	return nil
}

func getPresence(src []byte, offset *int) (bool, error) {
	if err := checkRemaining(src, *offset, OptionSize); err != nil {
		return false, err
	}

	switch src[*offset] {
	case 0:
		*offset += 1
		return false, nil
	case 1:
		*offset += 1
		return true, nil
	default:
		return false, invalidTag("option", uint32(src[*offset]), *offset)
	}
}

// Fixed options always occupy tagSize + the value size, with a zeroed value
// when absent. The SPL token program's COption uses a 4 byte tag.

func AppendFixedOptionalKey32(dst []byte, key ed25519.PublicKey, tagSize int) []byte {
	dst = appendFixedTag(dst, len(key) > 0, tagSize)
	return AppendKey32(dst, key)
}

func AppendFixedOptionalUint64(dst []byte, v *uint64, tagSize int) []byte {
	dst = appendFixedTag(dst, v != nil, tagSize)
	if v == nil {
		return AppendUint64(dst, 0)
	}
	return AppendUint64(dst, *v)
}

func GetFixedOptionalKey32(src []byte, dst *ed25519.PublicKey, offset *int, tagSize int) error {
	if err := checkRemaining(src, *offset, tagSize+PublicKeySize); err != nil {
		return err
	}

	cursor := *offset
	present, err := getFixedTag(src, &cursor, tagSize)
	if err != nil {
		return err
	}

	if present {
		if err := GetKey32(src, dst, &cursor); err != nil {
			return err
		}
	} else {
		*dst = nil
		cursor += PublicKeySize
	}

	*offset = cursor
	return nil
}

func GetFixedOptionalUint64(src []byte, dst **uint64, offset *int, tagSize int) error {
	if err := checkRemaining(src, *offset, tagSize+8); err != nil {
		return err
	}

	cursor := *offset
	present, err := getFixedTag(src, &cursor, tagSize)
	if err != nil {
		return err
	}

	if present {
		var v uint64
		if err := GetUint64(src, &v, &cursor); err != nil {
			return err
		}
		*dst = &v
	} else {
		*dst = nil
		cursor += 8
	}

	*offset = cursor
	return nil
}

func appendFixedTag(dst []byte, present bool, tagSize int) []byte {
	tag := make([]byte, tagSize)
	if present {
		tag[0] = 1
	}
	return append(dst, tag...)
}

func getFixedTag(src []byte, offset *int, tagSize int) (bool, error) {
	var tag uint32
	switch tagSize {
	case 1:
		tag = uint32(src[*offset])
	case 4:
		tag = binary.LittleEndian.Uint32(src[*offset:])
	default:
		for i := tagSize - 1; i >= 0; i-- {
			tag = tag<<8 | uint32(src[*offset+i])
		}
	}

	if tag > 1 {
		return false, invalidTag("option", tag, *offset)
	}

	*offset += tagSize
	return tag == 1, nil
}
