package binary

import (
	"encoding/binary"
	"math"
)

func AppendUint8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

func AppendUint16(dst []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(dst, v)
}

func AppendUint32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

func AppendUint64(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}

func AppendInt8(dst []byte, v int8) []byte {
	return append(dst, byte(v))
}

func AppendInt16(dst []byte, v int16) []byte {
	return AppendUint16(dst, uint16(v))
}

func AppendInt32(dst []byte, v int32) []byte {
	return AppendUint32(dst, uint32(v))
}

func AppendInt64(dst []byte, v int64) []byte {
	return AppendUint64(dst, uint64(v))
}

func AppendFloat64(dst []byte, v float64) []byte {
	return AppendUint64(dst, math.Float64bits(v))
}

// AppendBool writes a single byte, 1 for true and 0 for false.
func AppendBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

func GetUint8(src []byte, dst *uint8, offset *int) error {
	if err := checkRemaining(src, *offset, 1); err != nil {
		return err
	}
	*dst = src[*offset]
	*offset += 1
	return nil
}

func GetUint16(src []byte, dst *uint16, offset *int) error {
	if err := checkRemaining(src, *offset, 2); err != nil {
		return err
	}
	*dst = binary.LittleEndian.Uint16(src[*offset:])
	*offset += 2
	return nil
}

func GetUint32(src []byte, dst *uint32, offset *int) error {
	if err := checkRemaining(src, *offset, 4); err != nil {
		return err
	}
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
	return nil
}

func GetUint64(src []byte, dst *uint64, offset *int) error {
	if err := checkRemaining(src, *offset, 8); err != nil {
		return err
	}
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
	return nil
}

func GetInt8(src []byte, dst *int8, offset *int) error {
	var v uint8
	if err := GetUint8(src, &v, offset); err != nil {
		return err
	}
	*dst = int8(v)
	return nil
}

func GetInt16(src []byte, dst *int16, offset *int) error {
	var v uint16
	if err := GetUint16(src, &v, offset); err != nil {
		return err
	}
	*dst = int16(v)
	return nil
}

func GetInt32(src []byte, dst *int32, offset *int) error {
	var v uint32
	if err := GetUint32(src, &v, offset); err != nil {
		return err
	}
	*dst = int32(v)
	return nil
}

func GetInt64(src []byte, dst *int64, offset *int) error {
	var v uint64
	if err := GetUint64(src, &v, offset); err != nil {
		return err
	}
	*dst = int64(v)
	return nil
}

func GetFloat64(src []byte, dst *float64, offset *int) error {
	var v uint64
	if err := GetUint64(src, &v, offset); err != nil {
		return err
	}
	*dst = math.Float64frombits(v)
	return nil
}

// GetBool reads a single byte that must be 0 or 1.
func GetBool(src []byte, dst *bool, offset *int) error {
	if err := checkRemaining(src, *offset, 1); err != nil {
		return err
	}

	switch src[*offset] {
	case 0:
		*dst = false
	case 1:
		*dst = true
	default:
		return invalidTag("bool", uint32(src[*offset]), *offset)
	}

	*offset += 1
	return nil
}
