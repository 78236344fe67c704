package binary

// AppendVec writes a u32 length prefix followed by each encoded element.
func AppendVec[T any](dst []byte, values []T, enc Encoder[T]) []byte {
	dst = AppendUint32(dst, uint32(len(values)))
	for _, v := range values {
		dst = enc(dst, v)
	}
	return dst
}

// GetVec reads a u32 length prefix followed by that many elements.
func GetVec[T any](src []byte, dst *[]T, offset *int, dec Decoder[T]) error {
	cursor := *offset

	var length uint32
	if err := GetUint32(src, &length, &cursor); err != nil {
		return err
	}

	// The claimed length is untrusted, so preallocation is capped by the
	// remaining input.
	capacity := int(length)
	if left := remaining(src, cursor); capacity > left {
		capacity = left
	}

	values := make([]T, 0, capacity)
	for i := uint32(0); i < length; i++ {
		var v T
		if err := dec(src, &v, &cursor); err != nil {
			return err
		}
		values = append(values, v)
	}

	*dst = values
	*offset = cursor
	return nil
}
