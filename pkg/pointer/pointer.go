// Package pointer builds the optional values used by instruction arguments.
package pointer

import "crypto/ed25519"

// Uint64 returns a pointer to the provided uint64 value
func Uint64(value uint64) *uint64 {
	return &value
}

// Uint64Copy returns a pointer that's a copy of the provided value
func Uint64Copy(value *uint64) *uint64 {
	if value == nil {
		return nil
	}
	return Uint64(*value)
}

// Int64 returns a pointer to the provided int64 value
func Int64(value int64) *int64 {
	return &value
}

// Int64Copy returns a pointer that's a copy of the provided value
func Int64Copy(value *int64) *int64 {
	if value == nil {
		return nil
	}
	return Int64(*value)
}

// KeyCopy returns a copy of key, keeping nil as nil.
func KeyCopy(key ed25519.PublicKey) ed25519.PublicKey {
	if key == nil {
		return nil
	}
	cloned := make(ed25519.PublicKey, len(key))
	copy(cloned, key)
	return cloned
}
