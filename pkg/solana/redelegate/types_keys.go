package redelegate

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/redelegate-client/pkg/pointer"
)

var zeroKey = make(ed25519.PublicKey, ed25519.PublicKeySize)

// keyEqual treats an empty key as the all zero key, which is how an empty
// key is encoded.
func keyEqual(a, b ed25519.PublicKey) bool {
	if len(a) == 0 {
		a = zeroKey
	}
	if len(b) == 0 {
		b = zeroKey
	}
	return bytes.Equal(a, b)
}

func cloneKey(key ed25519.PublicKey) ed25519.PublicKey {
	return pointer.KeyCopy(key)
}
