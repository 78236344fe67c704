// Package redelegate is a client for the redelegate program. It decodes the
// accounts the program owns, builds its instructions, and carries the native
// stake program layouts the program reads.
package redelegate

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// PROGRAM_ADDRESS is the base58 address of the redelegate program.
const PROGRAM_ADDRESS = "4ibrEMW5F6hKnkW4jVedswYv6H6VtwPN6ar6dvXDN1nT"

var (
	PROGRAM_ID = mustBase58Decode(PROGRAM_ADDRESS)
)

func mustBase58Decode(value string) ed25519.PublicKey {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	if len(decoded) != ed25519.PublicKeySize {
		panic("invalid program address: " + value)
	}
	return decoded
}
