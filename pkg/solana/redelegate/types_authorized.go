package redelegate

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/code-payments/redelegate-client/pkg/solana/binary"
)

const AuthorizedSize = (32 + // staker
	32) // withdrawer

type Authorized struct {
	Staker     ed25519.PublicKey
	Withdrawer ed25519.PublicKey
}

// Authority returns the key holding role.
func (a Authorized) Authority(role StakeAuthorize) ed25519.PublicKey {
	if role == StakeAuthorizeWithdrawer {
		return a.Withdrawer
	}
	return a.Staker
}

// IsAuthorized reports whether the authority for role is among signers.
func (a Authorized) IsAuthorized(signers []ed25519.PublicKey, role StakeAuthorize) bool {
	authority := a.Authority(role)
	for _, signer := range signers {
		if keyEqual(signer, authority) {
			return true
		}
	}
	return false
}

func (a Authorized) Equal(other Authorized) bool {
	return keyEqual(a.Staker, other.Staker) && keyEqual(a.Withdrawer, other.Withdrawer)
}

func (a Authorized) Clone() Authorized {
	return Authorized{
		Staker:     cloneKey(a.Staker),
		Withdrawer: cloneKey(a.Withdrawer),
	}
}

func (a Authorized) String() string {
	return fmt.Sprintf(
		"Authorized{staker=%s,withdrawer=%s}",
		base58.Encode(a.Staker),
		base58.Encode(a.Withdrawer),
	)
}

func appendAuthorized(dst []byte, v Authorized) []byte {
	dst = binary.AppendKey32(dst, v.Staker)
	return binary.AppendKey32(dst, v.Withdrawer)
}

func getAuthorized(src []byte, dst *Authorized, offset *int) error {
	cursor := *offset

	var v Authorized
	if err := binary.GetKey32(src, &v.Staker, &cursor); err != nil {
		return err
	}
	if err := binary.GetKey32(src, &v.Withdrawer, &cursor); err != nil {
		return err
	}

	*dst = v
	*offset = cursor
	return nil
}
