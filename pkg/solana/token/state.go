package token

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/redelegate-client/pkg/solana/binary"
)

type AccountState byte

const (
	AccountStateUninitialized AccountState = iota
	AccountStateInitialized
	AccountStateFrozen
)

// Reference: https://github.com/solana-labs/solana-program-library/blob/11b1e3eefdd4e523768d63f7c70a7aa391ea0d02/token/program/src/state.rs#L125
const AccountSize = 165

// Reference: https://github.com/solana-labs/solana-program-library/blob/11b1e3eefdd4e523768d63f7c70a7aa391ea0d02/token/program/src/state.rs#L33
const MintSize = 82

// The token program encodes options as COption, with a 4 byte tag.
const optionSize = 4

type Account struct {
	// The mint associated with this account
	Mint ed25519.PublicKey
	// The owner of this account.
	Owner ed25519.PublicKey
	// The amount of tokens this account holds.
	Amount uint64
	// If set, then the 'DelegatedAmount' represents the amount
	// authorized by the delegate.
	Delegate ed25519.PublicKey
	// The account's state
	State AccountState
	// If set, this is a native token, and the value logs the rent-exempt reserve.
	IsNative *uint64
	// The amount delegated
	DelegatedAmount uint64
	// Optional authority to close the account.
	CloseAuthority ed25519.PublicKey
}

func (a *Account) Marshal() []byte {
	b := make([]byte, 0, AccountSize)
	b = binary.AppendKey32(b, a.Mint)
	b = binary.AppendKey32(b, a.Owner)
	b = binary.AppendUint64(b, a.Amount)
	b = binary.AppendFixedOptionalKey32(b, a.Delegate, optionSize)
	b = binary.AppendUint8(b, byte(a.State))
	b = binary.AppendFixedOptionalUint64(b, a.IsNative, optionSize)
	b = binary.AppendUint64(b, a.DelegatedAmount)
	return binary.AppendFixedOptionalKey32(b, a.CloseAuthority, optionSize)
}

func (a *Account) Unmarshal(b []byte) error {
	if len(b) != AccountSize {
		return errors.Errorf("invalid token account size: %d", len(b))
	}

	var decoded Account
	var state uint8
	var offset int
	if err := binary.GetKey32(b, &decoded.Mint, &offset); err != nil {
		return errors.Wrap(err, "invalid mint")
	}
	if err := binary.GetKey32(b, &decoded.Owner, &offset); err != nil {
		return errors.Wrap(err, "invalid owner")
	}
	if err := binary.GetUint64(b, &decoded.Amount, &offset); err != nil {
		return errors.Wrap(err, "invalid amount")
	}
	if err := binary.GetFixedOptionalKey32(b, &decoded.Delegate, &offset, optionSize); err != nil {
		return errors.Wrap(err, "invalid delegate")
	}
	if err := binary.GetUint8(b, &state, &offset); err != nil {
		return errors.Wrap(err, "invalid state")
	}
	if err := binary.GetFixedOptionalUint64(b, &decoded.IsNative, &offset, optionSize); err != nil {
		return errors.Wrap(err, "invalid is_native")
	}
	if err := binary.GetUint64(b, &decoded.DelegatedAmount, &offset); err != nil {
		return errors.Wrap(err, "invalid delegated amount")
	}
	if err := binary.GetFixedOptionalKey32(b, &decoded.CloseAuthority, &offset, optionSize); err != nil {
		return errors.Wrap(err, "invalid close authority")
	}

	decoded.State = AccountState(state)
	if decoded.State > AccountStateFrozen {
		return errors.Errorf("invalid token account state: %d", state)
	}

	*a = decoded
	return nil
}

type Mint struct {
	// Optional authority used to mint new tokens.
	MintAuthority ed25519.PublicKey
	// Total supply of tokens.
	Supply uint64
	// Number of base 10 digits to the right of the decimal place.
	Decimals      uint8
	IsInitialized bool
	// Optional authority to freeze token accounts.
	FreezeAuthority ed25519.PublicKey
}

func (m *Mint) Marshal() []byte {
	b := make([]byte, 0, MintSize)
	b = binary.AppendFixedOptionalKey32(b, m.MintAuthority, optionSize)
	b = binary.AppendUint64(b, m.Supply)
	b = binary.AppendUint8(b, m.Decimals)
	b = binary.AppendBool(b, m.IsInitialized)
	return binary.AppendFixedOptionalKey32(b, m.FreezeAuthority, optionSize)
}

func (m *Mint) Unmarshal(b []byte) error {
	if len(b) != MintSize {
		return errors.Errorf("invalid mint size: %d", len(b))
	}

	var decoded Mint
	var offset int
	if err := binary.GetFixedOptionalKey32(b, &decoded.MintAuthority, &offset, optionSize); err != nil {
		return errors.Wrap(err, "invalid mint authority")
	}
	if err := binary.GetUint64(b, &decoded.Supply, &offset); err != nil {
		return errors.Wrap(err, "invalid mint supply")
	}
	if err := binary.GetUint8(b, &decoded.Decimals, &offset); err != nil {
		return errors.Wrap(err, "invalid mint decimals")
	}
	if err := binary.GetBool(b, &decoded.IsInitialized, &offset); err != nil {
		return errors.Wrap(err, "invalid mint state")
	}
	if err := binary.GetFixedOptionalKey32(b, &decoded.FreezeAuthority, &offset, optionSize); err != nil {
		return errors.Wrap(err, "invalid freeze authority")
	}

	*m = decoded
	return nil
}
