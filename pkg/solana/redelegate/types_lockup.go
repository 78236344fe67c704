package redelegate

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/code-payments/redelegate-client/pkg/pointer"
	"github.com/code-payments/redelegate-client/pkg/solana/binary"
)

const LockupSize = (8 + // unix_timestamp
	8 + // epoch
	32) // custodian

// Lockup prevents withdrawals until both the timestamp and the epoch have
// passed, unless the custodian signs.
type Lockup struct {
	UnixTimestamp int64
	Epoch         uint64
	Custodian     ed25519.PublicKey
}

// IsInForce reports whether the lockup blocks a withdrawal at the given clock
// values. A signing custodian lifts the lockup.
func (l Lockup) IsInForce(unixTimestamp int64, epoch uint64, custodian ed25519.PublicKey) bool {
	if len(custodian) > 0 && keyEqual(custodian, l.Custodian) {
		return false
	}
	return l.UnixTimestamp > unixTimestamp || l.Epoch > epoch
}

func (l Lockup) Equal(other Lockup) bool {
	return l.UnixTimestamp == other.UnixTimestamp &&
		l.Epoch == other.Epoch &&
		keyEqual(l.Custodian, other.Custodian)
}

func (l Lockup) Clone() Lockup {
	cloned := l
	cloned.Custodian = cloneKey(l.Custodian)
	return cloned
}

func (l Lockup) String() string {
	return fmt.Sprintf(
		"Lockup{unix_timestamp=%d,epoch=%d,custodian=%s}",
		l.UnixTimestamp,
		l.Epoch,
		base58.Encode(l.Custodian),
	)
}

func appendLockup(dst []byte, v Lockup) []byte {
	dst = binary.AppendInt64(dst, v.UnixTimestamp)
	dst = binary.AppendUint64(dst, v.Epoch)
	return binary.AppendKey32(dst, v.Custodian)
}

func getLockup(src []byte, dst *Lockup, offset *int) error {
	cursor := *offset

	var v Lockup
	if err := binary.GetInt64(src, &v.UnixTimestamp, &cursor); err != nil {
		return err
	}
	if err := binary.GetUint64(src, &v.Epoch, &cursor); err != nil {
		return err
	}
	if err := binary.GetKey32(src, &v.Custodian, &cursor); err != nil {
		return err
	}

	*dst = v
	*offset = cursor
	return nil
}

// LockupCheckedArgs are the lockup fields to change. Nil fields are left as
// they are.
type LockupCheckedArgs struct {
	UnixTimestamp *int64
	Epoch         *uint64
}

func (a LockupCheckedArgs) Equal(other LockupCheckedArgs) bool {
	if (a.UnixTimestamp == nil) != (other.UnixTimestamp == nil) {
		return false
	}
	if a.UnixTimestamp != nil && *a.UnixTimestamp != *other.UnixTimestamp {
		return false
	}
	if (a.Epoch == nil) != (other.Epoch == nil) {
		return false
	}
	return a.Epoch == nil || *a.Epoch == *other.Epoch
}

func (a LockupCheckedArgs) Clone() LockupCheckedArgs {
	return LockupCheckedArgs{
		UnixTimestamp: pointer.Int64Copy(a.UnixTimestamp),
		Epoch:         pointer.Uint64Copy(a.Epoch),
	}
}

func appendLockupCheckedArgs(dst []byte, v LockupCheckedArgs) []byte {
	dst = binary.AppendOption(dst, v.UnixTimestamp, binary.AppendInt64)
	return binary.AppendOption(dst, v.Epoch, binary.AppendUint64)
}

func getLockupCheckedArgs(src []byte, dst *LockupCheckedArgs, offset *int) error {
	cursor := *offset

	var v LockupCheckedArgs
	if err := binary.GetOption(src, &v.UnixTimestamp, &cursor, binary.GetInt64); err != nil {
		return err
	}
	if err := binary.GetOption(src, &v.Epoch, &cursor, binary.GetUint64); err != nil {
		return err
	}

	*dst = v
	*offset = cursor
	return nil
}
