package redelegate

import (
	"crypto/ed25519"
	"fmt"
	"math"

	"github.com/mr-tron/base58"

	"github.com/code-payments/redelegate-client/pkg/solana/binary"
)

const DelegationSize = (32 + // voter_pubkey
	8 + // stake
	8 + // activation_epoch
	8 + // deactivation_epoch
	8) // warmup_cooldown_rate

const (
	DefaultWarmupCooldownRate = 0.25

	// bootstrapEpoch marks stake that was active from genesis, and doubles as
	// the deactivation epoch of stake that was never deactivated.
	bootstrapEpoch = math.MaxUint64
)

type Delegation struct {
	VoterPubkey        ed25519.PublicKey
	Stake              uint64
	ActivationEpoch    uint64
	DeactivationEpoch  uint64
	WarmupCooldownRate float64
}

// NewDelegation delegates stake to voter starting at activationEpoch.
func NewDelegation(voter ed25519.PublicKey, stake, activationEpoch uint64) Delegation {
	return Delegation{
		VoterPubkey:        voter,
		Stake:              stake,
		ActivationEpoch:    activationEpoch,
		DeactivationEpoch:  bootstrapEpoch,
		WarmupCooldownRate: DefaultWarmupCooldownRate,
	}
}

func (d Delegation) IsBootstrap() bool {
	return d.ActivationEpoch == bootstrapEpoch
}

func (d Delegation) IsDeactivated() bool {
	return d.DeactivationEpoch != bootstrapEpoch
}

func (d Delegation) Equal(other Delegation) bool {
	return keyEqual(d.VoterPubkey, other.VoterPubkey) &&
		d.Stake == other.Stake &&
		d.ActivationEpoch == other.ActivationEpoch &&
		d.DeactivationEpoch == other.DeactivationEpoch &&
		math.Float64bits(d.WarmupCooldownRate) == math.Float64bits(other.WarmupCooldownRate)
}

func (d Delegation) Clone() Delegation {
	cloned := d
	cloned.VoterPubkey = cloneKey(d.VoterPubkey)
	return cloned
}

func (d Delegation) String() string {
	return fmt.Sprintf(
		"Delegation{voter=%s,stake=%d,activation_epoch=%d,deactivation_epoch=%d,warmup_cooldown_rate=%g}",
		base58.Encode(d.VoterPubkey),
		d.Stake,
		d.ActivationEpoch,
		d.DeactivationEpoch,
		d.WarmupCooldownRate,
	)
}

func appendDelegation(dst []byte, v Delegation) []byte {
	dst = binary.AppendKey32(dst, v.VoterPubkey)
	dst = binary.AppendUint64(dst, v.Stake)
	dst = binary.AppendUint64(dst, v.ActivationEpoch)
	dst = binary.AppendUint64(dst, v.DeactivationEpoch)
	return binary.AppendFloat64(dst, v.WarmupCooldownRate)
}

func getDelegation(src []byte, dst *Delegation, offset *int) error {
	cursor := *offset

	var v Delegation
	if err := binary.GetKey32(src, &v.VoterPubkey, &cursor); err != nil {
		return err
	}
	if err := binary.GetUint64(src, &v.Stake, &cursor); err != nil {
		return err
	}
	if err := binary.GetUint64(src, &v.ActivationEpoch, &cursor); err != nil {
		return err
	}
	if err := binary.GetUint64(src, &v.DeactivationEpoch, &cursor); err != nil {
		return err
	}
	if err := binary.GetFloat64(src, &v.WarmupCooldownRate, &cursor); err != nil {
		return err
	}

	*dst = v
	*offset = cursor
	return nil
}
