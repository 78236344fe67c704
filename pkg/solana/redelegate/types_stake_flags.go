package redelegate

import (
	"github.com/code-payments/redelegate-client/pkg/solana/binary"
)

const StakeFlagsSize = 1

type StakeFlags struct {
	Bits uint8
}

var (
	StakeFlagsEmpty = StakeFlags{}

	// StakeFlagsMustFullyActivateBeforeDeactivationIsPermitted is set on
	// redelegated stake.
	StakeFlagsMustFullyActivateBeforeDeactivationIsPermitted = StakeFlags{Bits: 0b1}
)

func (f StakeFlags) Contains(other StakeFlags) bool {
	return f.Bits&other.Bits == other.Bits
}

func (f *StakeFlags) Set(other StakeFlags) {
	f.Bits |= other.Bits
}

func (f *StakeFlags) Remove(other StakeFlags) {
	f.Bits &^= other.Bits
}

func (f StakeFlags) Union(other StakeFlags) StakeFlags {
	return StakeFlags{Bits: f.Bits | other.Bits}
}

func appendStakeFlags(dst []byte, v StakeFlags) []byte {
	return binary.AppendUint8(dst, v.Bits)
}

func getStakeFlags(src []byte, dst *StakeFlags, offset *int) error {
	return binary.GetUint8(src, &dst.Bits, offset)
}
