package redelegate

import (
	"fmt"

	"github.com/pkg/errors"
)

// StakeStateV2Kind is the variant of a native stake account.
type StakeStateV2Kind uint32

const (
	StakeStateV2Uninitialized StakeStateV2Kind = iota
	StakeStateV2Initialized
	StakeStateV2Stake
	StakeStateV2RewardsPool
	stakeStateV2KindCount
)

func (k StakeStateV2Kind) String() string {
	switch k {
	case StakeStateV2Uninitialized:
		return "uninitialized"
	case StakeStateV2Initialized:
		return "initialized"
	case StakeStateV2Stake:
		return "stake"
	case StakeStateV2RewardsPool:
		return "rewards_pool"
	}
	return "unknown"
}

// StakeStateV2 is the state of an account owned by the native stake program.
// Meta is set for the Initialized and Stake variants, Stake and Flags only for
// the Stake variant.
type StakeStateV2 struct {
	Kind  StakeStateV2Kind
	Meta  Meta
	Stake Stake
	Flags StakeFlags
}

func NewInitializedStakeState(meta Meta) StakeStateV2 {
	return StakeStateV2{
		Kind: StakeStateV2Initialized,
		Meta: meta,
	}
}

func NewDelegatedStakeState(meta Meta, stake Stake, flags StakeFlags) StakeStateV2 {
	return StakeStateV2{
		Kind:  StakeStateV2Stake,
		Meta:  meta,
		Stake: stake,
		Flags: flags,
	}
}

// UnmarshalStakeStateV2 decodes a stake account. data must be exactly the
// allocated account size. Bytes past the variant are padding.
func UnmarshalStakeStateV2(data []byte) (*StakeStateV2, error) {
	var state StakeStateV2
	if err := state.Unmarshal(data); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *StakeStateV2) Unmarshal(data []byte) error {
	if len(data) < StakeStateV2Size {
		return &BufferTooSmallError{Expected: StakeStateV2Size, Actual: len(data)}
	}
	if len(data) > StakeStateV2Size {
		return &TrailingBytesError{Remaining: len(data) - StakeStateV2Size}
	}

	var offset int
	var v StakeStateV2
	if err := getStakeStateV2(data, &v, &offset); err != nil {
		return errors.Wrap(err, "invalid stake state")
	}

	*s = v
	return nil
}

// Marshal encodes the state padded to the allocated account size.
func (s StakeStateV2) Marshal() []byte {
	data := appendStakeStateV2(make([]byte, 0, StakeStateV2Size), s)
	return append(data, make([]byte, StakeStateV2Size-len(data))...)
}

// UsedSize is the number of bytes the variant occupies before padding.
func (s StakeStateV2) UsedSize() int {
	switch s.Kind {
	case StakeStateV2Initialized:
		return StakeStateOrdinalSize + MetaSize
	case StakeStateV2Stake:
		return StakeStateOrdinalSize + MetaSize + StakeSize + StakeFlagsSize
	}
	return StakeStateOrdinalSize
}

func (s StakeStateV2) GetMeta() (Meta, bool) {
	switch s.Kind {
	case StakeStateV2Initialized, StakeStateV2Stake:
		return s.Meta, true
	}
	return Meta{}, false
}

func (s StakeStateV2) GetAuthorized() (Authorized, bool) {
	meta, ok := s.GetMeta()
	return meta.Authorized, ok
}

func (s StakeStateV2) GetLockup() (Lockup, bool) {
	meta, ok := s.GetMeta()
	return meta.Lockup, ok
}

func (s StakeStateV2) GetStake() (Stake, bool) {
	if s.Kind != StakeStateV2Stake {
		return Stake{}, false
	}
	return s.Stake, true
}

func (s StakeStateV2) GetDelegation() (Delegation, bool) {
	stake, ok := s.GetStake()
	return stake.Delegation, ok
}

func (s StakeStateV2) Equal(other StakeStateV2) bool {
	if s.Kind != other.Kind {
		return false
	}

	switch s.Kind {
	case StakeStateV2Initialized:
		return s.Meta.Equal(other.Meta)
	case StakeStateV2Stake:
		return s.Meta.Equal(other.Meta) && s.Stake.Equal(other.Stake) && s.Flags == other.Flags
	}
	return true
}

func (s StakeStateV2) Clone() StakeStateV2 {
	return StakeStateV2{
		Kind:  s.Kind,
		Meta:  s.Meta.Clone(),
		Stake: s.Stake.Clone(),
		Flags: s.Flags,
	}
}

func (s StakeStateV2) String() string {
	switch s.Kind {
	case StakeStateV2Initialized:
		return fmt.Sprintf("StakeStateV2::Initialized{meta=%s}", s.Meta.String())
	case StakeStateV2Stake:
		return fmt.Sprintf(
			"StakeStateV2::Stake{meta=%s,stake=%s,flags=%d}",
			s.Meta.String(),
			s.Stake.String(),
			s.Flags.Bits,
		)
	}
	return fmt.Sprintf("StakeStateV2::%s", s.Kind.String())
}

// appendStakeStateV2 writes the tag and variant fields without padding.
func appendStakeStateV2(dst []byte, v StakeStateV2) []byte {
	dst = appendOrdinal(dst, uint32(v.Kind), StakeStateOrdinalSize)
	switch v.Kind {
	case StakeStateV2Initialized:
		dst = appendMeta(dst, v.Meta)
	case StakeStateV2Stake:
		dst = appendMeta(dst, v.Meta)
		dst = appendStake(dst, v.Stake)
		dst = appendStakeFlags(dst, v.Flags)
	}
	return dst
}

// getStakeStateV2 reads the tag and variant fields, leaving offset at the
// start of the padding.
func getStakeStateV2(src []byte, dst *StakeStateV2, offset *int) error {
	cursor := *offset

	var kind uint32
	if err := getEnum(src, &kind, &cursor, StakeStateOrdinalSize, "StakeStateV2", uint32(stakeStateV2KindCount)); err != nil {
		return err
	}

	v := StakeStateV2{Kind: StakeStateV2Kind(kind)}
	switch v.Kind {
	case StakeStateV2Initialized:
		if err := getMeta(src, &v.Meta, &cursor); err != nil {
			return errors.Wrap(err, "meta")
		}
	case StakeStateV2Stake:
		if err := getMeta(src, &v.Meta, &cursor); err != nil {
			return errors.Wrap(err, "meta")
		}
		if err := getStake(src, &v.Stake, &cursor); err != nil {
			return errors.Wrap(err, "stake")
		}
		if err := getStakeFlags(src, &v.Flags, &cursor); err != nil {
			return errors.Wrap(err, "flags")
		}
	}

	*dst = v
	*offset = cursor
	return nil
}
