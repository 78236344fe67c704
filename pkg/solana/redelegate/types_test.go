package redelegate

import (
	"crypto/ed25519"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/redelegate-client/pkg/pointer"
	"github.com/code-payments/redelegate-client/pkg/solana/binary"
	"github.com/code-payments/redelegate-client/pkg/testutil"
)

// assertCodec checks that v survives a round trip, that encoding is stable,
// and that every proper prefix of the encoding fails without moving the
// offset.
func assertCodec[T any](t *testing.T, v T, enc binary.Encoder[T], dec binary.Decoder[T], equal func(a, b T) bool) []byte {
	t.Helper()

	data := enc(nil, v)
	assert.Equal(t, data, enc(nil, v))

	var decoded T
	var offset int
	require.NoError(t, dec(data, &decoded, &offset))
	assert.Equal(t, len(data), offset)
	assert.True(t, equal(v, decoded), "%+v != %+v", v, decoded)
	assert.Equal(t, data, enc(nil, decoded))

	for n := 0; n < len(data); n++ {
		offset = 0
		err := dec(data[:n], &decoded, &offset)
		assert.ErrorIs(t, err, binary.ErrTruncatedInput, "prefix of %d bytes", n)
		assert.Zero(t, offset)
	}

	return data
}

func TestState_Codec(t *testing.T) {
	for _, state := range []State{StateInitialized, StateRedelegating, StateCompleted} {
		data := assertCodec(t, state, appendState, getState, func(a, b State) bool { return a == b })
		assert.Equal(t, []byte{byte(state)}, data)
	}

	var state State
	var offset int
	err := getState([]byte{3}, &state, &offset)
	assert.ErrorIs(t, err, ErrUnknownVariant)
	assert.Zero(t, offset)
	assert.Equal(t, "unknown", State(3).String())
}

func TestStakeAuthorize_Codec(t *testing.T) {
	for _, role := range []StakeAuthorize{StakeAuthorizeStaker, StakeAuthorizeWithdrawer} {
		assertCodec(t, role, appendStakeAuthorize, getStakeAuthorize, func(a, b StakeAuthorize) bool { return a == b })
	}

	var role StakeAuthorize
	var offset int
	err := getStakeAuthorize([]byte{2}, &role, &offset)

	var unknown *UnknownVariantError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "StakeAuthorize", unknown.Type)
	assert.EqualValues(t, 2, unknown.Ordinal)
}

func TestAuthorized(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 3)
	authorized := Authorized{Staker: keys[0], Withdrawer: keys[1]}

	data := assertCodec(t, authorized, appendAuthorized, getAuthorized, Authorized.Equal)
	assert.Len(t, data, AuthorizedSize)

	assert.EqualValues(t, keys[0], authorized.Authority(StakeAuthorizeStaker))
	assert.EqualValues(t, keys[1], authorized.Authority(StakeAuthorizeWithdrawer))
	assert.True(t, authorized.IsAuthorized([]ed25519.PublicKey{keys[2], keys[1]}, StakeAuthorizeWithdrawer))
	assert.False(t, authorized.IsAuthorized([]ed25519.PublicKey{keys[2], keys[1]}, StakeAuthorizeStaker))

	cloned := authorized.Clone()
	cloned.Staker[0] ^= 0xff
	assert.False(t, cloned.Equal(authorized))
}

func TestLockup(t *testing.T) {
	custodian := testutil.GenerateSolanaKeys(t, 1)[0]

	for _, lockup := range []Lockup{
		{},
		{UnixTimestamp: math.MinInt64, Epoch: 0, Custodian: custodian},
		{UnixTimestamp: math.MaxInt64, Epoch: math.MaxUint64, Custodian: custodian},
		{UnixTimestamp: -1, Epoch: 1},
	} {
		data := assertCodec(t, lockup, appendLockup, getLockup, Lockup.Equal)
		assert.Len(t, data, LockupSize)
	}

	// An empty custodian encodes as the zero key.
	assert.True(t, Lockup{}.Equal(Lockup{Custodian: make(ed25519.PublicKey, 32)}))
}

func TestLockup_IsInForce(t *testing.T) {
	custodian := testutil.GenerateSolanaKeys(t, 1)[0]
	lockup := Lockup{UnixTimestamp: 100, Epoch: 10, Custodian: custodian}

	assert.True(t, lockup.IsInForce(99, 10, nil))
	assert.True(t, lockup.IsInForce(100, 9, nil))
	assert.False(t, lockup.IsInForce(100, 10, nil))
	assert.False(t, lockup.IsInForce(0, 0, custodian))
	assert.False(t, Lockup{}.IsInForce(0, 0, nil))
}

func TestLockupCheckedArgs(t *testing.T) {
	for _, tc := range []struct {
		args     LockupCheckedArgs
		expected []byte
	}{
		{
			args:     LockupCheckedArgs{},
			expected: []byte{0, 0},
		},
		{
			args:     LockupCheckedArgs{UnixTimestamp: pointer.Int64(-2)},
			expected: []byte{1, 0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0},
		},
		{
			args:     LockupCheckedArgs{Epoch: pointer.Uint64(300)},
			expected: []byte{0, 1, 0x2c, 0x01, 0, 0, 0, 0, 0, 0},
		},
		{
			args: LockupCheckedArgs{UnixTimestamp: pointer.Int64(1), Epoch: pointer.Uint64(2)},
			expected: []byte{
				1, 1, 0, 0, 0, 0, 0, 0, 0,
				1, 2, 0, 0, 0, 0, 0, 0, 0,
			},
		},
	} {
		data := assertCodec(t, tc.args, appendLockupCheckedArgs, getLockupCheckedArgs, LockupCheckedArgs.Equal)
		assert.Equal(t, tc.expected, data)

		cloned := tc.args.Clone()
		assert.True(t, cloned.Equal(tc.args))
		if cloned.Epoch != nil {
			assert.NotSame(t, tc.args.Epoch, cloned.Epoch)
		}
	}

	var args LockupCheckedArgs
	var offset int
	err := getLockupCheckedArgs([]byte{2, 0}, &args, &offset)
	assert.ErrorIs(t, err, binary.ErrInvalidTag)
	assert.Zero(t, offset)
}

func TestMeta(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 3)
	meta := Meta{
		RentExemptReserve: math.MaxUint64,
		Authorized:        Authorized{Staker: keys[0], Withdrawer: keys[1]},
		Lockup:            Lockup{UnixTimestamp: 1_700_000_000, Epoch: 500, Custodian: keys[2]},
	}

	data := assertCodec(t, meta, appendMeta, getMeta, Meta.Equal)
	assert.Len(t, data, MetaSize)
	assert.Equal(t, 120, MetaSize)

	cloned := meta.Clone()
	cloned.Lockup.Custodian[0] ^= 0xff
	assert.False(t, cloned.Equal(meta))
}

func TestDelegationAndStake(t *testing.T) {
	voter := testutil.GenerateSolanaKeys(t, 1)[0]

	delegation := NewDelegation(voter, 5_000_000_000, 42)
	assert.Equal(t, DefaultWarmupCooldownRate, delegation.WarmupCooldownRate)
	assert.False(t, delegation.IsDeactivated())
	assert.False(t, delegation.IsBootstrap())

	data := assertCodec(t, delegation, appendDelegation, getDelegation, Delegation.Equal)
	assert.Len(t, data, DelegationSize)

	bootstrap := Delegation{VoterPubkey: voter, ActivationEpoch: math.MaxUint64, DeactivationEpoch: 7, WarmupCooldownRate: 0.09}
	assert.True(t, bootstrap.IsBootstrap())
	assert.True(t, bootstrap.IsDeactivated())
	assertCodec(t, bootstrap, appendDelegation, getDelegation, Delegation.Equal)

	stake := Stake{Delegation: delegation, CreditsObserved: math.MaxUint64}
	data = assertCodec(t, stake, appendStake, getStake, Stake.Equal)
	assert.Len(t, data, StakeSize)
}

func TestStakeFlags(t *testing.T) {
	flags := StakeFlagsEmpty
	assert.True(t, flags.Contains(StakeFlagsEmpty))
	assert.False(t, flags.Contains(StakeFlagsMustFullyActivateBeforeDeactivationIsPermitted))

	flags.Set(StakeFlagsMustFullyActivateBeforeDeactivationIsPermitted)
	assert.True(t, flags.Contains(StakeFlagsMustFullyActivateBeforeDeactivationIsPermitted))

	union := flags.Union(StakeFlags{Bits: 0b100})
	assert.EqualValues(t, 0b101, union.Bits)
	assert.True(t, union.Contains(flags))

	union.Remove(StakeFlagsMustFullyActivateBeforeDeactivationIsPermitted)
	assert.EqualValues(t, 0b100, union.Bits)

	assertCodec(t, union, appendStakeFlags, getStakeFlags, func(a, b StakeFlags) bool { return a == b })
}

func TestOrdinalWidths(t *testing.T) {
	for _, size := range []int{1, 2, 4, 8} {
		data := appendOrdinal(nil, 3, size)
		require.Len(t, data, size)

		var ordinal uint32
		var offset int
		require.NoError(t, getOrdinal(data, &ordinal, &offset, size))
		assert.EqualValues(t, 3, ordinal)
		assert.Equal(t, size, offset)

		offset = 0
		err := getEnum(data, &ordinal, &offset, size, "Test", 3)
		assert.ErrorIs(t, err, ErrUnknownVariant)
		assert.Zero(t, offset)
	}
}

func TestInstructionType_Ordinals(t *testing.T) {
	for expected, tc := range []struct {
		instructionType InstructionType
		name            string
	}{
		{InstructionTypeInitializeState, "initialize_state"},
		{InstructionTypeUpdateState, "update_state"},
		{InstructionTypeStartRedelegation, "start_redelegation"},
		{InstructionTypeCompleteRedelegation, "complete_redelegation"},
		{InstructionTypeSplit, "split"},
		{InstructionTypeAuthorizeChecked, "authorize_checked"},
		{InstructionTypeSetLockupChecked, "set_lockup_checked"},
	} {
		assert.EqualValues(t, expected, tc.instructionType)
		assert.Equal(t, tc.name, tc.instructionType.String())
		assert.Equal(t, []byte{byte(expected)}, appendInstructionType(nil, tc.instructionType))
	}

	assert.Equal(t, "unknown", instructionTypeCount.String())
}
