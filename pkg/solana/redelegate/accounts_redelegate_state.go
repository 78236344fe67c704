package redelegate

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/code-payments/redelegate-client/pkg/solana/binary"
)

const RedelegateStateAccountSize = (AccountDiscriminatorSize + // discriminator
	1 + // is_initialized
	32 + // owner
	1 + // state
	32 + // current_validator
	32 + // new_validator
	8 + // stake_amount
	8) // redelegation_timestamp

// Offsets used to filter program accounts by field.
const (
	RedelegateStateOwnerOffset            = AccountDiscriminatorSize + 1
	RedelegateStateCurrentValidatorOffset = RedelegateStateOwnerOffset + 32 + 1
)

// RedelegateStateAccount tracks an owner's move of stake from one validator to
// another.
type RedelegateStateAccount struct {
	IsInitialized         bool
	Owner                 ed25519.PublicKey
	State                 State
	CurrentValidator      ed25519.PublicKey
	NewValidator          ed25519.PublicKey
	StakeAmount           uint64
	RedelegationTimestamp int64
}

func (obj *RedelegateStateAccount) Type() AccountType {
	return AccountTypeRedelegateState
}

func (obj *RedelegateStateAccount) Marshal() []byte {
	data := make([]byte, 0, RedelegateStateAccountSize)

	data = append(data, AccountTypeRedelegateState.Discriminator()...)
	data = binary.AppendBool(data, obj.IsInitialized)
	data = binary.AppendKey32(data, obj.Owner)
	data = appendState(data, obj.State)
	data = binary.AppendKey32(data, obj.CurrentValidator)
	data = binary.AppendKey32(data, obj.NewValidator)
	data = binary.AppendUint64(data, obj.StakeAmount)
	data = binary.AppendInt64(data, obj.RedelegationTimestamp)

	return data
}

func (obj *RedelegateStateAccount) Unmarshal(data []byte) error {
	var offset int
	if err := getAccountDiscriminator(data, AccountTypeRedelegateState, &offset); err != nil {
		return err
	}

	var v RedelegateStateAccount
	if err := binary.GetBool(data, &v.IsInitialized, &offset); err != nil {
		return wrapField(err, "is_initialized")
	}
	if err := binary.GetKey32(data, &v.Owner, &offset); err != nil {
		return wrapField(err, "owner")
	}
	if err := getState(data, &v.State, &offset); err != nil {
		return wrapField(err, "state")
	}
	if err := binary.GetKey32(data, &v.CurrentValidator, &offset); err != nil {
		return wrapField(err, "current_validator")
	}
	if err := binary.GetKey32(data, &v.NewValidator, &offset); err != nil {
		return wrapField(err, "new_validator")
	}
	if err := binary.GetUint64(data, &v.StakeAmount, &offset); err != nil {
		return wrapField(err, "stake_amount")
	}
	if err := binary.GetInt64(data, &v.RedelegationTimestamp, &offset); err != nil {
		return wrapField(err, "redelegation_timestamp")
	}

	if err := checkAccountFullyConsumed(data, offset, RedelegateStateAccountSize); err != nil {
		return err
	}

	*obj = v
	return nil
}

// StartRedelegation applies the state changes of a StartRedelegation
// instruction.
func (obj *RedelegateStateAccount) StartRedelegation(newValidator ed25519.PublicKey, timestamp int64) {
	obj.NewValidator = cloneKey(newValidator)
	obj.State = StateRedelegating
	obj.RedelegationTimestamp = timestamp
}

// CompleteRedelegation applies the state changes of a CompleteRedelegation
// instruction: the new validator becomes current and the pending one is
// cleared.
func (obj *RedelegateStateAccount) CompleteRedelegation() {
	obj.CurrentValidator = obj.NewValidator
	obj.NewValidator = cloneKey(zeroKey)
	obj.State = StateCompleted
	obj.RedelegationTimestamp = 0
}

func (obj *RedelegateStateAccount) Equal(other *RedelegateStateAccount) bool {
	return obj.IsInitialized == other.IsInitialized &&
		keyEqual(obj.Owner, other.Owner) &&
		obj.State == other.State &&
		keyEqual(obj.CurrentValidator, other.CurrentValidator) &&
		keyEqual(obj.NewValidator, other.NewValidator) &&
		obj.StakeAmount == other.StakeAmount &&
		obj.RedelegationTimestamp == other.RedelegationTimestamp
}

func (obj *RedelegateStateAccount) Clone() *RedelegateStateAccount {
	cloned := *obj
	cloned.Owner = cloneKey(obj.Owner)
	cloned.CurrentValidator = cloneKey(obj.CurrentValidator)
	cloned.NewValidator = cloneKey(obj.NewValidator)
	return &cloned
}

func (obj *RedelegateStateAccount) String() string {
	return fmt.Sprintf(
		"RedelegateStateAccount{is_initialized=%t,owner=%s,state=%s,current_validator=%s,new_validator=%s,stake_amount=%d,redelegation_timestamp=%d}",
		obj.IsInitialized,
		base58.Encode(obj.Owner),
		obj.State.String(),
		base58.Encode(obj.CurrentValidator),
		base58.Encode(obj.NewValidator),
		obj.StakeAmount,
		obj.RedelegationTimestamp,
	)
}
