package redelegate

import (
	"crypto/ed25519"

	"github.com/code-payments/redelegate-client/pkg/solana"
	"github.com/code-payments/redelegate-client/pkg/solana/binary"
)

// UpdateStateInstructionArgs leaves a field unchanged when it is empty.
type UpdateStateInstructionArgs struct {
	NewValidator ed25519.PublicKey
	StakeAmount  *uint64
}

type UpdateStateInstructionAccounts struct {
	Payer ed25519.PublicKey
	State ed25519.PublicKey
}

type UpdateStateInstruction struct {
	Accounts UpdateStateInstructionAccounts
	Args     UpdateStateInstructionArgs
}

func NewUpdateStateInstruction(
	accounts *UpdateStateInstructionAccounts,
	args *UpdateStateInstructionArgs,
) solana.Instruction {
	ix := &UpdateStateInstruction{
		Accounts: *accounts,
		Args:     *args,
	}

	return solana.Instruction{
		Program:  PROGRAM_ID,
		Data:     marshalInstructionData(ix),
		Accounts: ix.RequiredAccounts(),
	}
}

func (ix *UpdateStateInstruction) Type() InstructionType {
	return InstructionTypeUpdateState
}

func (ix *UpdateStateInstruction) RequiredAccounts() []solana.AccountMeta {
	return []solana.AccountMeta{
		{
			PublicKey:  ix.Accounts.Payer,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey:  ix.Accounts.State,
			IsWritable: true,
			IsSigner:   false,
		},
	}
}

func (ix *UpdateStateInstruction) MarshalArgs() []byte {
	var data []byte
	data = binary.AppendOptionalKey32(data, ix.Args.NewValidator)
	return binary.AppendOption(data, ix.Args.StakeAmount, binary.AppendUint64)
}

func (ix *UpdateStateInstruction) unmarshalArgs(data []byte) error {
	return unmarshalStrict(data, &ix.Args, func(src []byte, dst *UpdateStateInstructionArgs, offset *int) error {
		if err := binary.GetOptionalKey32(src, &dst.NewValidator, offset); err != nil {
			return wrapField(err, "new_validator")
		}
		if err := binary.GetOption(src, &dst.StakeAmount, offset, binary.GetUint64); err != nil {
			return wrapField(err, "stake_amount")
		}
		return nil
	})
}

func (ix *UpdateStateInstruction) setAccounts(accounts []solana.AccountMeta) error {
	if err := checkAccountCount(accounts, 2, 0); err != nil {
		return err
	}

	ix.Accounts = UpdateStateInstructionAccounts{
		Payer: accounts[0].PublicKey,
		State: accounts[1].PublicKey,
	}
	return nil
}
