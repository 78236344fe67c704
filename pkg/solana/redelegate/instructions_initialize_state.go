package redelegate

import (
	"crypto/ed25519"

	"github.com/code-payments/redelegate-client/pkg/solana"
	"github.com/code-payments/redelegate-client/pkg/solana/binary"
	"github.com/code-payments/redelegate-client/pkg/solana/system"
)

const (
	InitializeStateInstructionArgsSize = (32 + // current_validator
		8 + // stake_amount
		1) // bump
)

type InitializeStateInstructionArgs struct {
	CurrentValidator ed25519.PublicKey
	StakeAmount      uint64
	Bump             uint8
}

type InitializeStateInstructionAccounts struct {
	Payer ed25519.PublicKey
	State ed25519.PublicKey
}

type InitializeStateInstruction struct {
	Accounts InitializeStateInstructionAccounts
	Args     InitializeStateInstructionArgs
}

func NewInitializeStateInstruction(
	accounts *InitializeStateInstructionAccounts,
	args *InitializeStateInstructionArgs,
) solana.Instruction {
	ix := &InitializeStateInstruction{
		Accounts: *accounts,
		Args:     *args,
	}

	return solana.Instruction{
		Program:  PROGRAM_ID,
		Data:     marshalInstructionData(ix),
		Accounts: ix.RequiredAccounts(),
	}
}

func (ix *InitializeStateInstruction) Type() InstructionType {
	return InstructionTypeInitializeState
}

func (ix *InitializeStateInstruction) RequiredAccounts() []solana.AccountMeta {
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
		{
			PublicKey:  system.RentSysVar,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  system.SystemAccount,
			IsWritable: false,
			IsSigner:   false,
		},
	}
}

func (ix *InitializeStateInstruction) MarshalArgs() []byte {
	data := make([]byte, 0, InitializeStateInstructionArgsSize)
	data = binary.AppendKey32(data, ix.Args.CurrentValidator)
	data = binary.AppendUint64(data, ix.Args.StakeAmount)
	return binary.AppendUint8(data, ix.Args.Bump)
}

func (ix *InitializeStateInstruction) unmarshalArgs(data []byte) error {
	return unmarshalStrict(data, &ix.Args, func(src []byte, dst *InitializeStateInstructionArgs, offset *int) error {
		if err := binary.GetKey32(src, &dst.CurrentValidator, offset); err != nil {
			return wrapField(err, "current_validator")
		}
		if err := binary.GetUint64(src, &dst.StakeAmount, offset); err != nil {
			return wrapField(err, "stake_amount")
		}
		if err := binary.GetUint8(src, &dst.Bump, offset); err != nil {
			return wrapField(err, "bump")
		}
		return nil
	})
}

func (ix *InitializeStateInstruction) setAccounts(accounts []solana.AccountMeta) error {
	if err := checkAccountCount(accounts, 4, 0); err != nil {
		return err
	}

	ix.Accounts = InitializeStateInstructionAccounts{
		Payer: accounts[0].PublicKey,
		State: accounts[1].PublicKey,
	}
	return nil
}
