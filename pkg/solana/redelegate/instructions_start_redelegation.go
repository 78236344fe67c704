package redelegate

import (
	"crypto/ed25519"

	"github.com/code-payments/redelegate-client/pkg/solana"
	"github.com/code-payments/redelegate-client/pkg/solana/binary"
)

const (
	StartRedelegationInstructionArgsSize = (32 + // new_validator
		8 + // stake_amount
		1) // bump
)

type StartRedelegationInstructionArgs struct {
	NewValidator ed25519.PublicKey
	StakeAmount  uint64
	Bump         uint8
}

type StartRedelegationInstructionAccounts struct {
	Owner        ed25519.PublicKey
	State        ed25519.PublicKey
	NewValidator ed25519.PublicKey
}

type StartRedelegationInstruction struct {
	Accounts StartRedelegationInstructionAccounts
	Args     StartRedelegationInstructionArgs
}

func NewStartRedelegationInstruction(
	accounts *StartRedelegationInstructionAccounts,
	args *StartRedelegationInstructionArgs,
) solana.Instruction {
	ix := &StartRedelegationInstruction{
		Accounts: *accounts,
		Args:     *args,
	}

	return solana.Instruction{
		Program:  PROGRAM_ID,
		Data:     marshalInstructionData(ix),
		Accounts: ix.RequiredAccounts(),
	}
}

func (ix *StartRedelegationInstruction) Type() InstructionType {
	return InstructionTypeStartRedelegation
}

func (ix *StartRedelegationInstruction) RequiredAccounts() []solana.AccountMeta {
	return []solana.AccountMeta{
		{
			PublicKey:  ix.Accounts.Owner,
			IsWritable: false,
			IsSigner:   true,
		},
		{
			PublicKey:  ix.Accounts.State,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  ix.Accounts.NewValidator,
			IsWritable: false,
			IsSigner:   false,
		},
	}
}

func (ix *StartRedelegationInstruction) MarshalArgs() []byte {
	return appendRedelegationArgs(nil, ix.Args.NewValidator, ix.Args.StakeAmount, ix.Args.Bump)
}

func (ix *StartRedelegationInstruction) unmarshalArgs(data []byte) error {
	return unmarshalStrict(data, &ix.Args, func(src []byte, dst *StartRedelegationInstructionArgs, offset *int) error {
		return getRedelegationArgs(src, offset, &dst.NewValidator, &dst.StakeAmount, &dst.Bump)
	})
}

func (ix *StartRedelegationInstruction) setAccounts(accounts []solana.AccountMeta) error {
	if err := checkAccountCount(accounts, 3, 0); err != nil {
		return err
	}

	ix.Accounts = StartRedelegationInstructionAccounts{
		Owner:        accounts[0].PublicKey,
		State:        accounts[1].PublicKey,
		NewValidator: accounts[2].PublicKey,
	}
	return nil
}

// Start and complete share one argument layout.

func appendRedelegationArgs(dst []byte, newValidator ed25519.PublicKey, stakeAmount uint64, bump uint8) []byte {
	dst = binary.AppendKey32(dst, newValidator)
	dst = binary.AppendUint64(dst, stakeAmount)
	return binary.AppendUint8(dst, bump)
}

func getRedelegationArgs(src []byte, offset *int, newValidator *ed25519.PublicKey, stakeAmount *uint64, bump *uint8) error {
	if err := binary.GetKey32(src, newValidator, offset); err != nil {
		return wrapField(err, "new_validator")
	}
	if err := binary.GetUint64(src, stakeAmount, offset); err != nil {
		return wrapField(err, "stake_amount")
	}
	if err := binary.GetUint8(src, bump, offset); err != nil {
		return wrapField(err, "bump")
	}
	return nil
}
