package redelegate

import (
	"crypto/ed25519"

	"github.com/code-payments/redelegate-client/pkg/solana"
)

const (
	CompleteRedelegationInstructionArgsSize = StartRedelegationInstructionArgsSize
)

type CompleteRedelegationInstructionArgs struct {
	NewValidator ed25519.PublicKey
	StakeAmount  uint64
	Bump         uint8
}

type CompleteRedelegationInstructionAccounts struct {
	Owner            ed25519.PublicKey
	OwnerAta         ed25519.PublicKey
	Mint             ed25519.PublicKey
	Vault            ed25519.PublicKey
	State            ed25519.PublicKey
	CurrentValidator ed25519.PublicKey
	NewValidator     ed25519.PublicKey
}

type CompleteRedelegationInstruction struct {
	Accounts CompleteRedelegationInstructionAccounts
	Args     CompleteRedelegationInstructionArgs
}

func NewCompleteRedelegationInstruction(
	accounts *CompleteRedelegationInstructionAccounts,
	args *CompleteRedelegationInstructionArgs,
) solana.Instruction {
	ix := &CompleteRedelegationInstruction{
		Accounts: *accounts,
		Args:     *args,
	}

	return solana.Instruction{
		Program:  PROGRAM_ID,
		Data:     marshalInstructionData(ix),
		Accounts: ix.RequiredAccounts(),
	}
}

func (ix *CompleteRedelegationInstruction) Type() InstructionType {
	return InstructionTypeCompleteRedelegation
}

func (ix *CompleteRedelegationInstruction) RequiredAccounts() []solana.AccountMeta {
	return []solana.AccountMeta{
		{
			PublicKey:  ix.Accounts.Owner,
			IsWritable: false,
			IsSigner:   true,
		},
		{
			PublicKey:  ix.Accounts.OwnerAta,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  ix.Accounts.Mint,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  ix.Accounts.Vault,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  ix.Accounts.State,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  ix.Accounts.CurrentValidator,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  ix.Accounts.NewValidator,
			IsWritable: false,
			IsSigner:   false,
		},
	}
}

func (ix *CompleteRedelegationInstruction) MarshalArgs() []byte {
	return appendRedelegationArgs(nil, ix.Args.NewValidator, ix.Args.StakeAmount, ix.Args.Bump)
}

func (ix *CompleteRedelegationInstruction) unmarshalArgs(data []byte) error {
	return unmarshalStrict(data, &ix.Args, func(src []byte, dst *CompleteRedelegationInstructionArgs, offset *int) error {
		return getRedelegationArgs(src, offset, &dst.NewValidator, &dst.StakeAmount, &dst.Bump)
	})
}

func (ix *CompleteRedelegationInstruction) setAccounts(accounts []solana.AccountMeta) error {
	if err := checkAccountCount(accounts, 7, 0); err != nil {
		return err
	}

	ix.Accounts = CompleteRedelegationInstructionAccounts{
		Owner:            accounts[0].PublicKey,
		OwnerAta:         accounts[1].PublicKey,
		Mint:             accounts[2].PublicKey,
		Vault:            accounts[3].PublicKey,
		State:            accounts[4].PublicKey,
		CurrentValidator: accounts[5].PublicKey,
		NewValidator:     accounts[6].PublicKey,
	}
	return nil
}
