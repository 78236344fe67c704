package redelegate

import (
	"crypto/ed25519"

	"github.com/code-payments/redelegate-client/pkg/solana"
	"github.com/code-payments/redelegate-client/pkg/solana/binary"
)

const (
	SplitInstructionArgsSize = 8 // lamports
)

type SplitInstructionArgs struct {
	Lamports uint64
}

type SplitInstructionAccounts struct {
	Source         ed25519.PublicKey
	Destination    ed25519.PublicKey
	StakeAuthority ed25519.PublicKey
}

type SplitInstruction struct {
	Accounts SplitInstructionAccounts
	Args     SplitInstructionArgs
}

func NewSplitInstruction(
	accounts *SplitInstructionAccounts,
	args *SplitInstructionArgs,
) solana.Instruction {
	ix := &SplitInstruction{
		Accounts: *accounts,
		Args:     *args,
	}

	return solana.Instruction{
		Program:  PROGRAM_ID,
		Data:     marshalInstructionData(ix),
		Accounts: ix.RequiredAccounts(),
	}
}

func (ix *SplitInstruction) Type() InstructionType {
	return InstructionTypeSplit
}

func (ix *SplitInstruction) RequiredAccounts() []solana.AccountMeta {
	return []solana.AccountMeta{
		{
			PublicKey:  ix.Accounts.Source,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  ix.Accounts.Destination,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  ix.Accounts.StakeAuthority,
			IsWritable: false,
			IsSigner:   true,
		},
	}
}

func (ix *SplitInstruction) MarshalArgs() []byte {
	return binary.AppendUint64(make([]byte, 0, SplitInstructionArgsSize), ix.Args.Lamports)
}

func (ix *SplitInstruction) unmarshalArgs(data []byte) error {
	return unmarshalStrict(data, &ix.Args, func(src []byte, dst *SplitInstructionArgs, offset *int) error {
		return wrapField(binary.GetUint64(src, &dst.Lamports, offset), "lamports")
	})
}

func (ix *SplitInstruction) setAccounts(accounts []solana.AccountMeta) error {
	if err := checkAccountCount(accounts, 3, 0); err != nil {
		return err
	}

	ix.Accounts = SplitInstructionAccounts{
		Source:         accounts[0].PublicKey,
		Destination:    accounts[1].PublicKey,
		StakeAuthority: accounts[2].PublicKey,
	}
	return nil
}
