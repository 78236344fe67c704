package redelegate

import (
	"crypto/ed25519"

	"github.com/code-payments/redelegate-client/pkg/solana"
)

type SetLockupCheckedInstructionArgs struct {
	Lockup LockupCheckedArgs
}

// SetLockupCheckedInstructionAccounts omits the new custodian when it is
// empty, which leaves the custodian unchanged.
type SetLockupCheckedInstructionAccounts struct {
	Stake        ed25519.PublicKey
	Authority    ed25519.PublicKey
	NewCustodian ed25519.PublicKey
}

type SetLockupCheckedInstruction struct {
	Accounts SetLockupCheckedInstructionAccounts
	Args     SetLockupCheckedInstructionArgs
}

func NewSetLockupCheckedInstruction(
	accounts *SetLockupCheckedInstructionAccounts,
	args *SetLockupCheckedInstructionArgs,
) solana.Instruction {
	ix := &SetLockupCheckedInstruction{
		Accounts: *accounts,
		Args:     *args,
	}

	return solana.Instruction{
		Program:  PROGRAM_ID,
		Data:     marshalInstructionData(ix),
		Accounts: ix.RequiredAccounts(),
	}
}

func (ix *SetLockupCheckedInstruction) Type() InstructionType {
	return InstructionTypeSetLockupChecked
}

func (ix *SetLockupCheckedInstruction) RequiredAccounts() []solana.AccountMeta {
	accounts := []solana.AccountMeta{
		{
			PublicKey:  ix.Accounts.Stake,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  ix.Accounts.Authority,
			IsWritable: false,
			IsSigner:   true,
		},
	}
	return appendOptionalAccount(accounts, ix.Accounts.NewCustodian, false, true)
}

func (ix *SetLockupCheckedInstruction) MarshalArgs() []byte {
	return appendLockupCheckedArgs(nil, ix.Args.Lockup)
}

func (ix *SetLockupCheckedInstruction) unmarshalArgs(data []byte) error {
	return unmarshalStrict(data, &ix.Args, func(src []byte, dst *SetLockupCheckedInstructionArgs, offset *int) error {
		return wrapField(getLockupCheckedArgs(src, &dst.Lockup, offset), "lockup")
	})
}

func (ix *SetLockupCheckedInstruction) setAccounts(accounts []solana.AccountMeta) error {
	if err := checkAccountCount(accounts, 2, 1); err != nil {
		return err
	}

	ix.Accounts = SetLockupCheckedInstructionAccounts{
		Stake:     accounts[0].PublicKey,
		Authority: accounts[1].PublicKey,
	}
	if len(accounts) > 2 {
		ix.Accounts.NewCustodian = accounts[2].PublicKey
	}
	return nil
}
