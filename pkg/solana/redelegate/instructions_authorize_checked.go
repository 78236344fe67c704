package redelegate

import (
	"crypto/ed25519"

	"github.com/code-payments/redelegate-client/pkg/solana"
	"github.com/code-payments/redelegate-client/pkg/solana/system"
)

const (
	AuthorizeCheckedInstructionArgsSize = EnumOrdinalSize // stake_authorize
)

type AuthorizeCheckedInstructionArgs struct {
	StakeAuthorize StakeAuthorize
}

// AuthorizeCheckedInstructionAccounts omits the custodian when it is empty.
// The custodian is only needed while the lockup is in force.
type AuthorizeCheckedInstructionAccounts struct {
	Stake        ed25519.PublicKey
	OldAuthority ed25519.PublicKey
	NewAuthority ed25519.PublicKey
	Custodian    ed25519.PublicKey
}

type AuthorizeCheckedInstruction struct {
	Accounts AuthorizeCheckedInstructionAccounts
	Args     AuthorizeCheckedInstructionArgs
}

func NewAuthorizeCheckedInstruction(
	accounts *AuthorizeCheckedInstructionAccounts,
	args *AuthorizeCheckedInstructionArgs,
) solana.Instruction {
	ix := &AuthorizeCheckedInstruction{
		Accounts: *accounts,
		Args:     *args,
	}

	return solana.Instruction{
		Program:  PROGRAM_ID,
		Data:     marshalInstructionData(ix),
		Accounts: ix.RequiredAccounts(),
	}
}

func (ix *AuthorizeCheckedInstruction) Type() InstructionType {
	return InstructionTypeAuthorizeChecked
}

func (ix *AuthorizeCheckedInstruction) RequiredAccounts() []solana.AccountMeta {
	accounts := []solana.AccountMeta{
		{
			PublicKey:  ix.Accounts.Stake,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  system.ClockSysVar,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  ix.Accounts.OldAuthority,
			IsWritable: false,
			IsSigner:   true,
		},
		{
			PublicKey:  ix.Accounts.NewAuthority,
			IsWritable: false,
			IsSigner:   true,
		},
	}
	return appendOptionalAccount(accounts, ix.Accounts.Custodian, false, true)
}

func (ix *AuthorizeCheckedInstruction) MarshalArgs() []byte {
	return appendStakeAuthorize(make([]byte, 0, AuthorizeCheckedInstructionArgsSize), ix.Args.StakeAuthorize)
}

func (ix *AuthorizeCheckedInstruction) unmarshalArgs(data []byte) error {
	return unmarshalStrict(data, &ix.Args, func(src []byte, dst *AuthorizeCheckedInstructionArgs, offset *int) error {
		return wrapField(getStakeAuthorize(src, &dst.StakeAuthorize, offset), "stake_authorize")
	})
}

func (ix *AuthorizeCheckedInstruction) setAccounts(accounts []solana.AccountMeta) error {
	if err := checkAccountCount(accounts, 4, 1); err != nil {
		return err
	}

	ix.Accounts = AuthorizeCheckedInstructionAccounts{
		Stake:        accounts[0].PublicKey,
		OldAuthority: accounts[2].PublicKey,
		NewAuthority: accounts[3].PublicKey,
	}
	if len(accounts) > 4 {
		ix.Accounts.Custodian = accounts[4].PublicKey
	}
	return nil
}
