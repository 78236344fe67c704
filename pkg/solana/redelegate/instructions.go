package redelegate

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/redelegate-client/pkg/solana"
)

// InstructionBuilder is a typed instruction of the program.
type InstructionBuilder interface {
	Type() InstructionType

	// RequiredAccounts returns the accounts the instruction expects, in
	// order, with the privileges each must carry.
	RequiredAccounts() []solana.AccountMeta

	// MarshalArgs encodes the arguments without the discriminator.
	MarshalArgs() []byte
}

type instructionDecoder interface {
	InstructionBuilder

	unmarshalArgs(data []byte) error
	setAccounts(accounts []solana.AccountMeta) error
}

var instructionRegistry = map[InstructionType]func() instructionDecoder{
	InstructionTypeInitializeState:      func() instructionDecoder { return &InitializeStateInstruction{} },
	InstructionTypeUpdateState:          func() instructionDecoder { return &UpdateStateInstruction{} },
	InstructionTypeStartRedelegation:    func() instructionDecoder { return &StartRedelegationInstruction{} },
	InstructionTypeCompleteRedelegation: func() instructionDecoder { return &CompleteRedelegationInstruction{} },
	InstructionTypeSplit:                func() instructionDecoder { return &SplitInstruction{} },
	InstructionTypeAuthorizeChecked:     func() instructionDecoder { return &AuthorizeCheckedInstruction{} },
	InstructionTypeSetLockupChecked:     func() instructionDecoder { return &SetLockupCheckedInstruction{} },
}

// Build validates accounts against what ix requires and assembles the
// instruction for programID. The accounts are used as given.
//
// Every required account must be present at its position. Required signers
// and writable accounts must carry those flags, while extra privileges are
// accepted.
func Build(programID ed25519.PublicKey, ix InstructionBuilder, accounts []solana.AccountMeta) (solana.Instruction, error) {
	if err := validateAccounts(ix.RequiredAccounts(), accounts); err != nil {
		return solana.Instruction{}, err
	}

	return solana.Instruction{
		Program:  programID,
		Accounts: accounts,
		Data:     marshalInstructionData(ix),
	}, nil
}

// UnmarshalInstruction decodes an instruction of the program into its typed
// form.
func UnmarshalInstruction(ix solana.Instruction) (InstructionBuilder, error) {
	if !bytes.Equal(ix.Program, PROGRAM_ID) {
		return nil, solana.ErrIncorrectProgram
	}
	if len(ix.Data) < InstructionDiscriminatorSize {
		return nil, &BufferTooSmallError{Expected: InstructionDiscriminatorSize, Actual: len(ix.Data)}
	}

	var offset int
	var instructionType InstructionType
	if err := getInstructionType(ix.Data, &instructionType, &offset); err != nil {
		return nil, err
	}

	decoded := instructionRegistry[instructionType]()
	if err := decoded.unmarshalArgs(ix.Data[offset:]); err != nil {
		return nil, errors.Wrapf(err, "invalid %s arguments", instructionType)
	}
	if err := decoded.setAccounts(ix.Accounts); err != nil {
		return nil, err
	}
	if err := validateAccounts(decoded.RequiredAccounts(), ix.Accounts); err != nil {
		return nil, err
	}

	return decoded, nil
}

// DecompileInstruction decodes the instruction at index of a message.
func DecompileInstruction(m solana.Message, index int) (InstructionBuilder, error) {
	ix, err := m.DecompileInstruction(index)
	if err != nil {
		return nil, err
	}
	return UnmarshalInstruction(ix)
}

func marshalInstructionData(ix InstructionBuilder) []byte {
	args := ix.MarshalArgs()

	data := make([]byte, 0, InstructionDiscriminatorSize+len(args))
	data = appendInstructionType(data, ix.Type())
	return append(data, args...)
}

func validateAccounts(required, accounts []solana.AccountMeta) error {
	for i := 0; i < len(required) || i < len(accounts); i++ {
		if i >= len(required) || i >= len(accounts) {
			mismatch := &AccountListMismatchError{Index: i, Reason: MismatchReasonCount}
			if i < len(required) {
				mismatch.Expected = required[i].PublicKey
			}
			if i < len(accounts) {
				mismatch.Found = accounts[i].PublicKey
			}
			return mismatch
		}

		if !bytes.Equal(required[i].PublicKey, accounts[i].PublicKey) {
			return &AccountListMismatchError{
				Index:    i,
				Expected: required[i].PublicKey,
				Found:    accounts[i].PublicKey,
				Reason:   MismatchReasonAddress,
			}
		}
	}

	for i := range required {
		if required[i].IsSigner && !accounts[i].IsSigner {
			return &MissingSignerFlagError{Index: i, Account: accounts[i].PublicKey}
		}
		if required[i].IsWritable && !accounts[i].IsWritable {
			return &AccountListMismatchError{
				Index:    i,
				Expected: required[i].PublicKey,
				Found:    accounts[i].PublicKey,
				Reason:   MismatchReasonWritable,
			}
		}
	}

	return nil
}

// checkAccountCount reports a count mismatch when accounts cannot fill
// required positions followed by up to optional ones.
func checkAccountCount(accounts []solana.AccountMeta, required, optional int) error {
	if len(accounts) < required {
		return &AccountListMismatchError{Index: len(accounts), Reason: MismatchReasonCount}
	}
	if len(accounts) > required+optional {
		return &AccountListMismatchError{
			Index:  required + optional,
			Found:  accounts[required+optional].PublicKey,
			Reason: MismatchReasonCount,
		}
	}
	return nil
}

func appendOptionalAccount(accounts []solana.AccountMeta, key ed25519.PublicKey, isWritable, isSigner bool) []solana.AccountMeta {
	if len(key) == 0 {
		return accounts
	}
	return append(accounts, solana.AccountMeta{
		PublicKey:  key,
		IsWritable: isWritable,
		IsSigner:   isSigner,
	})
}
