package token

import (
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/redelegate-client/pkg/solana"
	"github.com/code-payments/redelegate-client/pkg/solana/system"
)

func TestGetAssociatedAccount(t *testing.T) {
	// Values generated from taken from spl code.
	wallet, err := base58.Decode("4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM")
	require.NoError(t, err)
	mint, err := base58.Decode("8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh")
	require.NoError(t, err)
	addr, err := base58.Decode("H7MQwEzt97tUJryocn3qaEoy2ymWstwyEk1i9Yv3EmuZ")
	require.NoError(t, err)

	actual, err := GetAssociatedAccount(wallet, mint)
	require.NoError(t, err)
	assert.EqualValues(t, addr, actual)
}

func TestCreateAssociatedAccount(t *testing.T) {
	for _, tc := range []struct {
		name       string
		create     func(subsidizer, wallet, mint []byte) (solana.Instruction, []byte, error)
		command    byte
		idempotent bool
	}{
		{
			name: "create",
			create: func(subsidizer, wallet, mint []byte) (solana.Instruction, []byte, error) {
				return CreateAssociatedTokenAccount(subsidizer, wallet, mint)
			},
			command: commandCreate,
		},
		{
			name: "idempotent",
			create: func(subsidizer, wallet, mint []byte) (solana.Instruction, []byte, error) {
				return CreateAssociatedTokenAccountIdempotent(subsidizer, wallet, mint)
			},
			command:    commandCreateIdempotent,
			idempotent: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			keys := generateKeys(t, 3)

			expectedAddr, err := GetAssociatedAccount(keys[1], keys[2])
			require.NoError(t, err)

			instruction, addr, err := tc.create(keys[0], keys[1], keys[2])
			require.NoError(t, err)
			assert.EqualValues(t, expectedAddr, addr)

			assert.Equal(t, []byte{tc.command}, instruction.Data)
			require.Len(t, instruction.Accounts, 6)
			assert.True(t, instruction.Accounts[0].IsSigner)
			assert.True(t, instruction.Accounts[0].IsWritable)
			assert.False(t, instruction.Accounts[1].IsSigner)
			assert.True(t, instruction.Accounts[1].IsWritable)
			for i := 2; i < len(instruction.Accounts); i++ {
				assert.False(t, instruction.Accounts[i].IsSigner)
				assert.False(t, instruction.Accounts[i].IsWritable)
			}

			assert.EqualValues(t, system.SystemAccount, instruction.Accounts[4].PublicKey)
			assert.EqualValues(t, ProgramKey, instruction.Accounts[5].PublicKey)

			decompiled, err := DecompileCreateAssociatedAccount(solana.NewTransaction(keys[0], instruction).Message, 0)
			require.NoError(t, err)
			assert.EqualValues(t, keys[0], decompiled.Subsidizer)
			assert.EqualValues(t, expectedAddr, decompiled.Address)
			assert.EqualValues(t, keys[1], decompiled.Owner)
			assert.EqualValues(t, keys[2], decompiled.Mint)
			assert.Equal(t, tc.idempotent, decompiled.Idempotent)
		})
	}
}

func TestDecompileCreateAssociatedAccount_Invalid(t *testing.T) {
	keys := generateKeys(t, 3)

	other := solana.NewInstruction(keys[2], []byte{0}, solana.NewAccountMeta(keys[0], true))
	_, err := DecompileCreateAssociatedAccount(solana.NewTransaction(keys[0], other).Message, 0)
	assert.Equal(t, solana.ErrIncorrectProgram, err)

	instruction, _, err := CreateAssociatedTokenAccount(keys[0], keys[1], keys[2])
	require.NoError(t, err)
	instruction.Data = []byte{9}
	_, err = DecompileCreateAssociatedAccount(solana.NewTransaction(keys[0], instruction).Message, 0)
	assert.Equal(t, solana.ErrIncorrectInstruction, err)

	_, err = DecompileCreateAssociatedAccount(solana.NewTransaction(keys[0], instruction).Message, 1)
	assert.Error(t, err)
}
