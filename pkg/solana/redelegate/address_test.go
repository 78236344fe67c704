package redelegate

import (
	"crypto/ed25519"
	"sync"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/redelegate-client/pkg/solana"
	"github.com/code-payments/redelegate-client/pkg/solana/token"
	"github.com/code-payments/redelegate-client/pkg/testutil"
)

func TestProgramID(t *testing.T) {
	assert.Len(t, PROGRAM_ID, ed25519.PublicKeySize)
	assert.Equal(t, PROGRAM_ADDRESS, base58.Encode(PROGRAM_ID))
	assert.Panics(t, func() { mustBase58Decode("abc") })
	assert.Panics(t, func() { mustBase58Decode("0OIl") })
}

func TestGetRedelegateStateAddress(t *testing.T) {
	owner := testutil.GenerateSolanaKeys(t, 1)[0]

	expected, expectedBump, err := solana.FindProgramAddressAndBump(PROGRAM_ID, []byte("redelegate"), owner)
	require.NoError(t, err)

	address, bump, err := GetRedelegateStateAddress(owner)
	require.NoError(t, err)
	assert.Equal(t, expected, address)
	assert.Equal(t, expectedBump, bump)

	require.NoError(t, VerifyRedelegateStateAddress(address, owner, bump))
	assert.Error(t, VerifyRedelegateStateAddress(owner, owner, bump))

	other := testutil.GenerateSolanaKeys(t, 1)[0]
	otherAddress, _, err := GetRedelegateStateAddress(other)
	require.NoError(t, err)
	assert.NotEqual(t, address, otherAddress)
}

func TestAddressCache(t *testing.T) {
	c := NewAddressCache(2)
	owners := testutil.GenerateSolanaKeys(t, 3)

	first, bump, err := c.GetRedelegateStateAddress(owners[0])
	require.NoError(t, err)

	cached, ok := c.entries.Retrieve(base58.Encode(owners[0]))
	require.True(t, ok)
	assert.EqualValues(t, first, cached.address)
	assert.Equal(t, bump, cached.bump)

	// Results are copies, so callers cannot corrupt the cache.
	first[0] ^= 0xff
	again, againBump, err := c.GetRedelegateStateAddress(owners[0])
	require.NoError(t, err)
	assert.NotEqual(t, first, again)
	assert.EqualValues(t, cached.address, again)
	assert.Equal(t, bump, againBump)

	for _, owner := range owners[1:] {
		_, _, err := c.GetRedelegateStateAddress(owner)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.entries.GetWeight())

	_, ok = c.entries.Retrieve(base58.Encode(owners[0]))
	assert.False(t, ok)

	// Evicted owners are derived again.
	address, _, err := c.GetRedelegateStateAddress(owners[0])
	require.NoError(t, err)
	assert.EqualValues(t, cached.address, address)
}

func TestAddressCache_Concurrent(t *testing.T) {
	c := NewAddressCache(DefaultAddressCacheBudget)
	owners := testutil.GenerateSolanaKeys(t, 8)

	expected := make([]ed25519.PublicKey, len(owners))
	for i, owner := range owners {
		address, err := solana.FindProgramAddress(PROGRAM_ID, RedelegateStatePrefix, owner)
		require.NoError(t, err)
		expected[i] = address
	}

	var wg sync.WaitGroup
	results := make([][]ed25519.PublicKey, 16)
	for worker := range results {
		results[worker] = make([]ed25519.PublicKey, len(owners))

		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i, owner := range owners {
				address, _, err := c.GetRedelegateStateAddress(owner)
				if err != nil {
					continue
				}
				results[worker][i] = address
			}
		}(worker)
	}
	wg.Wait()

	for _, result := range results {
		assert.Equal(t, expected, result)
	}
	assert.Equal(t, len(owners), c.entries.GetWeight())
}

func TestGetVaultAddress(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)
	state, mint := keys[0], keys[1]

	expected, err := token.GetAssociatedAccount(state, mint)
	require.NoError(t, err)

	vault, err := GetVaultAddress(state, mint)
	require.NoError(t, err)
	assert.Equal(t, expected, vault)
}
