package redelegate

import (
	"crypto/ed25519"
	"sync"

	"github.com/mr-tron/base58"

	"github.com/code-payments/redelegate-client/pkg/cache"
	"github.com/code-payments/redelegate-client/pkg/solana"
	"github.com/code-payments/redelegate-client/pkg/solana/token"
	xsync "github.com/code-payments/redelegate-client/pkg/sync"
)

const (
	DefaultAddressCacheBudget = 10_000

	addressLockStripes = 64
)

var (
	RedelegateStatePrefix = []byte("redelegate")
)

// programAddress is a derived address and the bump that derived it.
type programAddress struct {
	address ed25519.PublicKey
	bump    uint8
}

// AddressCache memoizes the state address of each owner. Derivation for a
// given owner runs at most once while its entry is cached.
type AddressCache struct {
	entries cache.Cache[programAddress]
	locks   *xsync.StripedLock
}

// NewAddressCache returns a cache holding up to budget owners.
func NewAddressCache(budget int) *AddressCache {
	return &AddressCache{
		entries: cache.NewCache[programAddress](budget),
		locks:   xsync.NewStripedLock(addressLockStripes),
	}
}

var (
	defaultAddressCache     *AddressCache
	defaultAddressCacheOnce sync.Once
)

// GetRedelegateStateAddress returns the state address of owner and its bump,
// using a process wide cache.
func GetRedelegateStateAddress(owner ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	defaultAddressCacheOnce.Do(func() {
		defaultAddressCache = NewAddressCache(DefaultAddressCacheBudget)
	})
	return defaultAddressCache.GetRedelegateStateAddress(owner)
}

func (c *AddressCache) GetRedelegateStateAddress(owner ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	key := base58.Encode(owner)

	lock := c.locks.Get(owner)
	lock.Lock()
	defer lock.Unlock()

	if cached, ok := c.entries.Retrieve(key); ok {
		return cloneKey(cached.address), cached.bump, nil
	}

	address, bump, err := solana.FindProgramAddressAndBump(PROGRAM_ID, RedelegateStatePrefix, owner)
	if err != nil {
		return nil, 0, err
	}

	// Only this owner's stripe is held, so the key cannot have been inserted
	// since the lookup.
	_ = c.entries.Insert(key, programAddress{address: address, bump: bump}, 1)

	return cloneKey(address), bump, nil
}

// VerifyRedelegateStateAddress checks that address is the state address of
// owner for bump.
func VerifyRedelegateStateAddress(address, owner ed25519.PublicKey, bump uint8) error {
	return solana.VerifyProgramAddress(address, PROGRAM_ID, bump, RedelegateStatePrefix, owner)
}

// GetVaultAddress returns the token account holding the stake of a
// redelegation, the associated account of the state address for mint.
func GetVaultAddress(state, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return token.GetAssociatedAccount(state, mint)
}
