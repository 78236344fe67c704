package system

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddresses(t *testing.T) {
	for _, key := range []ed25519.PublicKey{
		SystemAccount,
		RentSysVar,
		ClockSysVar,
		StakeHistorySysVar,
		StakeProgramKey,
	} {
		assert.Len(t, key, ed25519.PublicKeySize)
	}

	assert.Equal(t, make(ed25519.PublicKey, ed25519.PublicKeySize), SystemAccount)
	assert.NotEqual(t, RentSysVar, ClockSysVar)
}
