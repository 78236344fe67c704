package system

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58/base58"
)

// https://explorer.solana.com/address/11111111111111111111111111111111
var SystemAccount ed25519.PublicKey

// RentSysVar points to the system variable "Rent"
//
// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/sysvar/rent.rs#L11
var RentSysVar ed25519.PublicKey

// ClockSysVar points to the system variable "Clock"
//
// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/sysvar/clock.rs#L10
var ClockSysVar ed25519.PublicKey

// StakeHistorySysVar points to the system variable "Stake History"
var StakeHistorySysVar ed25519.PublicKey

// StakeProgramKey is the native stake program, which owns stake accounts.
var StakeProgramKey ed25519.PublicKey

func init() {
	SystemAccount = mustDecode("11111111111111111111111111111111")
	RentSysVar = mustDecode("SysvarRent111111111111111111111111111111111")
	ClockSysVar = mustDecode("SysvarC1ock11111111111111111111111111111111")
	StakeHistorySysVar = mustDecode("SysvarStakeHistory1111111111111111111111111")
	StakeProgramKey = mustDecode("Stake11111111111111111111111111111111111111")
}

func mustDecode(address string) ed25519.PublicKey {
	key, err := base58.Decode(address)
	if err != nil {
		panic(err)
	}
	if len(key) != ed25519.PublicKeySize {
		panic("invalid address length: " + address)
	}
	return key
}
