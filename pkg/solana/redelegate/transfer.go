package redelegate

import "fmt"

// TransferDirection is the way tokens move when a redelegation completes.
type TransferDirection uint8

const (
	TransferDirectionNone TransferDirection = iota
	TransferDirectionToVault
	TransferDirectionToOwner
)

func (d TransferDirection) String() string {
	switch d {
	case TransferDirectionToVault:
		return "to_vault"
	case TransferDirectionToOwner:
		return "to_owner"
	}
	return "none"
}

// CompleteRedelegationTransfer is the token transfer a CompleteRedelegation
// instruction performs to leave exactly the stake amount in the vault.
type CompleteRedelegationTransfer struct {
	Direction TransferDirection
	Amount    uint64
}

// GetCompleteRedelegationTransfer previews the transfer for a given stake
// amount and current vault balance. A shortfall is deposited from the owner's
// token account and any excess is returned to it.
func GetCompleteRedelegationTransfer(stakeAmount, vaultAmount uint64) CompleteRedelegationTransfer {
	switch {
	case stakeAmount > vaultAmount:
		return CompleteRedelegationTransfer{
			Direction: TransferDirectionToVault,
			Amount:    stakeAmount - vaultAmount,
		}
	case stakeAmount < vaultAmount:
		return CompleteRedelegationTransfer{
			Direction: TransferDirectionToOwner,
			Amount:    vaultAmount - stakeAmount,
		}
	}
	return CompleteRedelegationTransfer{Direction: TransferDirectionNone}
}

func (t CompleteRedelegationTransfer) String() string {
	return fmt.Sprintf("CompleteRedelegationTransfer{direction=%s,amount=%d}", t.Direction, t.Amount)
}
