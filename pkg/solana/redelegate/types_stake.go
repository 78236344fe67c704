package redelegate

import (
	"fmt"

	"github.com/code-payments/redelegate-client/pkg/solana/binary"
)

const StakeSize = (DelegationSize + // delegation
	8) // credits_observed

type Stake struct {
	Delegation      Delegation
	CreditsObserved uint64
}

func (s Stake) Equal(other Stake) bool {
	return s.Delegation.Equal(other.Delegation) && s.CreditsObserved == other.CreditsObserved
}

func (s Stake) Clone() Stake {
	return Stake{
		Delegation:      s.Delegation.Clone(),
		CreditsObserved: s.CreditsObserved,
	}
}

func (s Stake) String() string {
	return fmt.Sprintf("Stake{delegation=%s,credits_observed=%d}", s.Delegation.String(), s.CreditsObserved)
}

func appendStake(dst []byte, v Stake) []byte {
	dst = appendDelegation(dst, v.Delegation)
	return binary.AppendUint64(dst, v.CreditsObserved)
}

func getStake(src []byte, dst *Stake, offset *int) error {
	cursor := *offset

	var v Stake
	if err := getDelegation(src, &v.Delegation, &cursor); err != nil {
		return err
	}
	if err := binary.GetUint64(src, &v.CreditsObserved, &cursor); err != nil {
		return err
	}

	*dst = v
	*offset = cursor
	return nil
}
