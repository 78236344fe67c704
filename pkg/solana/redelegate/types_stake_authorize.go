package redelegate

// StakeAuthorize selects which authority of a stake account is changed.
type StakeAuthorize uint8

const (
	StakeAuthorizeStaker StakeAuthorize = iota
	StakeAuthorizeWithdrawer
	stakeAuthorizeCount
)

func (a StakeAuthorize) String() string {
	switch a {
	case StakeAuthorizeStaker:
		return "staker"
	case StakeAuthorizeWithdrawer:
		return "withdrawer"
	}
	return "unknown"
}

func appendStakeAuthorize(dst []byte, v StakeAuthorize) []byte {
	return appendOrdinal(dst, uint32(v), EnumOrdinalSize)
}

func getStakeAuthorize(src []byte, dst *StakeAuthorize, offset *int) error {
	var ordinal uint32
	if err := getEnum(src, &ordinal, offset, EnumOrdinalSize, "StakeAuthorize", uint32(stakeAuthorizeCount)); err != nil {
		return err
	}
	*dst = StakeAuthorize(ordinal)
	return nil
}
