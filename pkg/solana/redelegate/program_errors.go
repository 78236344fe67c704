package redelegate

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/code-payments/redelegate-client/pkg/solana"
)

// StakeError is a custom error code returned by the program.
type StakeError uint32

const (
	StakeErrorNoCreditsToRedeem StakeError = iota
	StakeErrorLockupInForce
	StakeErrorAlreadyDeactivated
	StakeErrorTooSoonToRedelegate
	StakeErrorInsufficientStake
	StakeErrorMergeTransientStake
	StakeErrorMergeMismatch
	StakeErrorCustodianMissing
	StakeErrorCustodianSignatureMissing
	StakeErrorInsufficientReferenceVotes
	StakeErrorVoteAddressMismatch
	StakeErrorMinimumDelinquentEpochsForDeactivationNotMet
	StakeErrorInsufficientDelegation
	StakeErrorRedelegateTransientOrInactiveStake
	StakeErrorRedelegateToSameVoteAccount
	StakeErrorRedelegatedStakeMustFullyActivateBeforeDeactivationIsPermitted
	StakeErrorEpochRewardsActive
	stakeErrorCount
)

var stakeErrorDetails = [stakeErrorCount]struct {
	name    string
	message string
}{
	{"NoCreditsToRedeem", "not enough credits to redeem"},
	{"LockupInForce", "lockup has not yet expired"},
	{"AlreadyDeactivated", "stake already deactivated"},
	{"TooSoonToRedelegate", "one re-delegation permitted per epoch"},
	{"InsufficientStake", "split amount is more than is staked"},
	{"MergeTransientStake", "stake account with transient stake cannot be merged"},
	{"MergeMismatch", "stake account merge failed due to different authority, lockups or state"},
	{"CustodianMissing", "custodian address not present"},
	{"CustodianSignatureMissing", "custodian signature not present"},
	{"InsufficientReferenceVotes", "insufficient voting activity in the reference vote account"},
	{"VoteAddressMismatch", "stake account is not delegated to the provided vote account"},
	{"MinimumDelinquentEpochsForDeactivationNotMet", "stake account has not been delinquent for the minimum epochs required for deactivation"},
	{"InsufficientDelegation", "delegation amount is less than the minimum"},
	{"RedelegateTransientOrInactiveStake", "stake account with transient or inactive stake cannot be redelegated"},
	{"RedelegateToSameVoteAccount", "stake redelegation to the same vote account is not permitted"},
	{"RedelegatedStakeMustFullyActivateBeforeDeactivationIsPermitted", "redelegated stake must be fully activated before deactivation"},
	{"EpochRewardsActive", "stake action is not permitted while the epoch rewards period is active"},
}

func (e StakeError) Name() string {
	if e >= stakeErrorCount {
		return "Unknown"
	}
	return stakeErrorDetails[e].name
}

func (e StakeError) Error() string {
	if e >= stakeErrorCount {
		return fmt.Sprintf("unknown stake error: %d", uint32(e))
	}
	return stakeErrorDetails[e].message
}

// GetProgramError extracts the StakeError carried by a transaction or
// instruction error.
func GetProgramError(err error) (StakeError, bool) {
	var custom solana.CustomError
	if !errors.As(err, &custom) {
		return 0, false
	}
	if custom < 0 || StakeError(custom) >= stakeErrorCount {
		return 0, false
	}
	return StakeError(custom), true
}
