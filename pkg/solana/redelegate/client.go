package redelegate

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/redelegate-client/pkg/solana"
	"github.com/code-payments/redelegate-client/pkg/solana/system"
	"github.com/code-payments/redelegate-client/pkg/solana/token"
)

var (
	// ErrAccountNotFound indicates there is no account at the given address.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAccountOwner indicates the account exists but is owned by a
	// different program than expected.
	ErrInvalidAccountOwner = errors.New("invalid account owner")

	// ErrUninitializedAccount indicates a state account that was allocated
	// but never initialized.
	ErrUninitializedAccount = errors.New("account not initialized")

	// ErrProgramAccountsUnsupported indicates the fetcher cannot list
	// program accounts.
	ErrProgramAccountsUnsupported = errors.New("fetcher does not support listing program accounts")
)

// AccountFetcher loads raw accounts. solana.Client satisfies it.
type AccountFetcher interface {
	GetAccountInfo(ed25519.PublicKey, solana.Commitment) (solana.AccountInfo, error)
}

// ProgramAccountFetcher also lists the accounts of a program. solana.Client
// satisfies it.
type ProgramAccountFetcher interface {
	AccountFetcher

	GetFilteredProgramAccounts(program ed25519.PublicKey, offset uint, filterValue []byte, commitment solana.Commitment) ([]solana.ProgramAccount, uint64, error)
}

// RedelegateStateRecord is a decoded state account and its address.
type RedelegateStateRecord struct {
	Address ed25519.PublicKey
	State   *RedelegateStateAccount
}

// Client loads and decodes the accounts involved in a redelegation. Methods
// given a zero solana.Commitment read at the client's default commitment.
type Client struct {
	log        *logrus.Entry
	fetcher    AccountFetcher
	addresses  *AddressCache
	commitment solana.Commitment
}

// NewClient returns a Client reading through fetcher. A nil addresses uses a
// cache of DefaultAddressCacheBudget owners.
func NewClient(fetcher AccountFetcher, addresses *AddressCache) *Client {
	if addresses == nil {
		addresses = NewAddressCache(DefaultAddressCacheBudget)
	}

	return &Client{
		log:        logrus.StandardLogger().WithField("type", "redelegate/client"),
		fetcher:    fetcher,
		addresses:  addresses,
		commitment: solana.CommitmentConfirmed,
	}
}

// DefaultCommitment is the commitment the client was configured with.
func (c *Client) DefaultCommitment() solana.Commitment {
	return c.commitment
}

func (c *Client) commitmentOrDefault(commitment solana.Commitment) solana.Commitment {
	if commitment == (solana.Commitment{}) {
		return c.commitment
	}
	return commitment
}

// GetRedelegateStateAddress returns the state address of owner and its bump.
func (c *Client) GetRedelegateStateAddress(owner ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return c.addresses.GetRedelegateStateAddress(owner)
}

// GetRedelegateState loads the state account at address.
func (c *Client) GetRedelegateState(address ed25519.PublicKey, commitment solana.Commitment) (*RedelegateStateAccount, error) {
	info, err := c.load(address, PROGRAM_ID, commitment)
	if err != nil {
		return nil, err
	}

	var state RedelegateStateAccount
	if err := state.Unmarshal(info.Data); err != nil {
		c.log.WithField("method", "GetRedelegateState").
			WithField("address", base58.Encode(address)).
			WithError(err).
			Debug("invalid redelegate state")
		return nil, errors.Wrap(err, "invalid redelegate state")
	}
	if !state.IsInitialized {
		return nil, ErrUninitializedAccount
	}

	return &state, nil
}

// GetRedelegateStateByOwner derives the state address of owner and loads it.
func (c *Client) GetRedelegateStateByOwner(owner ed25519.PublicKey, commitment solana.Commitment) (ed25519.PublicKey, *RedelegateStateAccount, error) {
	address, _, err := c.addresses.GetRedelegateStateAddress(owner)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to derive redelegate state address")
	}

	state, err := c.GetRedelegateState(address, commitment)
	if err != nil {
		return nil, nil, err
	}
	if !bytes.Equal(state.Owner, owner) {
		return nil, nil, errors.Errorf("state at %s belongs to %s", base58.Encode(address), base58.Encode(state.Owner))
	}

	return address, state, nil
}

// GetRedelegateStatesByValidator lists the state accounts currently
// delegated to validator. Accounts that fail to decode are skipped.
func (c *Client) GetRedelegateStatesByValidator(validator ed25519.PublicKey, commitment solana.Commitment) ([]RedelegateStateRecord, error) {
	log := c.log.WithFields(logrus.Fields{
		"method":    "GetRedelegateStatesByValidator",
		"validator": base58.Encode(validator),
	})

	fetcher, ok := c.fetcher.(ProgramAccountFetcher)
	if !ok {
		return nil, ErrProgramAccountsUnsupported
	}

	accounts, slot, err := fetcher.GetFilteredProgramAccounts(PROGRAM_ID, RedelegateStateCurrentValidatorOffset, validator, c.commitmentOrDefault(commitment))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get program accounts")
	}

	records := make([]RedelegateStateRecord, 0, len(accounts))
	for _, account := range accounts {
		var state RedelegateStateAccount
		if err := state.Unmarshal(account.Data); err != nil {
			log.WithError(err).WithField("address", base58.Encode(account.Address)).Warn("skipping undecodable account")
			continue
		}
		records = append(records, RedelegateStateRecord{
			Address: account.Address,
			State:   &state,
		})
	}

	log.WithField("slot", slot).Debugf("found %d redelegate states", len(records))
	return records, nil
}

// GetVault loads the vault token account of a state account for mint.
func (c *Client) GetVault(state, mint ed25519.PublicKey, commitment solana.Commitment) (ed25519.PublicKey, *token.Account, error) {
	vault, err := GetVaultAddress(state, mint)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to derive vault address")
	}

	account, err := token.NewClient(c.fetcher, mint).GetAccount(vault, c.commitmentOrDefault(commitment))
	if err == token.ErrAccountNotFound {
		return nil, nil, ErrAccountNotFound
	} else if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get vault")
	}
	if !bytes.Equal(account.Owner, state) {
		return nil, nil, errors.Wrap(token.ErrInvalidTokenAccount, "vault is not owned by the state account")
	}

	return vault, account, nil
}

// PreviewCompleteRedelegation returns the transfer a CompleteRedelegation
// instruction for stakeAmount would make against the current vault balance.
func (c *Client) PreviewCompleteRedelegation(state, mint ed25519.PublicKey, stakeAmount uint64, commitment solana.Commitment) (CompleteRedelegationTransfer, error) {
	_, vault, err := c.GetVault(state, mint, commitment)
	if err != nil {
		return CompleteRedelegationTransfer{}, err
	}
	return GetCompleteRedelegationTransfer(stakeAmount, vault.Amount), nil
}

// GetStakeState loads a native stake account.
func (c *Client) GetStakeState(address ed25519.PublicKey, commitment solana.Commitment) (*StakeStateV2, error) {
	info, err := c.load(address, system.StakeProgramKey, commitment)
	if err != nil {
		return nil, err
	}

	state, err := UnmarshalStakeStateV2(info.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid stake account %s", base58.Encode(address))
	}
	return state, nil
}

func (c *Client) load(address, owner ed25519.PublicKey, commitment solana.Commitment) (solana.AccountInfo, error) {
	info, err := c.fetcher.GetAccountInfo(address, c.commitmentOrDefault(commitment))
	if err == solana.ErrNoAccountInfo {
		return solana.AccountInfo{}, ErrAccountNotFound
	} else if err != nil {
		return solana.AccountInfo{}, errors.Wrap(err, "failed to get account info")
	}

	if !bytes.Equal(info.Owner, owner) {
		return solana.AccountInfo{}, errors.Wrapf(ErrInvalidAccountOwner, "%s is owned by %s", base58.Encode(address), base58.Encode(info.Owner))
	}

	return info, nil
}
