package token

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/redelegate-client/pkg/solana"
)

var (
	// ErrAccountNotFound indicates there is no account for the given address.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidTokenAccount indicates that a Solana account exists at the
	// given address, but it is either not initialized, or not configured correctly.
	ErrInvalidTokenAccount = errors.New("invalid token account")
)

// AccountInfoGetter loads raw accounts. solana.Client satisfies it.
type AccountInfoGetter interface {
	GetAccountInfo(ed25519.PublicKey, solana.Commitment) (solana.AccountInfo, error)
}

// Client provides utilities for accessing token accounts for a given token.
type Client struct {
	sc    AccountInfoGetter
	token ed25519.PublicKey
}

// NewClient creates a new Client.
func NewClient(sc AccountInfoGetter, token ed25519.PublicKey) *Client {
	return &Client{
		sc:    sc,
		token: token,
	}
}

func (c *Client) Token() ed25519.PublicKey {
	return c.token
}

// GetAccount returns the token account info for the specified account.
//
// If the account is not initialized, or belongs to a different
// mint, then ErrInvalidTokenAccount is returned.
func (c *Client) GetAccount(accountID ed25519.PublicKey, commitment solana.Commitment) (*Account, error) {
	data, err := c.load(accountID, commitment)
	if err != nil {
		return nil, err
	}

	var account Account
	if err := account.Unmarshal(data); err != nil {
		return nil, errors.Wrap(ErrInvalidTokenAccount, err.Error())
	}
	if account.State == AccountStateUninitialized {
		return nil, ErrInvalidTokenAccount
	}
	if !bytes.Equal(c.token, account.Mint) {
		return nil, ErrInvalidTokenAccount
	}

	return &account, nil
}

// GetMint returns the mint of the client's token.
func (c *Client) GetMint(commitment solana.Commitment) (*Mint, error) {
	data, err := c.load(c.token, commitment)
	if err != nil {
		return nil, err
	}

	var mint Mint
	if err := mint.Unmarshal(data); err != nil {
		return nil, errors.Wrap(ErrInvalidTokenAccount, err.Error())
	}
	if !mint.IsInitialized {
		return nil, ErrInvalidTokenAccount
	}

	return &mint, nil
}

func (c *Client) load(address ed25519.PublicKey, commitment solana.Commitment) ([]byte, error) {
	accountInfo, err := c.sc.GetAccountInfo(address, commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get account info")
	}

	if !bytes.Equal(accountInfo.Owner, ProgramKey) {
		return nil, ErrInvalidTokenAccount
	}

	return accountInfo.Data, nil
}
