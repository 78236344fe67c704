package solana

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sync/atomic"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/redelegate-client/pkg/testutil"
)

func TestSignatureStatus(t *testing.T) {
	zero, one := 0, 1

	testCases := []struct {
		s         SignatureStatus
		confirmed bool
		finalized bool
	}{
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: "",
			},
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: "random",
			},
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: confirmationStatusProcessed,
			},
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &one,
				ConfirmationStatus: "",
			},
			confirmed: true,
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: confirmationStatusConfirmed,
			},
			confirmed: true,
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: confirmationStatusFinalized,
			},
			confirmed: true,
			finalized: true,
		},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.confirmed, tc.s.Confirmed())
		assert.Equal(t, tc.finalized, tc.s.Finalized())
	}
}

func newTestClient(t *testing.T) (*client, *testutil.RPCServer) {
	c, server, _ := newTestClientWithLogs(t)
	return c, server
}

func newTestClientWithLogs(t *testing.T) (*client, *testutil.RPCServer, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	server := testutil.NewRPCServer(t)
	c := newClient(server.URL, nil, nil, newRetrier(logger.WithField("type", "solana/client")))
	return c, server, hook
}

func accountResult(owner []byte, data []byte, lamports uint64) map[string]interface{} {
	return map[string]interface{}{
		"lamports":   lamports,
		"owner":      base58.Encode(owner),
		"data":       []string{base64.StdEncoding.EncodeToString(data), "base64"},
		"executable": false,
		"rentEpoch":  0,
	}
}

func TestClient_GetAccountInfo(t *testing.T) {
	c, server := newTestClient(t)
	keys := testutil.GenerateSolanaKeys(t, 2)
	account, owner := keys[0], keys[1]

	server.Handle("getAccountInfo", func(params json.RawMessage) (interface{}, *testutil.RPCError) {
		var args []json.RawMessage
		require.NoError(t, json.Unmarshal(params, &args))
		require.Len(t, args, 2)

		var address string
		require.NoError(t, json.Unmarshal(args[0], &address))

		var config struct {
			Commitment string `json:"commitment"`
			Encoding   string `json:"encoding"`
		}
		require.NoError(t, json.Unmarshal(args[1], &config))
		assert.Equal(t, "confirmed", config.Commitment)
		assert.Equal(t, "base64", config.Encoding)

		if address != base58.Encode(account) {
			return map[string]interface{}{"context": map[string]interface{}{"slot": 10}, "value": nil}, nil
		}
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 10},
			"value":   accountResult(owner, []byte{1, 2, 3}, 42),
		}, nil
	})

	info, err := c.GetAccountInfo(account, CommitmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, info.Data)
	assert.EqualValues(t, owner, info.Owner)
	assert.EqualValues(t, 42, info.Lamports)
	assert.False(t, info.Executable)

	_, err = c.GetAccountInfo(owner, CommitmentConfirmed)
	assert.Equal(t, ErrNoAccountInfo, err)
}

func TestClient_GetLatestBlockhash_Cached(t *testing.T) {
	c, server := newTestClient(t)

	var expected Blockhash
	expected[0] = 7
	expected[31] = 9

	server.Handle("getLatestBlockhash", func(json.RawMessage) (interface{}, *testutil.RPCError) {
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 1},
			"value": map[string]interface{}{
				"blockhash":            base58.Encode(expected[:]),
				"lastValidBlockHeight": 100,
			},
		}, nil
	})

	for i := 0; i < 3; i++ {
		hash, err := c.GetLatestBlockhash()
		require.NoError(t, err)
		assert.Equal(t, expected, hash)
	}
	assert.Equal(t, 1, server.Calls("getLatestBlockhash"))
}

func TestClient_RetriesRateLimited(t *testing.T) {
	c, server := newTestClient(t)

	var attempts int32
	server.Handle("getMinimumBalanceForRentExemption", func(params json.RawMessage) (interface{}, *testutil.RPCError) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return nil, &testutil.RPCError{Code: 429, Message: "Too many requests"}
		}

		var args []uint64
		require.NoError(t, json.Unmarshal(params, &args))
		require.Equal(t, []uint64{122}, args)
		return 1740000, nil
	})

	lamports, err := c.GetMinimumBalanceForRentExemption(122)
	require.NoError(t, err)
	assert.EqualValues(t, 1740000, lamports)
	assert.Equal(t, 3, server.Calls("getMinimumBalanceForRentExemption"))
}

func TestClient_RetryLimit(t *testing.T) {
	c, server, hook := newTestClientWithLogs(t)

	server.Handle("getSlot", func(json.RawMessage) (interface{}, *testutil.RPCError) {
		return nil, &testutil.RPCError{Code: rpcNodeUnhealthyCode, Message: "Node is unhealthy"}
	})

	_, err := c.GetSlot(CommitmentFinalized)
	assert.Error(t, err)
	assert.Equal(t, 3, server.Calls("getSlot"))

	var retried []interface{}
	for _, entry := range hook.AllEntries() {
		if entry.Message == "retrying rpc request" {
			retried = append(retried, entry.Data["attempts"])
		}
	}
	assert.Equal(t, []interface{}{uint(1), uint(2)}, retried)
}

func TestClient_NonRetriableError(t *testing.T) {
	c, server := newTestClient(t)

	_, err := c.GetSlot(CommitmentFinalized)
	assert.Error(t, err)
	assert.Equal(t, 1, server.Calls("getSlot"))
}

func TestClient_GetBalance(t *testing.T) {
	c, server := newTestClient(t)
	keys := testutil.GenerateSolanaKeys(t, 2)

	server.Handle("getBalance", func(params json.RawMessage) (interface{}, *testutil.RPCError) {
		var args []json.RawMessage
		require.NoError(t, json.Unmarshal(params, &args))

		var address string
		require.NoError(t, json.Unmarshal(args[0], &address))
		if address != base58.Encode(keys[0]) {
			return nil, &testutil.RPCError{Code: invalidParamCode, Message: "Invalid param"}
		}
		return map[string]interface{}{"context": map[string]interface{}{"slot": 1}, "value": 5000}, nil
	})

	balance, err := c.GetBalance(keys[0])
	require.NoError(t, err)
	assert.EqualValues(t, 5000, balance)

	_, err = c.GetBalance(keys[1])
	assert.Equal(t, ErrNoBalance, err)
}

func TestClient_SubmitTransaction(t *testing.T) {
	c, server := newTestClient(t)

	keys := generateKeys(t, 2)
	tx := NewTransaction(public(keys[0]), NewInstruction(public(keys[1]), []byte{1}, NewAccountMeta(public(keys[0]), true)))
	require.NoError(t, tx.Sign(keys[0]))

	var submitted string
	server.Handle("sendTransaction", func(params json.RawMessage) (interface{}, *testutil.RPCError) {
		var args []json.RawMessage
		require.NoError(t, json.Unmarshal(params, &args))
		require.NoError(t, json.Unmarshal(args[0], &submitted))
		return base58.Encode(tx.Signature()), nil
	})

	sig, err := c.SubmitTransaction(tx, CommitmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, tx.Signatures[0], sig)

	raw, err := base58.Decode(submitted)
	require.NoError(t, err)
	assert.Equal(t, tx.Marshal(), raw)
}

func TestClient_SubmitTransaction_PreflightFailure(t *testing.T) {
	c, server := newTestClient(t)

	keys := generateKeys(t, 2)
	tx := NewTransaction(public(keys[0]), NewInstruction(public(keys[1]), []byte{1}, NewAccountMeta(public(keys[0]), true)))
	require.NoError(t, tx.Sign(keys[0]))

	server.Handle("sendTransaction", func(json.RawMessage) (interface{}, *testutil.RPCError) {
		return nil, &testutil.RPCError{
			Code:    -32002,
			Message: "Transaction simulation failed",
			Data: map[string]interface{}{
				"err": map[string]interface{}{
					"InstructionError": []interface{}{0, map[string]interface{}{"Custom": 3}},
				},
			},
		}
	})

	_, err := c.SubmitTransaction(tx, CommitmentConfirmed)
	require.Error(t, err)

	txErr, ok := err.(*TransactionError)
	require.True(t, ok)
	require.NotNil(t, txErr.InstructionError())
	assert.Equal(t, 0, txErr.InstructionError().Index)
	assert.Equal(t, CustomError(3), *txErr.InstructionError().CustomError())
}

func TestClient_GetSignatureStatuses(t *testing.T) {
	c, server := newTestClient(t)

	sigs := []Signature{{1}, {2}, {3}}
	server.Handle("getSignatureStatuses", func(json.RawMessage) (interface{}, *testutil.RPCError) {
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 100},
			"value": []interface{}{
				map[string]interface{}{
					"slot":               90,
					"confirmations":      nil,
					"confirmationStatus": "finalized",
					"err":                nil,
				},
				nil,
				map[string]interface{}{
					"slot":               95,
					"confirmations":      2,
					"confirmationStatus": "confirmed",
					"err":                map[string]interface{}{"InstructionError": []interface{}{1, "InvalidArgument"}},
				},
			},
		}, nil
	})

	statuses, err := c.GetSignatureStatuses(sigs)
	require.NoError(t, err)
	require.Len(t, statuses, 3)

	require.NotNil(t, statuses[0])
	assert.EqualValues(t, 90, statuses[0].Slot)
	assert.True(t, statuses[0].Finalized())
	assert.Nil(t, statuses[0].ErrorResult)

	assert.Nil(t, statuses[1])

	require.NotNil(t, statuses[2])
	assert.True(t, statuses[2].Confirmed())
	assert.False(t, statuses[2].Finalized())
	require.NotNil(t, statuses[2].ErrorResult)
	assert.Equal(t, InstructionErrorInvalidArgument, statuses[2].ErrorResult.InstructionError().ErrorKey())

	server.Handle("getSignatureStatuses", func(json.RawMessage) (interface{}, *testutil.RPCError) {
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 100},
			"value": []interface{}{
				map[string]interface{}{
					"slot":               90,
					"confirmations":      nil,
					"confirmationStatus": "finalized",
					"err":                nil,
				},
			},
		}, nil
	})

	status, err := c.GetSignatureStatus(sigs[0], CommitmentFinalized)
	require.NoError(t, err)
	assert.EqualValues(t, 90, status.Slot)
}

func TestClient_GetFilteredProgramAccounts(t *testing.T) {
	c, server := newTestClient(t)
	keys := testutil.GenerateSolanaKeys(t, 3)
	program, first, second := keys[0], keys[1], keys[2]

	server.Handle("getProgramAccounts", func(params json.RawMessage) (interface{}, *testutil.RPCError) {
		var args []json.RawMessage
		require.NoError(t, json.Unmarshal(params, &args))
		require.Len(t, args, 2)

		var config struct {
			Commitment string `json:"commitment"`
			Filters    []struct {
				Memcmp struct {
					Offset uint   `json:"offset"`
					Bytes  string `json:"bytes"`
				} `json:"memcmp"`
			} `json:"filters"`
		}
		require.NoError(t, json.Unmarshal(args[1], &config))
		require.Len(t, config.Filters, 1)
		assert.Equal(t, "finalized", config.Commitment)
		assert.EqualValues(t, 9, config.Filters[0].Memcmp.Offset)
		assert.Equal(t, base58.Encode([]byte{4, 5, 6}), config.Filters[0].Memcmp.Bytes)

		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 77},
			"value": []interface{}{
				map[string]interface{}{"pubkey": base58.Encode(first), "account": accountResult(program, []byte{1}, 10)},
				map[string]interface{}{"pubkey": base58.Encode(second), "account": accountResult(program, []byte{2}, 20)},
			},
		}, nil
	})

	accounts, slot, err := c.GetFilteredProgramAccounts(program, 9, []byte{4, 5, 6}, CommitmentFinalized)
	require.NoError(t, err)
	assert.EqualValues(t, 77, slot)
	require.Len(t, accounts, 2)
	assert.EqualValues(t, first, accounts[0].Address)
	assert.Equal(t, []byte{1}, accounts[0].Data)
	assert.EqualValues(t, second, accounts[1].Address)
	assert.EqualValues(t, 20, accounts[1].Lamports)
	assert.EqualValues(t, program, accounts[1].Owner)
}

type countingLimiter struct {
	waits int32
}

func (l *countingLimiter) Allow(string) bool { return true }

func (l *countingLimiter) Wait(context.Context, string) error {
	atomic.AddInt32(&l.waits, 1)
	return nil
}

func TestClient_WaitsOnLimiter(t *testing.T) {
	server := testutil.NewRPCServer(t)
	server.Handle("getSlot", func(json.RawMessage) (interface{}, *testutil.RPCError) {
		return 12, nil
	})

	limiter := &countingLimiter{}
	c := NewWithRPCOptions(server.URL, nil, limiter)

	for i := 0; i < 4; i++ {
		slot, err := c.GetSlot(CommitmentProcessed)
		require.NoError(t, err)
		assert.EqualValues(t, 12, slot)
	}
	assert.EqualValues(t, 4, atomic.LoadInt32(&limiter.waits))
}

func TestParseCommitment(t *testing.T) {
	for _, tc := range []struct {
		level    string
		expected Commitment
	}{
		{"processed", CommitmentProcessed},
		{"confirmed", CommitmentConfirmed},
		{"finalized", CommitmentFinalized},
	} {
		actual, err := ParseCommitment(tc.level)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, actual)
	}

	_, err := ParseCommitment("max")
	assert.Error(t, err)
}
