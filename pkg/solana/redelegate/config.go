package redelegate

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/ybbus/jsonrpc"
	xrate "golang.org/x/time/rate"

	"github.com/code-payments/redelegate-client/pkg/config"
	"github.com/code-payments/redelegate-client/pkg/config/env"
	"github.com/code-payments/redelegate-client/pkg/config/memory"
	"github.com/code-payments/redelegate-client/pkg/config/wrapper"
	"github.com/code-payments/redelegate-client/pkg/rate"
	"github.com/code-payments/redelegate-client/pkg/solana"
)

const (
	envConfigPrefix = "REDELEGATE_CLIENT_"

	RPCEndpointConfigEnvName = envConfigPrefix + "RPC_ENDPOINT"
	defaultRPCEndpoint       = string(solana.EnvironmentProd)

	CommitmentConfigEnvName = envConfigPrefix + "COMMITMENT"
	defaultCommitment       = "confirmed"

	RPCRateLimitConfigEnvName = envConfigPrefix + "RPC_RATE_LIMIT"
	defaultRPCRateLimit       = 0

	RPCTimeoutConfigEnvName = envConfigPrefix + "RPC_TIMEOUT"
	defaultRPCTimeout       = 30 * time.Second

	PDACacheBudgetConfigEnvName = envConfigPrefix + "PDA_CACHE_BUDGET"
	defaultPDACacheBudget       = DefaultAddressCacheBudget
)

type conf struct {
	rpcEndpoint    config.String
	commitment     config.String
	rpcRateLimit   config.Float64
	rpcTimeout     config.Duration
	pdaCacheBudget config.Uint64
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			rpcEndpoint:    env.NewStringConfig(RPCEndpointConfigEnvName, defaultRPCEndpoint),
			commitment:     env.NewStringConfig(CommitmentConfigEnvName, defaultCommitment),
			rpcRateLimit:   env.NewFloat64Config(RPCRateLimitConfigEnvName, defaultRPCRateLimit),
			rpcTimeout:     env.NewDurationConfig(RPCTimeoutConfigEnvName, defaultRPCTimeout),
			pdaCacheBudget: env.NewUint64Config(PDACacheBudgetConfigEnvName, defaultPDACacheBudget),
		}
	}
}

// Overrides are fixed config values. Zero values keep the defaults.
type Overrides struct {
	RPCEndpoint    string
	Commitment     string
	RPCRateLimit   float64
	RPCTimeout     time.Duration
	PDACacheBudget uint64
}

// WithOverrides returns configuration with fixed values, for tests and
// embedding applications that manage their own config.
func WithOverrides(overrides *Overrides) ConfigProvider {
	return func() *conf {
		return &conf{
			rpcEndpoint:    wrapper.NewStringConfig(memoryConfigIfSet(overrides.RPCEndpoint != "", overrides.RPCEndpoint), defaultRPCEndpoint),
			commitment:     wrapper.NewStringConfig(memoryConfigIfSet(overrides.Commitment != "", overrides.Commitment), defaultCommitment),
			rpcRateLimit:   wrapper.NewFloat64Config(memoryConfigIfSet(overrides.RPCRateLimit != 0, overrides.RPCRateLimit), defaultRPCRateLimit),
			rpcTimeout:     wrapper.NewDurationConfig(memoryConfigIfSet(overrides.RPCTimeout != 0, overrides.RPCTimeout), defaultRPCTimeout),
			pdaCacheBudget: wrapper.NewUint64Config(memoryConfigIfSet(overrides.PDACacheBudget != 0, overrides.PDACacheBudget), defaultPDACacheBudget),
		}
	}
}

func memoryConfigIfSet(set bool, value interface{}) config.Config {
	c := memory.NewConfig(value)
	if !set {
		c.ClearValue()
	}
	return c
}

// NewClientFromConfig builds a Client backed by a rate limited JSON-RPC
// client.
func NewClientFromConfig(provider ConfigProvider) (*Client, error) {
	ctx := context.Background()
	conf := provider()

	commitment, err := solana.ParseCommitment(conf.commitment.Get(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "invalid commitment")
	}

	rateLimit := conf.rpcRateLimit.Get(ctx)
	if rateLimit < 0 {
		return nil, errors.Errorf("invalid rpc rate limit: %v", rateLimit)
	}

	var limiter rate.Limiter = rate.NoLimiter{}
	if rateLimit > 0 {
		limiter = rate.NewLocalRateLimiter(xrate.Limit(rateLimit), 0)
	}

	budget := conf.pdaCacheBudget.Get(ctx)
	if budget == 0 {
		return nil, errors.New("pda cache budget must be positive")
	}

	sc := solana.NewWithRPCOptions(
		conf.rpcEndpoint.Get(ctx),
		&jsonrpc.RPCClientOpts{
			HTTPClient: &http.Client{Timeout: conf.rpcTimeout.Get(ctx)},
		},
		limiter,
	)

	client := NewClient(sc, NewAddressCache(int(budget)))
	client.commitment = commitment
	return client, nil
}
