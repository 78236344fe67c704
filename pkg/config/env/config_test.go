package env

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/code-payments/redelegate-client/pkg/config"
)

func TestConfig(t *testing.T) {
	const key = "ENV_CONFIG_TEST_VAR"

	t.Setenv(key, "value")
	v, err := NewConfig(key).Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), v)

	// Keys are upper cased
	v, err = NewConfig("env_config_test_var").Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), v)

	t.Setenv(key, "")
	v, err = NewConfig(key).Get(context.Background())
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)
}

func TestTypedConfig(t *testing.T) {
	const key = "ENV_CONFIG_TEST_RATE"

	c := NewFloat64Config(key, 10)
	assert.Equal(t, 10.0, c.Get(context.Background()))

	t.Setenv(key, "2.5")
	assert.Equal(t, 2.5, c.Get(context.Background()))
}
