package lotto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundConfig_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, DefaultRoundConfig().Validate())
	})

	t.Run("zero ticket price", func(t *testing.T) {
		cfg := &RoundConfig{TicketPrice: 0, Duration: 100}
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidTicketPrice)
	})

	t.Run("zero duration allowed without enforcement", func(t *testing.T) {
		cfg := &RoundConfig{TicketPrice: 100, Duration: 0}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("zero duration rejected with enforcement", func(t *testing.T) {
		cfg := &RoundConfig{TicketPrice: 100, Duration: 0, EnforceWindow: true}
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidDuration)
	})
}

func TestNewRoundConfig(t *testing.T) {
	cfg, err := NewRoundConfig(100, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), cfg.TicketPrice)
	assert.True(t, cfg.RetireOnDraw, "retirement defaults on")
	assert.False(t, cfg.EnforceWindow, "window enforcement defaults off")

	_, err = NewRoundConfig(0, 100)
	assert.ErrorIs(t, err, ErrInvalidTicketPrice)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("full default config", func(t *testing.T) {
		cfg := &Config{
			Lottery:        DefaultRoundConfig(),
			Redis:          DefaultRedisConfig(),
			CircuitBreaker: DefaultCircuitBreakerConfig(),
		}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing lottery section", func(t *testing.T) {
		cfg := &Config{Redis: DefaultRedisConfig()}
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidParameters)
	})

	t.Run("empty redis addr", func(t *testing.T) {
		cfg := &Config{
			Lottery: DefaultRoundConfig(),
			Redis:   &RedisConfig{Addr: "", PoolSize: 10},
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive pool size", func(t *testing.T) {
		cfg := &Config{
			Lottery: DefaultRoundConfig(),
			Redis:   &RedisConfig{Addr: "localhost:6379", PoolSize: 0},
		}
		assert.Error(t, cfg.Validate())
	})
}

func TestConfigManager(t *testing.T) {
	t.Run("load without file falls back to defaults", func(t *testing.T) {
		cm := NewConfigManager()

		cfg, err := cm.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, DefaultTicketPrice, cfg.Lottery.TicketPrice)
		assert.Equal(t, DefaultRoundDuration, cfg.Lottery.Duration)
		assert.True(t, cfg.Lottery.RetireOnDraw)
		assert.Equal(t, DefaultRedisAddr, cfg.Redis.Addr)
		assert.Equal(t, DefaultCircuitBreakerName, cfg.CircuitBreaker.Name)
	})

	t.Run("default manager carries a usable config", func(t *testing.T) {
		cm := NewDefaultConfigManager()

		cfg := cm.GetConfig()
		require.NotNil(t, cfg)
		assert.NoError(t, cfg.Validate())
	})
}

func TestNewRedisClientFromConfig(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		client := NewRedisClientFromConfig(nil)
		require.NotNil(t, client)
		assert.Equal(t, DefaultRedisAddr, client.Options().Addr)
	})

	t.Run("custom addr respected", func(t *testing.T) {
		cfg := DefaultRedisConfig()
		cfg.Addr = "redis.internal:6380"
		client := NewRedisClientFromConfig(cfg)
		assert.Equal(t, "redis.internal:6380", client.Options().Addr)
	})
}
