package lotto

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
)

// Config is the full production configuration
type Config struct {
	// Lottery round config
	Lottery *RoundConfig `mapstructure:"lottery"`

	// Redis config for the round state store
	Redis *RedisConfig `mapstructure:"redis"`

	// Circuit breaker config
	CircuitBreaker *CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

func (c *Config) Validate() error {
	if c.Lottery == nil {
		return ErrInvalidParameters
	}
	if err := c.Lottery.Validate(); err != nil {
		return err
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required")
	}
	if c.Redis.PoolSize <= 0 {
		return fmt.Errorf("redis pool size must be positive")
	}

	return nil
}

// RoundConfig holds the lottery round parameters. TicketPrice and Duration
// are fixed at construction and never change for the lifetime of a lottery.
type RoundConfig struct {
	// TicketPrice in the smallest currency unit
	TicketPrice uint64 `mapstructure:"ticket_price"`

	// Duration of the sale window in host time units
	Duration uint64 `mapstructure:"duration"`

	// EnforceWindow rejects purchases once the sale window has elapsed.
	// Off by default.
	EnforceWindow bool `mapstructure:"enforce_window"`

	// RetireOnDraw moves all of a round's identifiers into the retired set
	// when the round is drawn. On by default; switching it off allows
	// identifiers to repeat across rounds.
	RetireOnDraw bool `mapstructure:"retire_on_draw"`
}

// DefaultRoundConfig returns the default round configuration
func DefaultRoundConfig() *RoundConfig {
	return &RoundConfig{
		TicketPrice:   DefaultTicketPrice,
		Duration:      DefaultRoundDuration,
		EnforceWindow: false,
		RetireOnDraw:  true,
	}
}

// NewRoundConfig creates a round configuration with validation
func NewRoundConfig(ticketPrice, duration uint64) (*RoundConfig, error) {
	cfg := &RoundConfig{
		TicketPrice:  ticketPrice,
		Duration:     duration,
		RetireOnDraw: true,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the round configuration
func (rc *RoundConfig) Validate() error {
	if rc.TicketPrice == 0 {
		return ErrInvalidTicketPrice
	}
	if rc.EnforceWindow && rc.Duration == 0 {
		return ErrInvalidDuration
	}
	return nil
}

// RedisConfig holds connection settings for the round state store
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	PoolSize     int `mapstructure:"pool_size"`
	MinIdleConns int `mapstructure:"min_idle_conns"`
	MaxRetries   int `mapstructure:"max_retries"`

	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout"`
}

// CircuitBreakerConfig configures the optional breaker wrapper
type CircuitBreakerConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Name          string        `mapstructure:"name"`
	MaxRequests   uint32        `mapstructure:"max_requests"`
	Interval      time.Duration `mapstructure:"interval"`
	Timeout       time.Duration `mapstructure:"timeout"`
	FailureRatio  float64       `mapstructure:"failure_ratio"`
	MinRequests   uint32        `mapstructure:"min_requests"`
	OnStateChange bool          `mapstructure:"on_state_change"`
}

// DefaultCircuitBreakerConfig returns the default circuit breaker configuration
func DefaultCircuitBreakerConfig() *CircuitBreakerConfig {
	return &CircuitBreakerConfig{
		Enabled:       true,
		Name:          DefaultCircuitBreakerName,
		MaxRequests:   DefaultCircuitBreakerMaxRequests,
		Interval:      DefaultCircuitBreakerInterval,
		Timeout:       DefaultCircuitBreakerTimeout,
		FailureRatio:  DefaultCircuitBreakerFailureRatio,
		MinRequests:   DefaultCircuitBreakerMinRequests,
		OnStateChange: DefaultCircuitBreakerOnStateChange,
	}
}

// ConfigManager loads and watches the configuration
type ConfigManager struct {
	viper  *viper.Viper
	config *Config
}

// NewConfigManager creates a config manager with file discovery and env overrides
func NewConfigManager() *ConfigManager {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/lotto")
	v.AddConfigPath("$HOME/.lotto")

	v.SetEnvPrefix("LOTTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &ConfigManager{viper: v}
}

// LoadConfig reads the configuration from file and environment
func (cm *ConfigManager) LoadConfig() (*Config, error) {
	cm.setDefaults()

	if err := cm.viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing config file falls back to defaults
	}

	config := &Config{}
	if err := cm.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cm.config = config
	return config, nil
}

// setDefaults sets default configuration values
func (cm *ConfigManager) setDefaults() {
	cm.viper.SetDefault("lottery.ticket_price", DefaultTicketPrice)
	cm.viper.SetDefault("lottery.duration", DefaultRoundDuration)
	cm.viper.SetDefault("lottery.enforce_window", false)
	cm.viper.SetDefault("lottery.retire_on_draw", true)

	cm.viper.SetDefault("redis.addr", DefaultRedisAddr)
	cm.viper.SetDefault("redis.password", DefaultRedisPassword)
	cm.viper.SetDefault("redis.db", DefaultRedisDB)
	cm.viper.SetDefault("redis.pool_size", DefaultRedisPoolSize)
	cm.viper.SetDefault("redis.min_idle_conns", DefaultRedisMinIdleConns)
	cm.viper.SetDefault("redis.max_retries", DefaultRedisMaxRetries)
	cm.viper.SetDefault("redis.dial_timeout", "5s")
	cm.viper.SetDefault("redis.read_timeout", "3s")
	cm.viper.SetDefault("redis.write_timeout", "3s")
	cm.viper.SetDefault("redis.pool_timeout", "4s")

	cm.viper.SetDefault("circuit_breaker.enabled", true)
	cm.viper.SetDefault("circuit_breaker.name", DefaultCircuitBreakerName)
	cm.viper.SetDefault("circuit_breaker.max_requests", DefaultCircuitBreakerMaxRequests)
	cm.viper.SetDefault("circuit_breaker.interval", "60s")
	cm.viper.SetDefault("circuit_breaker.timeout", "30s")
	cm.viper.SetDefault("circuit_breaker.failure_ratio", DefaultCircuitBreakerFailureRatio)
	cm.viper.SetDefault("circuit_breaker.min_requests", DefaultCircuitBreakerMinRequests)
	cm.viper.SetDefault("circuit_breaker.on_state_change", true)
}

// WatchConfig watches the config file for changes and invokes callback with
// every valid update. Invalid updates are dropped without interrupting the
// running configuration.
func (cm *ConfigManager) WatchConfig(callback func(*Config)) error {
	cm.viper.WatchConfig()
	cm.viper.OnConfigChange(func(e fsnotify.Event) {
		config := &Config{}
		if err := cm.viper.Unmarshal(config); err != nil {
			return
		}
		if err := config.Validate(); err != nil {
			return
		}

		cm.config = config
		if callback != nil {
			callback(config)
		}
	})

	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config { return cm.config }

// ReloadConfig re-reads the configuration
func (cm *ConfigManager) ReloadConfig() (*Config, error) { return cm.LoadConfig() }

// NewDefaultConfigManager creates a config manager preloaded with defaults
func NewDefaultConfigManager() *ConfigManager {
	cm := NewConfigManager()
	cm.setDefaults()

	cm.config = &Config{
		Lottery:        DefaultRoundConfig(),
		Redis:          DefaultRedisConfig(),
		CircuitBreaker: DefaultCircuitBreakerConfig(),
	}
	return cm
}

// DefaultRedisConfig returns the default Redis configuration
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:         DefaultRedisAddr,
		Password:     DefaultRedisPassword,
		DB:           DefaultRedisDB,
		PoolSize:     DefaultRedisPoolSize,
		MinIdleConns: DefaultRedisMinIdleConns,
		MaxRetries:   DefaultRedisMaxRetries,
		DialTimeout:  DefaultRedisDialTimeout,
		ReadTimeout:  DefaultRedisReadTimeout,
		WriteTimeout: DefaultRedisWriteTimeout,
		PoolTimeout:  DefaultRedisPoolTimeout,
	}
}

// NewRedisClient creates a Redis client with the default configuration
func NewRedisClient() *redis.Client {
	return NewRedisClientFromConfig(DefaultRedisConfig())
}

// NewRedisClientFromConfig creates a Redis client from the given configuration
func NewRedisClientFromConfig(config *RedisConfig) *redis.Client {
	if config == nil {
		config = DefaultRedisConfig()
	}

	return redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		PoolTimeout:  config.PoolTimeout,
	})
}
