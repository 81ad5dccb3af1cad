package breaker

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
)

// Config configures a Breaker.
type Config struct {
	// FailureThreshold is the number of consecutive failures before the
	// circuit opens.
	// Default: 5
	FailureThreshold int

	// ResetTimeout is the cooldown the circuit stays open before a probe
	// is admitted.
	// Default: 30 seconds
	ResetTimeout time.Duration

	// HalfOpenTrials is the number of successful probes required to close
	// the circuit again.
	// Default: 1
	HalfOpenTrials int

	// MaxRetries is the number of extra attempts beyond the first.
	// Default: 2. Set to a negative value to attempt the call exactly once.
	MaxRetries int

	// BaseDelay is the backoff delay after the first failed attempt.
	// Default: 100ms
	BaseDelay time.Duration

	// BackoffFactor is the exponential backoff multiplier.
	// Default: 2.0
	BackoffFactor float64

	// MaxDelay caps the backoff delay between attempts.
	// Default: 30 seconds
	MaxDelay time.Duration

	// RetryOn decides whether an error at a given attempt (numbered from 1)
	// should be retried.
	// Default: retry every error not marked with Permanent.
	RetryOn func(err error, attempt int) bool

	// Listener receives state-change and retry-outcome events.
	Listener Listener

	// Clock supplies time. Tests may substitute a fake.
	// Default: RealClock
	Clock Clock
}

// withDefaults returns a copy of c with zero fields replaced by defaults.
func (c Config) withDefaults() Config {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 5
	}
	if c.ResetTimeout <= 0 {
		c.ResetTimeout = 30 * time.Second
	}
	if c.HalfOpenTrials <= 0 {
		c.HalfOpenTrials = 1
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 2
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = 100 * time.Millisecond
	}
	if c.BackoffFactor <= 0 {
		c.BackoffFactor = 2.0
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	if c.Clock == nil {
		c.Clock = RealClock{}
	}
	return c
}

// Settings is the JSON-facing configuration for a single named breaker.
// Duration values are parsed with time.ParseDuration. Absent fields fall
// back to the Config defaults.
type Settings struct {
	// FailureThreshold is the number of consecutive failures before
	// opening. Example: 5.
	FailureThreshold *int `json:"failure_threshold,omitempty"`
	// ResetTimeout is the cooldown before probing. Example: "30s".
	ResetTimeout *string `json:"reset_timeout,omitempty"`
	// HalfOpenTrials is the number of probe successes needed to close.
	// Example: 2.
	HalfOpenTrials *int `json:"half_open_trials,omitempty"`
	// MaxRetries is the number of extra attempts beyond the first.
	// Example: 3.
	MaxRetries *int `json:"max_retries,omitempty"`
	// BaseDelay is the first backoff delay. Example: "100ms".
	BaseDelay *string `json:"base_delay,omitempty"`
	// BackoffFactor is the exponential multiplier. Example: 2.0.
	BackoffFactor *float64 `json:"backoff_factor,omitempty"`
	// MaxDelay caps the backoff delay. Example: "5s".
	MaxDelay *string `json:"max_delay,omitempty"`
}

// Config converts s into a Config, parsing duration strings.
func (s Settings) Config() (Config, error) {
	var cfg Config

	if s.FailureThreshold != nil {
		cfg.FailureThreshold = *s.FailureThreshold
	}
	if s.HalfOpenTrials != nil {
		cfg.HalfOpenTrials = *s.HalfOpenTrials
	}
	if s.MaxRetries != nil {
		cfg.MaxRetries = *s.MaxRetries
		if cfg.MaxRetries == 0 {
			cfg.MaxRetries = -1
		}
	}
	if s.BackoffFactor != nil {
		cfg.BackoffFactor = *s.BackoffFactor
	}

	var err error
	if cfg.ResetTimeout, err = parseDuration("reset_timeout", s.ResetTimeout); err != nil {
		return Config{}, err
	}
	if cfg.BaseDelay, err = parseDuration("base_delay", s.BaseDelay); err != nil {
		return Config{}, err
	}
	if cfg.MaxDelay, err = parseDuration("max_delay", s.MaxDelay); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func parseDuration(field string, s *string) (time.Duration, error) {
	if s == nil {
		return 0, nil
	}
	d, err := time.ParseDuration(*s)
	if err != nil {
		return 0, fmt.Errorf("breaker: %s: %w", field, err)
	}
	return d, nil
}

// configFile is the top-level JSON structure read by LoadConfig.
type configFile struct {
	Breakers map[string]Settings `json:"breakers"`
}

// LoadConfig reads a JSON configuration file and returns a Registry with a
// breaker pre-created for every named entry. Registry options apply to the
// created breakers.
//
//	{
//	  "breakers": {
//	    "billing-api": {"failure_threshold": 3, "reset_timeout": "10s"}
//	  }
//	}
func LoadConfig(path string, opts ...RegistryOption) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("breaker: read config: %w", err)
	}

	var cf configFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("breaker: parse config: %w", err)
	}

	reg := NewRegistry(opts...)
	for name, s := range cf.Breakers {
		cfg, err := s.Config()
		if err != nil {
			return nil, fmt.Errorf("breaker: %q: %w", name, err)
		}
		reg.Get(name, cfg)
	}

	return reg, nil
}
