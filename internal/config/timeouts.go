package config

import (
	"time"

	"github.com/imamik/gamehost/internal/util/retry"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	InstanceCreate    time.Duration `env:"GAMEHOST_TIMEOUT_INSTANCE_CREATE" envDefault:"10m"` // Timeout for instance creation
	InstanceVisible   time.Duration `env:"GAMEHOST_TIMEOUT_INSTANCE_VISIBLE" envDefault:"2m"` // Timeout for a new instance to become describable
	Delete            time.Duration `env:"GAMEHOST_TIMEOUT_DELETE" envDefault:"5m"`           // Timeout for delete operations
	RetryMaxAttempts  int           `env:"GAMEHOST_RETRY_MAX_ATTEMPTS" envDefault:"5"`        // Maximum number of retry attempts
	RetryInitialDelay time.Duration `env:"GAMEHOST_RETRY_INITIAL_DELAY" envDefault:"1s"`      // Initial delay between retries
	RetryMaxDelay     time.Duration `env:"GAMEHOST_RETRY_MAX_DELAY" envDefault:"30s"`         // Upper bound of the delay between retries
	RetryMultiplier   float64       `env:"GAMEHOST_RETRY_MULTIPLIER" envDefault:"2"`          // Backoff growth factor
}

// DefaultTimeouts returns the timeouts used when the environment sets none.
func DefaultTimeouts() *Timeouts {
	return &Timeouts{
		InstanceCreate:    10 * time.Minute,
		InstanceVisible:   2 * time.Minute,
		Delete:            5 * time.Minute,
		RetryMaxAttempts:  5,
		RetryInitialDelay: 1 * time.Second,
		RetryMaxDelay:     30 * time.Second,
		RetryMultiplier:   2,
	}
}

// RetryOptions returns the backoff policy for provider calls followed by
// extra. Unset delay cap and multiplier keep the retry package defaults.
func (t *Timeouts) RetryOptions(extra ...retry.Option) []retry.Option {
	opts := []retry.Option{
		retry.WithMaxRetries(t.RetryMaxAttempts),
		retry.WithInitialDelay(t.RetryInitialDelay),
	}
	if t.RetryMaxDelay > 0 {
		opts = append(opts, retry.WithMaxDelay(t.RetryMaxDelay))
	}
	if t.RetryMultiplier > 0 {
		opts = append(opts, retry.WithMultiplier(t.RetryMultiplier))
	}
	return append(opts, extra...)
}

// LoadTimeouts loads timeout configuration from environment variables.
// If a variable is invalid, the defaults are returned.
//
// Environment Variables:
//   - GAMEHOST_TIMEOUT_INSTANCE_CREATE (default: 10m)
//   - GAMEHOST_TIMEOUT_INSTANCE_VISIBLE (default: 2m)
//   - GAMEHOST_TIMEOUT_DELETE (default: 5m)
//   - GAMEHOST_RETRY_MAX_ATTEMPTS (default: 5)
//   - GAMEHOST_RETRY_INITIAL_DELAY (default: 1s)
//   - GAMEHOST_RETRY_MAX_DELAY (default: 30s)
//   - GAMEHOST_RETRY_MULTIPLIER (default: 2)
func LoadTimeouts() *Timeouts {
	t := &Timeouts{}
	if err := ParseEnv(t); err != nil {
		return DefaultTimeouts()
	}
	return t
}
