package values

import "time"

// SquareValues are the tuning knobs of a sync run. Zero values are
// replaced by the defaults below so a sparse YAML file stays valid.
type SquareValues struct {
	LookbackHours       int `yaml:"lookback-hours"`
	RateLimitBackoffSec int `yaml:"rate-limit-backoff-seconds"`
	RequestsPerMinute   int `yaml:"requests-per-minute"`
	OrderFetchAttempts  int `yaml:"order-fetch-attempts"`
	PageSize            int `yaml:"page-size"`
}

const (
	DefaultLookbackHours       = 24
	DefaultRateLimitBackoffSec = 10
	DefaultRequestsPerMinute   = 50
	DefaultOrderFetchAttempts  = 5
	DefaultPageSize            = 100
)

func (v *SquareValues) ApplyDefaults() {
	if v.LookbackHours <= 0 {
		v.LookbackHours = DefaultLookbackHours
	}
	if v.RateLimitBackoffSec <= 0 {
		v.RateLimitBackoffSec = DefaultRateLimitBackoffSec
	}
	if v.RequestsPerMinute <= 0 {
		v.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if v.OrderFetchAttempts <= 0 {
		v.OrderFetchAttempts = DefaultOrderFetchAttempts
	}
	if v.PageSize <= 0 {
		v.PageSize = DefaultPageSize
	}
}

func (v *SquareValues) Lookback() time.Duration {
	return time.Duration(v.LookbackHours) * time.Hour
}

func (v *SquareValues) RateLimitBackoff() time.Duration {
	return time.Duration(v.RateLimitBackoffSec) * time.Second
}
