// Stockroom configuration and its validation.
package types

import "errors"

// Config holds the settings the CLI resolves from flags, config.yaml and the
// environment before opening an inventory.
type Config struct {
	DataDir    string    `json:"data_dir" yaml:"data_dir"`
	LogBackend string    `json:"log_backend" yaml:"log_backend"`
	MergeMode  MergeMode `json:"merge_mode" yaml:"merge_mode"`
	RedisAddr  string    `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	LogStream  string    `json:"log_stream,omitempty" yaml:"log_stream,omitempty"`
}

// Supported change log backends.
const (
	LogBackendText   = "text"
	LogBackendSQLite = "sqlite"
	LogBackendRedis  = "redis"
	LogBackendNone   = "none"
)

// Config validation errors.
var (
	ErrLogBackendUnknown = errors.New("unknown log backend")
	ErrMergeModeUnknown  = errors.New("unknown merge mode")
	ErrRedisAddrEmpty    = errors.New("redis log backend requires redis_addr")
)

// knownLogBackends lists the backends that Validate accepts.
var knownLogBackends = map[string]bool{
	LogBackendText:   true,
	LogBackendSQLite: true,
	LogBackendRedis:  true,
	LogBackendNone:   true,
}

// Validate checks that the Config is well-formed. An empty LogBackend or
// MergeMode means the default. It returns a sentinel error from this package
// on failure.
func (c Config) Validate() error {
	if c.LogBackend != "" && !knownLogBackends[c.LogBackend] {
		return ErrLogBackendUnknown
	}
	switch c.MergeMode {
	case "", MergeAccumulate, MergeIncrement:
	default:
		return ErrMergeModeUnknown
	}
	if c.LogBackend == LogBackendRedis && c.RedisAddr == "" {
		return ErrRedisAddrEmpty
	}
	return nil
}
