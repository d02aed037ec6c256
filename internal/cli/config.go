// Config loading for the stockroom CLI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// dotEnvFile is loaded from the working directory when present.
	dotEnvFile = ".env"

	// Config keys.
	cfgKeyDataDir    = "data_dir"
	cfgKeyLogBackend = "log_backend"
	cfgKeyMergeMode  = "merge_mode"
	cfgKeyRedisAddr  = "redis_addr"
	cfgKeyLogStream  = "log_stream"

	envPrefix = "STOCKROOM"
)

// envKeys are the config keys that STOCKROOM_* variables may override.
// data_dir is resolved by internal/paths, where the flag and config.yaml
// take precedence over STOCKROOM_DATA_DIR.
var envKeys = []string{cfgKeyLogBackend, cfgKeyMergeMode, cfgKeyRedisAddr, cfgKeyLogStream}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyLogBackend, types.LogBackendText)
	v.SetDefault(cfgKeyMergeMode, string(types.MergeAccumulate))
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// loadDotEnv loads .env from the working directory if it exists. Variables
// already set in the environment win.
func loadDotEnv() error {
	if _, err := os.Stat(dotEnvFile); err != nil {
		return nil
	}
	if err := godotenv.Load(dotEnvFile); err != nil {
		return fmt.Errorf("load %s: %w", dotEnvFile, err)
	}
	return nil
}

// loadSettings resolves the effective configuration from flags, .env,
// config.yaml and the environment.
func loadSettings() (types.Config, error) {
	if err := loadDotEnv(); err != nil {
		return types.Config{}, err
	}

	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return types.Config{}, err
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		DataDir:    dataDir,
		LogBackend: v.GetString(cfgKeyLogBackend),
		MergeMode:  types.MergeMode(v.GetString(cfgKeyMergeMode)),
		RedisAddr:  v.GetString(cfgKeyRedisAddr),
		LogStream:  v.GetString(cfgKeyLogStream),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("%s: %w", filepath.Join(configDir, configFileExt), err)
	}
	return cfg, nil
}
