package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/stockroom/internal/auditlog"
	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	DataDir    string `yaml:"data_dir,omitempty"`
	LogBackend string `yaml:"log_backend"`
	MergeMode  string `yaml:"merge_mode"`
	RedisAddr  string `yaml:"redis_addr,omitempty"`
	LogStream  string `yaml:"log_stream,omitempty"`
}

type initOptions struct {
	logBackend string
	mergeMode  string
	redisAddr  string
	force      bool
}

func newInitCmd() *cobra.Command {
	var opts initOptions
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize stockroom configuration and data directories",
		Long: `Create the configuration directory with a config.yaml, create the data
directory, and check that the configured change log can be opened.
An existing config.yaml is kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.logBackend, "log-backend", "", "change log backend (text, sqlite, redis, none)")
	cmd.Flags().StringVar(&opts.mergeMode, "merge-mode", "", "duplicate add behavior (accumulate, increment)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "redis address for the redis log backend")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing config.yaml")
	return cmd
}

func runInit(cmd *cobra.Command, opts initOptions) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	cfg := settings
	if opts.logBackend != "" {
		cfg.LogBackend = opts.logBackend
	}
	if opts.mergeMode != "" {
		cfg.MergeMode = types.MergeMode(opts.mergeMode)
	}
	if opts.redisAddr != "" {
		cfg.RedisAddr = opts.redisAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("%w: create config directory: %w", types.ErrIOFailure, err)
	}

	configPath := filepath.Join(configDir, configFileExt)
	wrote, err := writeConfig(configPath, cfg, flags.dataDir, opts.force)
	if err != nil {
		return fmt.Errorf("%w: write config: %w", types.ErrIOFailure, err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("%w: create data directory: %w", types.ErrIOFailure, err)
	}

	changes, err := auditlog.Open(cfg)
	if err != nil {
		return fmt.Errorf("open change log: %w", err)
	}
	if err := changes.Close(); err != nil {
		return fmt.Errorf("%w: close change log: %w", types.ErrIOFailure, err)
	}

	out := cmd.OutOrStdout()
	if wrote {
		fmt.Fprintf(out, "Wrote %s\n", configPath)
	} else {
		fmt.Fprintf(out, "Kept existing %s\n", configPath)
	}
	fmt.Fprintf(out, "Stockroom initialized in %s\n", cfg.DataDir)
	return nil
}

// writeConfig writes cfg to path unless the file exists and force is
// false. dataDir is recorded only when it was given explicitly, so the
// default stays relative to the working directory. Reports whether the
// file was written.
func writeConfig(path string, cfg types.Config, dataDir string, force bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return false, nil
	}

	file := configFile{
		DataDir:    dataDir,
		LogBackend: cfg.LogBackend,
		MergeMode:  string(cfg.MergeMode),
		RedisAddr:  cfg.RedisAddr,
		LogStream:  cfg.LogStream,
	}
	if dataDir != "" {
		abs, err := filepath.Abs(dataDir)
		if err != nil {
			return false, err
		}
		file.DataDir = abs
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	return true, os.WriteFile(path, data, 0o644)
}
