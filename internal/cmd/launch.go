package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/vslaunch/internal/config"
	"github.com/Iron-Ham/vslaunch/internal/errors"
	"github.com/Iron-Ham/vslaunch/internal/instance"
	"github.com/Iron-Ham/vslaunch/internal/instance/process"
	"github.com/Iron-Ham/vslaunch/internal/launch"
	"github.com/Iron-Ham/vslaunch/internal/logging"
	"github.com/Iron-Ham/vslaunch/internal/registry"
	"github.com/Iron-Ham/vslaunch/internal/resolver"
	"github.com/Iron-Ham/vslaunch/internal/solution"
)

func runLaunch(cmd *cobra.Command, args []string) error {
	cfgFile, args := splitConfigFlag(args)
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		return cmd.Help()
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", cfgFile)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	logger := CreateLogger(cfg).WithRun(uuid.NewString())
	defer logger.Close()

	params, err := launch.Parse(args, cfg.Solution.Autofind)
	if err != nil {
		logger.Warn("invalid arguments", "args", args, "error", err.Error())
		return err
	}

	dispatcher, err := newDispatcher(cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if err := dispatcher.Run(cmd.Context(), params); err != nil {
		logger.Error("command failed", "command", params.Command.String(), "error", err.Error())
		return err
	}
	return nil
}

// newDispatcher wires the platform registry, spawner, resolver and solution
// locator described by cfg.
func newDispatcher(cfg *config.Config, logger *logging.Logger, out, errOut io.Writer) (*launch.Dispatcher, error) {
	snapshot := registry.NewSnapshot(registry.NewSystem(logger), cfg.Editor.RegistryPrefix, logger)

	handleCfg := instance.Config{
		MaxRetries:    cfg.Instance.InitMaxRetries,
		RetryInterval: cfg.Instance.InitRetryInterval(),
	}
	spawner := instance.NewSpawner(process.ExecStarter{}, snapshot, instance.SpawnConfig{
		Executable:        cfg.Editor.Executable,
		Args:              cfg.Editor.Args,
		WindowTitleSuffix: cfg.Editor.WindowTitleSuffix,
		MaxRetries:        cfg.Spawn.MaxRetries,
		RetryInterval:     cfg.Spawn.RetryInterval(),
		SettleDelay:       cfg.Spawn.SettleDelay(),
	}, handleCfg, logger)

	res := resolver.New(snapshot, spawner, resolver.Config{
		Handle:      handleCfg,
		Concurrency: cfg.Instance.InitConcurrency,
	}, logger)

	locator, err := solution.NewLocator(cfg.Solution.Patterns, logger)
	if err != nil {
		return nil, err
	}

	return launch.NewDispatcher(res, locator, out, errOut, logger), nil
}

// CreateLogger creates a logger if logging is enabled in config.
// Returns a NopLogger if logging is disabled or if creation fails.
func CreateLogger(cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}

	rotationConfig := logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	}

	logger, err := logging.NewLogger(cfg.Logging.ResolveDir(), cfg.Logging.Level, rotationConfig)
	if err != nil {
		// Log creation failure shouldn't prevent the launch
		fmt.Fprintf(os.Stderr, "Warning: failed to create logger: %v\n", err)
		return logging.NopLogger()
	}

	return logger
}
