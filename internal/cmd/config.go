package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/vslaunch/internal/config"
	"github.com/Iron-Ham/vslaunch/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or create the vslaunch configuration",
	Long: `View or create the vslaunch configuration.

Without arguments, displays the effective configuration.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration as YAML",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at $XDG_CONFIG_HOME/vslaunch/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configInitForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# Config file: %s\n", used)
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode configuration")
	}
	_, err = out.Write(data)
	return err
}

const configHeader = `# vslaunch configuration
#
# Every key can also be set through the environment, e.g.
# VSLAUNCH_SPAWN_SETTLE_DELAY_MS=2000 for spawn.settle_delay_ms.

`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	if _, err := os.Stat(configFile); err == nil && !configInitForce {
		return fmt.Errorf("config file already exists at %s\nUse --force to overwrite it", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return errors.Wrap(err, "encode default configuration")
	}

	if err := os.WriteFile(configFile, append([]byte(configHeader), data...), 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. --config flag or VSLAUNCH_CONFIG\n")
	fmt.Fprintf(out, "  2. %s\n", configFile)
	fmt.Fprintf(out, "  3. %s (current directory)\n", filepath.Join(".", "config.yaml"))
	fmt.Fprintln(out, "\nEnvironment variables: VSLAUNCH_* (e.g., VSLAUNCH_EDITOR_EXECUTABLE)")

	return nil
}
