package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/vslaunch/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "vslaunch [open|list|locate-solution] [target] [-key=value ...]",
	Short: "Open files in a running Visual Studio instance",
	Long: `vslaunch opens a solution and a file at a line and column in Visual Studio,
reusing an instance that already has the solution loaded, then an idle
instance, and starting a new one only when neither exists.

Commands:
  open             (default) open the solution and file, then focus the instance
  list, ls         list running instances and their solutions
  locate-solution  print the solution file that owns the target file

Arguments:
  -solution=<path|auto>, -s    solution to open; "auto" searches parent directories
  -file=<path[:line[:col]]>, -f
  -line=<n>, -l
  -lineCharacter=<n>, -lineChar, -lc

Unflagged arguments ending in .sln are taken as the solution; others of the
form path[:line[:col]] as the target file.`,
	Example: `  vslaunch C:\src\App\Program.cs:42:8
  vslaunch -s=C:\src\App.sln -f=Program.cs -l=42
  vslaunch list
  vslaunch locate-solution C:\src\App\Program.cs`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               runLaunch,
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags. The launch command parses its own arguments, so this
	// only takes effect for subcommands; see splitConfigFlag.
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/vslaunch/config.yaml)")
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	viper.SetEnvPrefix("VSLAUNCH")
	// e.g. VSLAUNCH_SPAWN_SETTLE_DELAY_MS for spawn.settle_delay_ms
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// splitConfigFlag removes --config forms from raw launch arguments and
// returns the config file they named.
func splitConfigFlag(args []string) (string, []string) {
	var cfgFile string
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case strings.HasPrefix(arg, "--config="):
			cfgFile = strings.TrimPrefix(arg, "--config=")
		case arg == "--config" && i+1 < len(args):
			cfgFile = args[i+1]
			i++
		default:
			rest = append(rest, arg)
		}
	}
	return cfgFile, rest
}
