package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/vslaunch/internal/config"
	"github.com/Iron-Ham/vslaunch/internal/errors"
	"github.com/Iron-Ham/vslaunch/internal/testutil"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (stdout, stderr string, err error) {
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	root.SetOut(outBuf)
	root.SetErr(errBuf)
	root.SetArgs(args)
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

// setupTestEnvironment isolates viper state and the config directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("VSLAUNCH_CONFIG", "")
	t.Setenv("VSLAUNCH_LOGGING_ENABLED", "false")
	return filepath.Join(configHome, "vslaunch")
}

func TestRootCommand(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil")
	}

	if rootCmd.Name() != "vslaunch" {
		t.Errorf("rootCmd.Name() = %q, want %q", rootCmd.Name(), "vslaunch")
	}
	if !rootCmd.DisableFlagParsing {
		t.Error("root command must pass -key=value arguments through unparsed")
	}

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	if !slices.Contains(names, "config") {
		t.Errorf("expected subcommand %q in %v", "config", names)
	}
}

func TestSplitConfigFlag(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantFile string
		wantRest []string
	}{
		{"none", []string{"a.cs:3"}, "", []string{"a.cs:3"}},
		{"equals form", []string{"--config=/tmp/c.yaml", "list"}, "/tmp/c.yaml", []string{"list"}},
		{"separate value", []string{"list", "--config", "/tmp/c.yaml"}, "/tmp/c.yaml", []string{"list"}},
		{"dangling flag is kept", []string{"--config"}, "", []string{"--config"}},
		{"launch flags untouched", []string{"-s=auto", "-l=3"}, "", []string{"-s=auto", "-l=3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, rest := splitConfigFlag(tt.args)
			if file != tt.wantFile {
				t.Errorf("config file = %q, want %q", file, tt.wantFile)
			}
			if !slices.Equal(rest, tt.wantRest) {
				t.Errorf("rest = %v, want %v", rest, tt.wantRest)
			}
		})
	}
}

func TestLaunchHelp(t *testing.T) {
	setupTestEnvironment(t)

	for _, arg := range []string{"-h", "--help"} {
		out, _, err := executeCommand(rootCmd, arg)
		if err != nil {
			t.Fatalf("%s: error = %v", arg, err)
		}
		if !strings.Contains(out, "locate-solution") {
			t.Errorf("%s: usage output missing commands:\n%s", arg, out)
		}
	}
}

func TestLaunchArgumentError(t *testing.T) {
	setupTestEnvironment(t)

	_, _, err := executeCommand(rootCmd, "-line=abc")
	if !errors.IsArgumentError(err) {
		t.Fatalf("error = %v, want ArgumentError", err)
	}
	if code := errors.ExitCode(err); code != errors.ExitArgumentError {
		t.Errorf("ExitCode() = %d, want %d", code, errors.ExitArgumentError)
	}
}

func TestLaunchInvalidConfig(t *testing.T) {
	setupTestEnvironment(t)
	t.Setenv("VSLAUNCH_INSTANCE_INIT_CONCURRENCY", "0")

	_, _, err := executeCommand(rootCmd, "list")
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if code := errors.ExitCode(err); code != errors.ExitFailure {
		t.Errorf("ExitCode() = %d, want %d", code, errors.ExitFailure)
	}
}

func TestLaunchLocateSolution(t *testing.T) {
	setupTestEnvironment(t)
	_, sln, source := testutil.SetupSolutionTree(t)

	out, _, err := executeCommand(rootCmd, "locate-solution", source)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	want := "Searching parent solution for " + source + "\nSolution found\n" + sln + "\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestLaunchLocateSolutionWithConfigFlag(t *testing.T) {
	setupTestEnvironment(t)
	root := testutil.SetupTree(t, map[string]string{
		"App.slnx":       "",
		"src/Program.cs": "",
	})
	cfgFile := testutil.WriteFile(t, t.TempDir(), "vslaunch.yaml", "solution:\n  patterns: [\"*.slnx\"]\n")
	source := testutil.Path(root, "src/Program.cs")

	out, _, err := executeCommand(rootCmd, "--config="+cfgFile, "locate-solution", source)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if !strings.Contains(out, testutil.Path(root, "App.slnx")) {
		t.Errorf("output = %q, want the .slnx solution", out)
	}
}

func TestConfigShow(t *testing.T) {
	setupTestEnvironment(t)

	out, _, err := executeCommand(rootCmd, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"(none - using defaults)", "executable: devenv.exe", "init_max_retries: 40", "settle_delay_ms: 1000"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigInit(t *testing.T) {
	dir := setupTestEnvironment(t)
	file := filepath.Join(dir, "config.yaml")

	if _, _, err := executeCommand(rootCmd, "config", "init", "--force=false"); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "registry_prefix:") {
		t.Errorf("config file missing keys:\n%s", data)
	}

	if _, _, err := executeCommand(rootCmd, "config", "init", "--force=false"); err == nil {
		t.Error("second config init without --force should fail")
	}
	if _, _, err := executeCommand(rootCmd, "config", "init", "--force"); err != nil {
		t.Errorf("config init --force error = %v", err)
	}

	viper.Reset()
	viper.SetConfigFile(file)
	config.SetDefaults()
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("written config is not readable: %v", err)
	}
	if _, err := config.Load(); err != nil {
		t.Errorf("written config does not validate: %v", err)
	}
}

func TestConfigPath(t *testing.T) {
	dir := setupTestEnvironment(t)

	out, _, err := executeCommand(rootCmd, "config", "path")
	if err != nil {
		t.Fatalf("config path error = %v", err)
	}
	if !strings.Contains(out, filepath.Join(dir, "config.yaml")) {
		t.Errorf("config path output missing default file:\n%s", out)
	}
}
