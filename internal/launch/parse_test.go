package launch

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Iron-Ham/vslaunch/internal/errors"
)

func mustAbs(t *testing.T, path string) string {
	t.Helper()
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("filepath.Abs(%q) error = %v", path, err)
	}
	return abs
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		autofind bool
		want     func(p *Params)
	}{
		{
			name:     "no arguments",
			autofind: true,
			want:     func(*Params) {},
		},
		{
			name:     "autofind default comes from caller",
			autofind: false,
			want:     func(p *Params) { p.AutofindSolution = false },
		},
		{
			name:     "target with line and column",
			args:     []string{`C:\src\a.cs:10:4`},
			autofind: true,
			want: func(p *Params) {
				p.FilePath = `C:\src\a.cs`
				p.Line = 10
				p.Column = 4
			},
		},
		{
			name:     "target with line",
			args:     []string{"a.cs:10"},
			autofind: true,
			want: func(p *Params) {
				p.FilePath = "a.cs"
				p.Line = 10
			},
		},
		{
			name:     "target without position",
			args:     []string{"a.cs"},
			autofind: true,
			want:     func(p *Params) { p.FilePath = "a.cs" },
		},
		{
			name:     "trailing colons are ignored",
			args:     []string{"a.cs:7::"},
			autofind: true,
			want: func(p *Params) {
				p.FilePath = "a.cs"
				p.Line = 7
			},
		},
		{
			name:     "list command",
			args:     []string{"list"},
			autofind: true,
			want:     func(p *Params) { p.Command = CommandList },
		},
		{
			name:     "ls alias",
			args:     []string{"ls"},
			autofind: true,
			want:     func(p *Params) { p.Command = CommandList },
		},
		{
			name:     "locate-solution with target",
			args:     []string{"locate-solution", "src/a.cs"},
			autofind: true,
			want: func(p *Params) {
				p.Command = CommandLocateSolution
				p.FilePath = "src/a.cs"
			},
		},
		{
			name:     "explicit open",
			args:     []string{"open", "a.cs:3"},
			autofind: true,
			want: func(p *Params) {
				p.FilePath = "a.cs"
				p.Line = 3
			},
		},
		{
			name:     "command word after first positional is not a command",
			args:     []string{"a.cs", "list"},
			autofind: true,
			want: func(p *Params) {
				p.FilePath = "a.cs"
				p.Unrecognized = []string{"list"}
			},
		},
		{
			name:     "flags set every field",
			args:     []string{"-file=a.cs", "-line=12", "-lc=3"},
			autofind: true,
			want: func(p *Params) {
				p.FilePath = "a.cs"
				p.Line = 12
				p.Column = 3
			},
		},
		{
			name:     "long flag names",
			args:     []string{"-f=a.cs", "-l=12", "-lineCharacter=3"},
			autofind: true,
			want: func(p *Params) {
				p.FilePath = "a.cs"
				p.Line = 12
				p.Column = 3
			},
		},
		{
			name:     "lineChar alias",
			args:     []string{"-lineChar=9"},
			autofind: true,
			want:     func(p *Params) { p.Column = 9 },
		},
		{
			name:     "file flag carries position",
			args:     []string{"-file=a.cs:5:6"},
			autofind: true,
			want: func(p *Params) {
				p.FilePath = "a.cs"
				p.Line = 5
				p.Column = 6
			},
		},
		{
			name:     "flags win over positional position",
			args:     []string{"-line=12", "a.cs:5:6"},
			autofind: true,
			want: func(p *Params) {
				p.FilePath = "a.cs"
				p.Line = 12
				p.Column = 6
			},
		},
		{
			name:     "second target is dropped",
			args:     []string{"-file=a.cs:5:6", "b.cs:7:8"},
			autofind: true,
			want: func(p *Params) {
				p.FilePath = "a.cs"
				p.Line = 5
				p.Column = 6
				p.Unrecognized = []string{"b.cs:7:8"}
			},
		},
		{
			name:     "auto solution enables autofind",
			args:     []string{"-s=auto"},
			autofind: false,
			want:     func(p *Params) { p.AutofindSolution = true },
		},
		{
			name:     "unknown key is ignored",
			args:     []string{"-verbose=1", "a.cs"},
			autofind: true,
			want: func(p *Params) {
				p.FilePath = "a.cs"
				p.Unrecognized = []string{"-verbose=1"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := DefaultParams()
			tt.want(&want)

			got, err := Parse(tt.args, tt.autofind)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.args, err)
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.args, diff)
			}
		})
	}
}

func TestParse_AbsolutePaths(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want func(t *testing.T, p *Params)
	}{
		{
			name: "solution flag",
			args: []string{"-solution=build/App.sln"},
			want: func(t *testing.T, p *Params) { p.SolutionPath = mustAbs(t, "build/App.sln") },
		},
		{
			name: "positional solution",
			args: []string{"App.sln", "a.cs:4"},
			want: func(t *testing.T, p *Params) {
				p.SolutionPath = mustAbs(t, "App.sln")
				p.FilePath = "a.cs"
				p.Line = 4
			},
		},
		{
			name: "second solution falls through to the file slot",
			args: []string{"App.sln", "Other.sln", "a.cs"},
			want: func(t *testing.T, p *Params) {
				p.SolutionPath = mustAbs(t, "App.sln")
				p.FilePath = "Other.sln"
				p.Unrecognized = []string{"a.cs"}
			},
		},
		{
			name: "file flag that is not a target is made absolute",
			args: []string{"-file=odd|name.cs"},
			want: func(t *testing.T, p *Params) { p.FilePath = mustAbs(t, "odd|name.cs") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := DefaultParams()
			tt.want(t, &want)

			got, err := Parse(tt.args, true)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.args, err)
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.args, diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantField string
	}{
		{"non-numeric line", []string{"-line=abc"}, "line"},
		{"non-numeric column", []string{"-lc=x"}, "lc"},
		{"empty solution", []string{"-solution="}, "solution"},
		{"empty file", []string{"-f="}, "f"},
		{"line overflows", []string{"a.cs:99999999999999999999999"}, "file"},
		{"error after valid args", []string{"list", "-l=3", "-l=three"}, "l"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args, true)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", tt.args)
			}

			var argErr *errors.ArgumentError
			if !errors.As(err, &argErr) {
				t.Fatalf("Parse(%q) error = %T, want *ArgumentError", tt.args, err)
			}
			if argErr.Field != tt.wantField {
				t.Errorf("ArgumentError.Field = %q, want %q", argErr.Field, tt.wantField)
			}
			if errors.ExitCode(err) != errors.ExitArgumentError {
				t.Errorf("ExitCode() = %d, want %d", errors.ExitCode(err), errors.ExitArgumentError)
			}
		})
	}
}

func TestCommand_String(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{CommandOpen, "open"},
		{CommandList, "list"},
		{CommandLocateSolution, "locate-solution"},
		{Command(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("Command(%d).String() = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}
