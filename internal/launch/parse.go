package launch

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/Iron-Ham/vslaunch/internal/errors"
)

var (
	// flagPattern matches -key=value arguments.
	flagPattern = regexp.MustCompile(`^-(\w+)=(.*)$`)

	// targetPattern matches a file path with an optional :line[:column] suffix.
	targetPattern = regexp.MustCompile(`^((?:[A-Za-z]:)?[^:*?<>|]+)(?::(\d+))?(?::(\d+))?:*$`)

	errEmptyPath = errors.New("path is empty")
)

// Parse builds Params from raw arguments. autofind is the default for
// AutofindSolution; "-solution=auto" turns it on regardless.
//
// Flags are applied as they appear. The first positional may name a
// command; later positionals fill the solution, file, line and column only
// where those are still unset, and anything left over is recorded in
// Unrecognized.
func Parse(args []string, autofind bool) (Params, error) {
	p := DefaultParams()
	p.AutofindSolution = autofind

	positional := 0
	for _, arg := range args {
		if m := flagPattern.FindStringSubmatch(arg); m != nil {
			if err := p.applyFlag(m[1], m[2]); err != nil {
				return Params{}, err
			}
			continue
		}

		if err := p.applyPositional(positional, arg); err != nil {
			return Params{}, err
		}
		positional++
	}

	return p, nil
}

func (p *Params) applyFlag(key, value string) error {
	switch key {
	case "solution", "s":
		if value == "auto" {
			p.AutofindSolution = true
			return nil
		}
		abs, err := absPath(key, value)
		if err != nil {
			return err
		}
		p.SolutionPath = abs

	case "file", "f":
		if m := targetPattern.FindStringSubmatch(value); m != nil {
			return p.applyTarget(key, m, true)
		}
		abs, err := absPath(key, value)
		if err != nil {
			return err
		}
		p.FilePath = abs

	case "line", "l":
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		p.Line = n

	case "lineCharacter", "lineChar", "lc":
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		p.Column = n

	default:
		p.Unrecognized = append(p.Unrecognized, "-"+key+"="+value)
	}
	return nil
}

func (p *Params) applyPositional(index int, value string) error {
	if index == 0 {
		switch value {
		case "open":
			p.Command = CommandOpen
			return nil
		case "list", "ls":
			p.Command = CommandList
			return nil
		case "locate-solution":
			p.Command = CommandLocateSolution
			return nil
		}
	}

	if strings.HasSuffix(value, ".sln") && p.SolutionPath == "" {
		abs, err := absPath("solution", value)
		if err != nil {
			return err
		}
		p.SolutionPath = abs
		return nil
	}

	if m := targetPattern.FindStringSubmatch(value); m != nil && p.FilePath == "" {
		return p.applyTarget("file", m, false)
	}

	p.Unrecognized = append(p.Unrecognized, value)
	return nil
}

// applyTarget stores a targetPattern match. With overwrite unset, line and
// column only fill slots that are still unset.
func (p *Params) applyTarget(key string, m []string, overwrite bool) error {
	p.FilePath = m[1]

	if m[2] != "" && (overwrite || p.Line == 0) {
		n, err := parseInt(key, m[2])
		if err != nil {
			return err
		}
		p.Line = n
	}
	if m[3] != "" && (overwrite || p.Column == -1) {
		n, err := parseInt(key, m[3])
		if err != nil {
			return err
		}
		p.Column = n
	}
	return nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.NewArgumentError(key, value, err)
	}
	return n, nil
}

func absPath(key, value string) (string, error) {
	if value == "" {
		return "", errors.NewArgumentError(key, value, errEmptyPath)
	}
	abs, err := filepath.Abs(value)
	if err != nil {
		return "", errors.NewArgumentError(key, value, err)
	}
	return abs, nil
}
