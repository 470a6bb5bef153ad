// Package launch turns command-line arguments into a launch request and
// carries it out against the editor instances on this machine.
package launch

// Command is the action a launch performs.
type Command int

const (
	// CommandOpen resolves an instance, opens the solution and file, and
	// brings the instance to the foreground. It is the default.
	CommandOpen Command = iota

	// CommandList prints every running instance and its solution.
	CommandList

	// CommandLocateSolution prints the solution file that owns the target file.
	CommandLocateSolution
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CommandOpen:
		return "open"
	case CommandList:
		return "list"
	case CommandLocateSolution:
		return "locate-solution"
	default:
		return "unknown"
	}
}

// Params is a parsed launch request.
type Params struct {
	Command Command

	// SolutionPath is the absolute path of the solution to open, or empty.
	SolutionPath string

	// AutofindSolution searches the target file's ancestors for a solution
	// when SolutionPath is empty.
	AutofindSolution bool

	// FilePath is the file to open, or empty.
	FilePath string

	// Line is 1-based; 0 means no line was requested.
	Line int

	// Column is passed to the editor as the line offset; -1 means none was requested.
	Column int

	// Unrecognized holds arguments that were ignored: unknown keys and
	// positionals that found no empty slot.
	Unrecognized []string
}

// DefaultParams returns an Open request with nothing filled in.
func DefaultParams() Params {
	return Params{
		Command:          CommandOpen,
		AutofindSolution: true,
		Column:           -1,
	}
}
