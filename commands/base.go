package commands

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/josephlewis42/procsh/core/config"
	"github.com/josephlewis42/procsh/core/proc"
	"github.com/mattn/go-isatty"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// ListBuiltins returns the names of all registered builtins, sorted.
func ListBuiltins() []string {
	var out []string
	for name := range AllBuiltins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ProcessControl is the set of process operations the shell delegates to the
// OS.
type ProcessControl interface {
	// List reads the process table.
	List(ctx context.Context) ([]proc.Record, error)
	// Terminate sends SIGTERM to pid.
	Terminate(pid int) error
	// Replace swaps the current process for program. A nil return means the
	// process was replaced and the shell must not continue.
	Replace(program string, args []string) error
	// SpawnAndWait runs program as a child and reaps it.
	SpawnAndWait(program string, args []string, stdio proc.Stdio) (*proc.Child, error)
}

// OSProcesses implements ProcessControl with the real process primitives.
type OSProcesses struct{}

var _ ProcessControl = OSProcesses{}

func (OSProcesses) List(ctx context.Context) ([]proc.Record, error) {
	return proc.List(ctx)
}

func (OSProcesses) Terminate(pid int) error {
	return proc.Terminate(pid)
}

func (OSProcesses) Replace(program string, args []string) error {
	return proc.Replace(program, args)
}

func (OSProcesses) SpawnAndWait(program string, args []string, stdio proc.Stdio) (*proc.Child, error) {
	return proc.SpawnAndWait(program, args, stdio)
}

var (
	ColorBold = color.New(color.Bold)
)

// ColorPrinter decides whether output to a writer gets colored.
type ColorPrinter struct {
	mode string
	out  io.Writer
}

// NewColorPrinter creates a printer for the given mode (always|auto|never).
func NewColorPrinter(mode string, out io.Writer) *ColorPrinter {
	return &ColorPrinter{mode: mode, out: out}
}

func (c *ColorPrinter) ShouldColor() bool {
	switch c.mode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		return true
	default:
		return isTerminal(c.out)
	}
}

func (c *ColorPrinter) Sprintf(clr *color.Color, format string, a ...interface{}) string {
	if c.ShouldColor() {
		// Copy so forcing color on doesn't leak into the shared value.
		forced := *clr
		forced.EnableColor()
		return forced.Sprintf(format, a...)
	}
	return fmt.Sprintf(format, a...)
}

type fder interface {
	Fd() uintptr
}

func isTerminal(v interface{}) bool {
	f, ok := v.(fder)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
