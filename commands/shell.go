package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/procsh/core/config"
	"github.com/josephlewis42/procsh/core/logger"
	"github.com/josephlewis42/procsh/core/proc"
)

const (
	EnvHome = "HOME"
)

type Shell struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Config    *config.Configuration
	Processes ProcessControl
	Events    *logger.SessionLogger
	// Log receives diagnostics, never user facing output.
	Log *log.Logger

	lastRet int
	color   *ColorPrinter

	// Set to true to quit the shell
	Quit bool
}

// NewShell creates a shell over the given streams using the real process
// primitives and discarding events.
func NewShell(cfg *config.Configuration, stdin io.Reader, stdout, stderr io.Writer) *Shell {
	return &Shell{
		Stdin:     stdin,
		Stdout:    stdout,
		Stderr:    stderr,
		Config:    cfg,
		Processes: OSProcesses{},
		Events:    logger.Discard().Sessionless(),
		Log:       log.New(io.Discard, "", 0),
		color:     NewColorPrinter(cfg.Color, stdout),
	}
}

// Interactive reports whether the shell is attached to a terminal.
func (s *Shell) Interactive() bool {
	return isTerminal(s.Stdin) && isTerminal(s.Stdout)
}

// LastStatus is the status of the most recently run builtin.
func (s *Shell) LastStatus() int {
	return s.lastRet
}

type lineReader interface {
	SetPrompt(string)
	Readline() (string, error)
	Close() error
}

func (s *Shell) newLineReader() (lineReader, error) {
	if !s.Interactive() {
		return &plainReader{in: bufio.NewReader(s.Stdin), out: s.Stdout}, nil
	}

	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(s.Stdin),
		Stdout: s.Stdout,
		Stderr: s.Stderr,
		FuncIsTerminal: func() bool {
			return true
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(cfg)
}

// plainReader reads lines when the shell isn't attached to a terminal. The
// prompt is written verbatim before every read.
type plainReader struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
}

func (p *plainReader) SetPrompt(prompt string) {
	p.prompt = prompt
}

func (p *plainReader) Readline() (string, error) {
	fmt.Fprint(p.out, p.prompt)

	line, err := p.in.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		// Final line without a newline, EOF is reported on the next call.
		return line, nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

func (p *plainReader) Close() error {
	return nil
}

// Run reads and dispatches lines until the quit command or end of input. Both
// count as a normal exit.
func (s *Shell) Run() int {
	s.record(&logger.SessionStart{Pid: os.Getpid(), Interactive: s.Interactive()})

	reader, err := s.newLineReader()
	if err != nil {
		fmt.Fprintf(s.Stderr, "sh: %s\n", err)
		return 1
	}
	defer reader.Close()

	for !s.Quit {
		reader.SetPrompt(s.Config.Prompt)
		line, err := reader.Readline()

		switch {
		case err == io.EOF:
			return 0 // Input closed, quit.

		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue

		case err != nil:
			s.Log.Printf("Error readline: %v", err)
			return 1

		default:
			s.RunLine(line)
		}
	}

	return 0
}

// RunOnce runs a single line as a whole session and returns its status.
func (s *Shell) RunOnce(line string) int {
	s.record(&logger.SessionStart{Pid: os.Getpid(), Interactive: false})
	s.RunLine(line)
	return s.lastRet
}

// RunLine trims, tokenizes and dispatches a single line of input.
func (s *Shell) RunLine(line string) {
	line = strings.TrimSpace(line)

	if line == s.Config.QuitCommand {
		s.Quit = true
		return
	}

	args := strings.Fields(line)
	if len(args) == 0 {
		return // empty line
	}

	builtin, ok := AllBuiltins[args[0]]
	if !ok {
		s.record(&logger.UnknownCommand{Command: args})
		fmt.Fprintf(s.Stderr, "command not found: %s\n", args[0])
		s.lastRet = 127
		return
	}

	s.record(&logger.RunCommand{Command: args})
	s.lastRet = builtin.Main(s, args)
}

func (s *Shell) colors() *ColorPrinter {
	if s.color == nil {
		s.color = NewColorPrinter(s.Config.Color, s.Stdout)
	}
	return s.color
}

func (s *Shell) record(event logger.LogType) {
	if err := s.Events.Record(event); err != nil {
		s.Log.Printf("couldn't record event: %v", err)
	}
}

// usage reports an invalid invocation of args[0].
func (s *Shell) usage(args []string, usage string) int {
	s.record(&logger.InvalidInvocation{Command: args, Error: usage})
	fmt.Fprintf(s.Stderr, "USAGE: %s\n", usage)
	return 1
}

// fail reports a failed operation prefixed by the verb.
func (s *Shell) fail(verb string, err error) int {
	fmt.Fprintf(s.Stderr, "%s: %v\n", verb, err)
	return 1
}

// stdio returns the streams handed to children. Stdin is only shared when it
// is a real file; otherwise the child would drain the shell's own input.
func (s *Shell) stdio() proc.Stdio {
	stdio := proc.Stdio{Stdout: s.Stdout, Stderr: s.Stderr}
	if f, ok := s.Stdin.(*os.File); ok {
		stdio.Stdin = f
	}
	return stdio
}

// The working directory is process wide. Chdir is its only mutator; children
// inherit it. It needs to become per-shell state if shells ever run
// concurrently.

func (s *Shell) Chdir(dir string) error {
	return os.Chdir(dir)
}

func (s *Shell) Getwd() (string, error) {
	return os.Getwd()
}
