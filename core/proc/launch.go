package proc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"

	"golang.org/x/sys/unix"
)

// Stage identifies which half of a launch failed.
type Stage int

const (
	// StageFork means no child was created, typically resource exhaustion.
	StageFork Stage = iota
	// StageExec means the program couldn't be loaded: not found, not
	// executable or permission denied.
	StageExec
)

func (s Stage) String() string {
	switch s {
	case StageFork:
		return "fork"
	case StageExec:
		return "exec"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// LaunchError describes a failed Replace or Spawn.
type LaunchError struct {
	Stage   Stage
	Program string
	Err     error
}

func (e *LaunchError) Error() string {
	if e.Stage == StageExec {
		return fmt.Sprintf("failed to execute %s: %v", e.Program, e.Err)
	}
	return e.Err.Error()
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Stdio holds the standard streams handed to a child. Nil fields are
// connected to the null device, the same as exec.Cmd.
type Stdio struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Replace swaps the current process image for program, keeping the PID, the
// working directory and open descriptors. program is searched for on PATH.
//
// On success Replace never returns. A returned error is always a
// *LaunchError with Stage StageExec.
func Replace(program string, args []string) error {
	path, err := exec.LookPath(program)
	if err != nil {
		return &LaunchError{Stage: StageExec, Program: program, Err: unwrapExecError(err)}
	}

	argv := append([]string{program}, args...)
	logger.Printf("replacing process image with %q %q", path, argv)
	err = unix.Exec(path, argv, os.Environ())

	return &LaunchError{Stage: StageExec, Program: program, Err: err}
}

// Child is a running process started by Spawn. It must be waited on exactly
// once to be reaped.
type Child struct {
	Pid int

	cmd *exec.Cmd
}

// Spawn starts program as a child of the current process. The child inherits
// the working directory and environment.
func Spawn(program string, args []string, stdio Stdio) (*Child, error) {
	cmd := exec.Command(program, args...)
	cmd.Stdin = stdio.Stdin
	cmd.Stdout = stdio.Stdout
	cmd.Stderr = stdio.Stderr

	if err := cmd.Start(); err != nil {
		logger.Printf("failed to start %q: %v", program, err)
		return nil, classifyStartError(program, err)
	}

	logger.Printf("started %q as pid %d", program, cmd.Process.Pid)
	return &Child{Pid: cmd.Process.Pid, cmd: cmd}, nil
}

// Wait blocks until the child terminates and reaps it. The exit status is
// discarded.
func (c *Child) Wait() {
	err := c.cmd.Wait()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		logger.Printf("pid %d exited cleanly", c.Pid)
	case errors.As(err, &exitErr):
		logger.Printf("pid %d finished: %v", c.Pid, exitErr)
	default:
		logger.Printf("pid %d wait error: %v", c.Pid, err)
	}
}

// SpawnAndWait starts program and blocks until it terminates, returning the
// already reaped child. While waiting, SIGINT sent to the current process is
// swallowed so Ctrl-C only reaches the foreground child.
func SpawnAndWait(program string, args []string, stdio Stdio) (*Child, error) {
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	child, err := Spawn(program, args, stdio)
	if err != nil {
		return nil, err
	}

	child.Wait()
	return child, nil
}

func classifyStartError(program string, err error) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return &LaunchError{Stage: StageExec, Program: program, Err: execErr.Err}
	}

	// The runtime reports fork and execve failures alike as a "fork/exec"
	// PathError, so the stage is a guess from the errno: EAGAIN and ENOMEM
	// usually come from fork, but execve can return ENOMEM too and is then
	// mislabelled StageFork.
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		switch {
		case errors.Is(pathErr.Err, unix.EAGAIN), errors.Is(pathErr.Err, unix.ENOMEM):
			return &LaunchError{Stage: StageFork, Program: program, Err: err}
		default:
			return &LaunchError{Stage: StageExec, Program: program, Err: pathErr.Err}
		}
	}

	return &LaunchError{Stage: StageFork, Program: program, Err: err}
}

func unwrapExecError(err error) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return execErr.Err
	}
	return err
}
