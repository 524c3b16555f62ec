package commands

import (
	"fmt"

	"github.com/josephlewis42/procsh/core/logger"
	"github.com/josephlewis42/procsh/core/proc"
)

// Kill sends SIGTERM to a single process.
func Kill(s *Shell, args []string) int {
	if len(args) != 2 {
		return s.usage(args, "kill <pid>")
	}

	pid, err := proc.ParsePID(args[1])
	if err != nil {
		s.record(&logger.InvalidInvocation{Command: args, Error: err.Error()})
		return s.fail(args[0], err)
	}

	if err := s.Processes.Terminate(pid); err != nil {
		s.record(&logger.Signal{Pid: pid, Error: err.Error()})
		fmt.Fprintf(s.Stderr, "%s: failed to send signal to process with PID: %d: %v\n", args[0], pid, err)
		return 1
	}

	s.record(&logger.Signal{Pid: pid})
	fmt.Fprintf(s.Stdout, "Sent SIGTERM to process with PID: %d\n", pid)
	return 0
}

func init() {
	AllBuiltins["kill"] = ShellBuiltinFunc(Kill)
}
