package commands

import (
	"errors"

	"github.com/josephlewis42/procsh/core/logger"
	"github.com/josephlewis42/procsh/core/proc"
)

// Fork runs the given program as a child and waits for it to terminate.
func Fork(s *Shell, args []string) int {
	if len(args) < 2 {
		return s.usage(args, "fork <program> [args...]")
	}

	command := args[1:]
	child, err := s.Processes.SpawnAndWait(command[0], command[1:], s.stdio())
	if err != nil {
		event := &logger.Spawn{Command: command, Stage: proc.StageFork.String(), Error: err.Error()}
		var launchErr *proc.LaunchError
		if errors.As(err, &launchErr) {
			event.Stage = launchErr.Stage.String()
		}
		s.record(event)
		return s.fail(args[0], err)
	}

	s.record(&logger.Spawn{Command: command, Pid: child.Pid})
	return 0
}

func init() {
	AllBuiltins["fork"] = ShellBuiltinFunc(Fork)
}
