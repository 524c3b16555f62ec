package commands

import (
	"github.com/josephlewis42/procsh/core/logger"
)

// Exec replaces the shell with the given program. It only returns if the
// replacement failed.
func Exec(s *Shell, args []string) int {
	if len(args) < 2 {
		return s.usage(args, "exec <program> [args...]")
	}

	command := args[1:]
	s.record(&logger.Replace{Command: command})

	err := s.Processes.Replace(command[0], command[1:])
	if err == nil {
		// Only reachable when the platform emulates replacement; the shell
		// must not keep reading input either way.
		s.Quit = true
		return 0
	}

	s.record(&logger.Replace{Command: command, Error: err.Error()})
	return s.fail(args[0], err)
}

func init() {
	AllBuiltins["exec"] = ShellBuiltinFunc(Exec)
}
