package commands

import (
	"fmt"
	"os"
)

// Cd is the cd shell builtin. With no argument it changes to $HOME.
func Cd(s *Shell, args []string) int {
	switch len(args) {
	case 1:
		home, ok := os.LookupEnv(EnvHome)
		if !ok {
			fmt.Fprintf(s.Stderr, "%s: HOME not set\n", args[0])
			return 1
		}
		args = append(args, home)
		fallthrough
	case 2:
		if err := s.Chdir(args[1]); err != nil {
			return s.fail(args[0], err)
		}
	default:
		return s.usage(args, "cd <dir>")
	}
	return 0
}

func init() {
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
}
