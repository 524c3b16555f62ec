package commands

import (
	"fmt"
)

// Pwd prints the current working directory. Arguments are ignored.
func Pwd(s *Shell, args []string) int {
	pwd, err := s.Getwd()
	if err != nil {
		return s.fail(args[0], err)
	}

	fmt.Fprintln(s.Stdout, pwd)
	return 0
}

func init() {
	AllBuiltins["pwd"] = ShellBuiltinFunc(Pwd)
}
