package commands

import (
	"fmt"
	"strings"
)

// Echo prints its arguments separated by single spaces.
func Echo(s *Shell, args []string) int {
	fmt.Fprintln(s.Stdout, strings.Join(args[1:], " "))
	return 0
}

func init() {
	AllBuiltins["echo"] = ShellBuiltinFunc(Echo)
}
