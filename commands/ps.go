package commands

import (
	"context"
	"fmt"

	"github.com/josephlewis42/procsh/core/config"
	"github.com/josephlewis42/procsh/core/logger"
	"github.com/josephlewis42/procsh/core/proc"
)

var psHeader = fmt.Sprintf("%-10s %-50s %-15s", "PID", "COMMAND", "TIME")

// Ps prints the PID, command name and user CPU time of every visible
// process. Arguments are ignored.
func Ps(s *Shell, args []string) int {
	records, err := s.Processes.List(context.Background())
	if err != nil {
		s.record(&logger.ListProcesses{Error: err.Error()})
		return s.fail(args[0], err)
	}
	s.record(&logger.ListProcesses{Count: len(records)})

	if s.Config.Ps.Sort == config.SortPID {
		proc.SortByPID(records)
	}

	fmt.Fprintln(s.Stdout, s.colors().Sprintf(ColorBold, "%s", psHeader))
	for _, r := range records {
		fmt.Fprintf(s.Stdout, "%-10d %-50s %s\n", r.PID, r.Command, r.Time())
	}

	return 0
}

func init() {
	AllBuiltins["ps"] = ShellBuiltinFunc(Ps)
}
