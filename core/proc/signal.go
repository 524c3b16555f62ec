package proc

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sys/unix"
)

// ErrInvalidPID is returned when a PID argument isn't a signed integer.
var ErrInvalidPID = errors.New("invalid PID")

// ParsePID parses a signed PID. No OS call is made.
func ParsePID(arg string) (int, error) {
	pid, err := strconv.ParseInt(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPID, arg)
	}
	return int(pid), nil
}

// Terminate sends SIGTERM to pid. Delivery is fire-and-forget: a nil error
// means the kernel accepted the signal, not that the target exited.
//
// Like kill(2), zero and negative PIDs address process groups.
func Terminate(pid int) error {
	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		logger.Printf("kill(%d, SIGTERM) failed: %v", pid, err)
		return err
	}
	logger.Printf("sent SIGTERM to %d", pid)
	return nil
}
