package proc

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/shirou/gopsutil/v4/process"
	"github.com/tklauser/go-sysconf"
)

// commLen is TASK_COMM_LEN minus the trailing NUL, the longest command name
// the kernel keeps for a task.
const commLen = 15

// defaultClockTicks is USER_HZ on every mainstream Linux build.
const defaultClockTicks = 100

var (
	clockTicksOnce sync.Once
	clockTicks     float64 = defaultClockTicks
)

func ticksPerSecond() float64 {
	clockTicksOnce.Do(func() {
		clkTck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
		if err != nil || clkTck <= 0 {
			logger.Printf("couldn't read SC_CLK_TCK, assuming %d: %v", defaultClockTicks, err)
			return
		}
		clockTicks = float64(clkTck)
	})
	return clockTicks
}

// Record is a point-in-time snapshot of a single process.
type Record struct {
	PID int32
	// Command is the kernel's (possibly truncated) command name.
	Command string
	// UserTicks is the accumulated user CPU time in clock ticks.
	UserTicks uint64
}

// Time renders UserTicks as HH:MM:SS, dividing the tick count by 3600, 60
// and 1 respectively.
func (r Record) Time() string {
	return FormatTicks(r.UserTicks)
}

// FormatTicks renders a tick count as zero padded HH:MM:SS.
func FormatTicks(ticks uint64) string {
	hours := ticks / 3600
	minutes := (ticks % 3600) / 60
	seconds := ticks % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// List enumerates every process visible to the caller.
//
// Processes that exit between enumeration and reading their status are
// skipped. An error is only returned if the enumeration itself fails. The
// order of the result is whatever the OS yields.
func List(ctx context.Context) ([]Record, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get processes: %w", err)
	}

	out := make([]Record, 0, len(procs))
	for _, p := range procs {
		record, err := readRecord(ctx, p)
		if err != nil {
			logger.Printf("skipping pid %d: %v", p.Pid, err)
			continue
		}
		out = append(out, *record)
	}

	return out, nil
}

func readRecord(ctx context.Context, p *process.Process) (*Record, error) {
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return nil, err
	}

	times, err := p.TimesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	return &Record{
		PID:       p.Pid,
		Command:   truncateComm(name),
		UserTicks: secondsToTicks(times.User),
	}, nil
}

// truncateComm cuts name to the kernel's comm length. gopsutil swaps a full
// length comm for the executable name from cmdline, ps shows what the kernel
// stores.
func truncateComm(name string) string {
	if len(name) > commLen {
		return name[:commLen]
	}
	return name
}

func secondsToTicks(seconds float64) uint64 {
	if seconds <= 0 {
		return 0
	}
	return uint64(math.Round(seconds * ticksPerSecond()))
}

// SortByPID orders records by ascending PID in place.
func SortByPID(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].PID < records[j].PID
	})
}
