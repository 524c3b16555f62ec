package logger

// LogEntry is a single line of the event log.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart      *SessionStart      `json:"session_start,omitempty"`
	RunCommand        *RunCommand        `json:"run_command,omitempty"`
	UnknownCommand    *UnknownCommand    `json:"unknown_command,omitempty"`
	InvalidInvocation *InvalidInvocation `json:"invalid_invocation,omitempty"`
	Signal            *Signal            `json:"signal,omitempty"`
	Spawn             *Spawn             `json:"spawn,omitempty"`
	Replace           *Replace           `json:"replace,omitempty"`
	ListProcesses     *ListProcesses     `json:"list_processes,omitempty"`
}

// LogType is implemented by every event that can be stored in a LogEntry.
type LogType interface {
	attach(le *LogEntry)
}

// Event returns the event held by the entry or nil if it has none.
func (le *LogEntry) Event() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.InvalidInvocation != nil:
		return le.InvalidInvocation
	case le.Signal != nil:
		return le.Signal
	case le.Spawn != nil:
		return le.Spawn
	case le.Replace != nil:
		return le.Replace
	case le.ListProcesses != nil:
		return le.ListProcesses
	default:
		return nil
	}
}

// SessionStart is logged once when the interpreter starts reading input.
type SessionStart struct {
	Pid         int  `json:"pid"`
	Interactive bool `json:"interactive"`
}

func (e *SessionStart) attach(le *LogEntry) { le.SessionStart = e }

// RunCommand is logged for every line dispatched to a known verb.
type RunCommand struct {
	Command []string `json:"command"`
}

func (e *RunCommand) attach(le *LogEntry) { le.RunCommand = e }

// UnknownCommand is logged when the verb isn't a builtin.
type UnknownCommand struct {
	Command []string `json:"command"`
}

func (e *UnknownCommand) attach(le *LogEntry) { le.UnknownCommand = e }

// InvalidInvocation is logged for usage errors.
type InvalidInvocation struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

func (e *InvalidInvocation) attach(le *LogEntry) { le.InvalidInvocation = e }

// Signal is logged after a termination signal was sent, or failed to send.
type Signal struct {
	Pid   int    `json:"pid"`
	Error string `json:"error,omitempty"`
}

func (e *Signal) attach(le *LogEntry) { le.Signal = e }

// Spawn is logged once a fork-mode child was reaped or failed to start.
type Spawn struct {
	Command []string `json:"command"`
	Pid     int      `json:"pid,omitempty"`
	Stage   string   `json:"stage,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func (e *Spawn) attach(le *LogEntry) { le.Spawn = e }

// Replace is logged right before the process image is replaced and again if
// the replacement fails.
type Replace struct {
	Command []string `json:"command"`
	Error   string   `json:"error,omitempty"`
}

func (e *Replace) attach(le *LogEntry) { le.Replace = e }

// ListProcesses is logged for every process table read.
type ListProcesses struct {
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

func (e *ListProcesses) attach(le *LogEntry) { le.ListProcesses = e }
