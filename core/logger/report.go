package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	RunCommand        RunCommandReport        `json:"run_command_report"`
	UnknownCommand    UnknownCommandReport    `json:"unknown_command_report"`
	InvalidInvocation InvalidInvocationReport `json:"invalid_invocation_report"`
	Signal            SignalReport            `json:"signal_report"`
	Spawn             SpawnReport             `json:"spawn_report"`
	Replace           ReplaceReport           `json:"replace_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.Event().(type) {
	case *SessionStart:
		r.Sessions.Increment(le.SessionID)
	case *RunCommand:
		r.RunCommand.update(event)
	case *UnknownCommand:
		r.UnknownCommand.update(event)
	case *InvalidInvocation:
		r.InvalidInvocation.update(event)
	case *Signal:
		r.Signal.update(event)
	case *Spawn:
		r.Spawn.update(event)
	case *Replace:
		r.Replace.update(event)
	case *ListProcesses:
		// Ignore
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type RunCommandReport struct {
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
	}
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(logEntry *UnknownCommand) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type InvalidInvocationReport struct {
	CommandNames StrCounter `json:"command_counts"`
}

func (r *InvalidInvocationReport) update(logEntry *InvalidInvocation) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type SignalReport struct {
	Sent   int        `json:"sent"`
	Errors StrCounter `json:"errors"`
}

func (r *SignalReport) update(s *Signal) {
	if s.Error != "" {
		r.Errors.Increment(s.Error)
		return
	}
	r.Sent++
}

type SpawnReport struct {
	Programs StrCounter `json:"programs"`
	Failures StrCounter `json:"failures"`
}

func (r *SpawnReport) update(s *Spawn) {
	program := ""
	if len(s.Command) > 0 {
		program = s.Command[0]
	}
	if s.Error != "" {
		r.Failures.Increment(s.Stage)
		return
	}
	r.Programs.Increment(program)
}

type ReplaceReport struct {
	Attempts StrCounter `json:"attempts"`
	Failures int        `json:"failures"`
}

func (r *ReplaceReport) update(rp *Replace) {
	if rp.Error != "" {
		r.Failures++
		return
	}
	if len(rp.Command) > 0 {
		r.Attempts.Increment(rp.Command[0])
	}
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns how many times key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// Keys returns the seen keys in sorted order.
func (s *StrCounter) Keys() []string {
	var out []string
	for k := range s.internal {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}
