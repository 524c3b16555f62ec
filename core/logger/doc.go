// Package logger is a standardized event logging framework for the shell.
//
// Events are written as newline delimited JSON objects, one LogEntry per line,
// each holding exactly one event.
package logger
