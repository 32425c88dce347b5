// Package tools defines the uniform result shape shared by every tool
// operation.
//
// Operations never panic or propagate errors for expected failure modes;
// they return a Result that is either a success payload carrying
// "success": true or an error payload carrying "error" and optionally
// "help". Programming-contract violations (a missing required argument)
// are still ordinary Go errors at the call boundary.
package tools

import "fmt"

// Result is the tagged success/error value returned by tool operations.
type Result map[string]interface{}

// Success returns a success result seeded with the given fields.
func Success(fields map[string]interface{}) Result {
	r := Result{"success": true}
	for k, v := range fields {
		r[k] = v
	}
	return r
}

// Errorf returns an error result with a formatted message.
func Errorf(format string, args ...interface{}) Result {
	return Result{"error": fmt.Sprintf(format, args...)}
}

// ErrorWithHelp returns an error result with guidance for the caller.
func ErrorWithHelp(message, help string) Result {
	return Result{"error": message, "help": help}
}

// IsError reports whether r is an error result.
func (r Result) IsError() bool {
	_, ok := r["error"]
	return ok
}

// ErrorMessage returns the error text, or "" for success results.
func (r Result) ErrorMessage() string {
	if msg, ok := r["error"].(string); ok {
		return msg
	}
	return ""
}
