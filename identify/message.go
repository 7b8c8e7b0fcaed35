// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package identify

// Severity tags a Message with how urgently the orchestrator should care,
// per spec §7's error-kind taxonomy. No severity is fatal to the engine.
type Severity int

const (
	Info Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Message is an informational or error string a rule (or the engine
// itself) attaches to an iteration's result. Messages never abort the
// engine; they are collected and returned to the caller.
type Message struct {
	Source   string
	Severity Severity
	Text     string
}
