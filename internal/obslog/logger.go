// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package obslog provides the small structured-logging surface shared by
// the identification engine and the exploration driver, mirrored on the
// teacher's github.com/luxfi/log.Logger interface (see log/nolog.go) but
// trimmed to the handful of methods this repo's core actually calls.
package obslog

// Logger is a structured logger accepting key/value context pairs, the
// same "Geth-style" shape the teacher's log.Logger carries.
type Logger interface {
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
}

// NewNoOp returns a logger that discards everything, for tests and callers
// that don't want engine chatter — mirrors log/noop.go.
func NewNoOp() Logger { return noop{} }

type noop struct{}

func (noop) Debug(string, ...interface{}) {}
func (noop) Info(string, ...interface{})  {}
func (noop) Warn(string, ...interface{})  {}
func (noop) Error(string, ...interface{}) {}
