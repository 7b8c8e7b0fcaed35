// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package obslog

import "go.uber.org/zap"

// zapLogger backs Logger with a real zap.SugaredLogger, the concrete
// backend the teacher's own log.Logger implementations are built on.
type zapLogger struct {
	s *zap.SugaredLogger
}

// NewZap wraps an existing *zap.Logger.
func NewZap(l *zap.Logger) Logger {
	return &zapLogger{s: l.Sugar()}
}

// NewProduction builds a production zap config (JSON, info level) wrapped
// as a Logger. Falls back to a no-op logger if zap construction fails,
// since a logging failure must never stop identification or exploration.
func NewProduction() Logger {
	l, err := zap.NewProduction()
	if err != nil {
		return NewNoOp()
	}
	return NewZap(l)
}

func (z *zapLogger) Debug(msg string, ctx ...interface{}) { z.s.Debugw(msg, ctx...) }
func (z *zapLogger) Info(msg string, ctx ...interface{})  { z.s.Infow(msg, ctx...) }
func (z *zapLogger) Warn(msg string, ctx ...interface{})  { z.s.Warnw(msg, ctx...) }
func (z *zapLogger) Error(msg string, ctx ...interface{}) { z.s.Errorw(msg, ctx...) }
