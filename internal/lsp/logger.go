package lsp

import (
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// Logger adapts a commonlog logger, the one glsp writes to, to the logger
// the step index takes.
type Logger struct {
	log commonlog.Logger
}

func NewLogger(name string) *Logger {
	return &Logger{log: commonlog.GetLogger(name)}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log.Debug(msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log.Info(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log.Warning(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log.Error(msg, args...)
}
