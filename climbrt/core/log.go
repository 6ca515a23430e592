package core

// Logger is the part of the app logger the simulation packages write to.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
}

// NopLogger discards everything; components fall back to it when given nil.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
