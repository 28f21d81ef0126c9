// Package app holds the example application wired by the container: a
// Logger contract with two implementations and a UserService that depends
// on it.
package app

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

type Logger interface {
	Log(message string)
}

// ConsoleLogger prints "Logging: <message>" lines. The zero value writes
// to stdout, so it can be registered by type alone.
type ConsoleLogger struct {
	Out io.Writer
}

func (l *ConsoleLogger) Log(message string) {
	out := l.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, "Logging: "+message)
}

// ZapLogger forwards messages to a zap logger at info level.
type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger}
}

func (l *ZapLogger) Log(message string) {
	l.logger.Info(message)
}

type UserService struct {
	logger Logger
}

func NewUserService(logger Logger) *UserService {
	return &UserService{logger: logger}
}

func (s *UserService) DoSomething() {
	s.logger.Log("Doing something...")
}
