package logger

import "fmt"

// Logger is the operator-facing log surface. Every absorbed or escalated
// error in the pipeline goes through one of these, never silently dropped.
type Logger interface {
	Debug(log ...any)
	Info(log ...any)
	Error(log ...any)
}

type PrefixedLogger struct {
	Prefix string
}

func (pl PrefixedLogger) Debug(log ...any) {
	fmt.Println(append([]any{"[" + pl.Prefix + "] debug:"}, log...)...)
}

func (pl PrefixedLogger) Info(log ...any) {
	fmt.Println(append([]any{"[" + pl.Prefix + "]"}, log...)...)
}

func (pl PrefixedLogger) Error(log ...any) {
	fmt.Println(append([]any{"[" + pl.Prefix + "] error:"}, log...)...)
}

var _ Logger = &PrefixedLogger{}

// Nop discards everything. Used by tests that don't assert on log output.
type Nop struct{}

func (Nop) Debug(log ...any) {}
func (Nop) Info(log ...any)  {}
func (Nop) Error(log ...any) {}

var _ Logger = Nop{}
