package core

// Logger defines the interface for logging operations
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, err error, keysAndValues ...interface{})
}

// Nop is a Logger that discards everything.
type Nop struct{}

func (Nop) Debug(string, ...interface{})        {}
func (Nop) Info(string, ...interface{})         {}
func (Nop) Warn(string, ...interface{})         {}
func (Nop) Error(string, error, ...interface{}) {}
