package core

// Logger is implemented by the logging backends in services/logger.
// expected args: error, map[string]interface{} (fields) or any other value.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
