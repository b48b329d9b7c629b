package filter

// Logger is the logging capability every filter component requires at
// construction. It matches the pkg/logger call signature, so *logger.Logger
// satisfies it directly. Constructors reject a nil Logger instead of
// null-checking on every call.
type Logger interface {
	Debug(message string, prefix string)
	Info(message string, prefix string)
	Warn(message string, prefix string)
	Error(message string, prefix string)
}
