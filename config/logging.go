package config

// Args is the list of positional arguments passed to a command.
type Args []string

// LoggingFactory collects data for logging config.
type LoggingFactory struct {
	// VerboseLogging turns on verbose logging
	VerboseLogging bool
}

// Config returns new logging config.
func (f *LoggingFactory) Config() Logging {
	return Logging{
		Verbose: f.VerboseLogging,
	}
}

// Logging stores configuration of logging.
type Logging struct {
	// Verbose turns on verbose logging
	Verbose bool
}
