package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `toml:"enabled"`
	UseConsoleWriter bool `toml:"pretty"` // human readable output instead of json lines
}

// RollingFile describes one lumberjack managed log file.
type RollingFile struct {
	Name       string `toml:"name"`
	MaxSize    int    `toml:"maxSize"` // megabytes
	MaxBackups int    `toml:"maxBackups"`
	MaxAge     int    `toml:"maxAge"` // days
}

// LogFile implements a file based logger, one rolling file per level group.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	Access RollingFile `toml:"access"`
	Error  RollingFile `toml:"error"`
	Info   RollingFile `toml:"info"`
	Trace  RollingFile `toml:"trace"`
	Warn   RollingFile `toml:"warn"`
}

// Log implements the logger config.
type Log struct {
	LogLevel string // trace, debug, info, warn, error

	// EnableAccessLogToConsole writes the http access log to stdout.
	// Does not overrule Console.Enabled.
	EnableAccessLogToConsole bool
	ReportCaller             bool

	AppName     string
	ServiceName string

	Console Console
	File    LogFile `toml:"file"`
}

// DefaultLogFile returns a file config writing access.log, error.log, info.log,
// trace.log and warn.log below dir.
func DefaultLogFile(dir string) LogFile {
	rolling := func(name string) RollingFile {
		return RollingFile{Name: name, MaxSize: 10, MaxBackups: 5, MaxAge: 28} //nolint:mnd
	}

	return LogFile{
		Enabled: true,
		Path:    dir,
		Access:  rolling("access.log"),
		Error:   rolling("error.log"),
		Info:    rolling("info.log"),
		Trace:   rolling("trace.log"),
		Warn:    rolling("warn.log"),
	}
}
