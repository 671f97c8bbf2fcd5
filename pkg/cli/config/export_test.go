package config

// NewLogger builds a Logger config without going through CLI flags (tests)
func NewLogger(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewCatalog builds a Catalog config without going through CLI flags (tests)
func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}
