package config

// Overrides carries command-line values that take priority over the
// config file. Zero values leave the loaded setting untouched.
type Overrides struct {
	LogLevel  string
	LogFile   string
	Catalogue string
	OutputDir string
	Prefix    string
	Workers   int
}

// apply applies CLI flag overrides to the config.
func (o Overrides) apply(cfg *Config) {
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
	if o.Catalogue != "" {
		cfg.Catalogue.Path = o.Catalogue
	}
	if o.OutputDir != "" {
		cfg.Export.OutputDir = o.OutputDir
	}
	if o.Prefix != "" {
		cfg.Export.Prefix = o.Prefix
	}
	if o.Workers > 0 {
		cfg.Export.Workers = o.Workers
	}
}
