package config

// Color modes accepted by the output directive and the --color flag.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// Config is the root of the remarklens configuration file.
type Config struct {
	Logger Logger `yaml:"logger"`
	Output Output `yaml:"output"`
}

// Logger controls the verbosity of the diagnostic log.
type Logger struct {
	Level string `yaml:"level"`
}

// Output holds defaults for report rendering. Format applies only to
// commands that support the configured value; Color is auto, on or off.
type Output struct {
	Format string `yaml:"format"`
	Color  string `yaml:"color"`
}

// FormatFor returns the configured default format if it is one of the
// formats supported by the calling command, otherwise the empty string.
func (o Output) FormatFor(supported ...string) string {
	for _, f := range supported {
		if o.Format == f {
			return o.Format
		}
	}
	return ""
}
