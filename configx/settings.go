package configx

// EnvPrefix is stripped from environment variables read into Settings.
const EnvPrefix = "HATCH_"

// Settings holds the process-level options of the hatch CLI.
// Every field can be set through HATCH_<KEY> or the matching persistent flag.
type Settings struct {
	Config       string `env:"CONFIG" default:"hatch.yaml" validate:"required"`
	Root         string `env:"ROOT" default:"." validate:"required"`
	TemplateRoot string `env:"TEMPLATE_ROOT"` // Empty means the directory holding Config
	LogLevel     string `env:"LOG_LEVEL" default:"warn" validate:"oneof=debug info warn error"`
	LogFormat    string `env:"LOG_FORMAT" default:"logfmt" validate:"oneof=logfmt json"`
	Force        bool   `env:"FORCE"`
}
