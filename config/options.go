package config

import (
	"maps"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/snapenv-core/environment"
	"github.com/MKhiriev/snapenv-core/internal/logger"
)

type options struct {
	overrides   map[string]string
	projectRoot string
	envFile     string
	prober      *environment.Prober
	proberOpts  []environment.ProberOption
	environ     func() []string
	logger      *logger.Logger
}

func newOptions(opts []Option) *options {
	o := &options{
		overrides: map[string]string{},
		environ:   os.Environ,
		logger:    logger.Nop(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

func (o *options) getProber() *environment.Prober {
	if o.prober != nil {
		return o.prober
	}

	opts := append([]environment.ProberOption{
		environment.WithLookupEnv(lookupIn(o.environ)),
	}, o.proberOpts...)

	return environment.NewProber(opts...)
}

func lookupIn(environ func() []string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		prefix := key + "="
		for _, kv := range environ() {
			if value, ok := strings.CutPrefix(kv, prefix); ok {
				return value, true
			}
		}
		return "", false
	}
}

// Option customises a settings load.
type Option func(*options)

// WithOverrides supplies explicit values. They rank below environment
// variables and the dotenv file and above secret files. Repeated calls add to
// the same map, later calls winning per key.
func WithOverrides(values map[string]string) Option {
	return func(o *options) {
		maps.Copy(o.overrides, values)
	}
}

// WithProjectRoot sets the directory the dotenv file is looked up in. It
// defaults to the working directory.
func WithProjectRoot(dir string) Option {
	return func(o *options) {
		o.projectRoot = dir
	}
}

// WithEnvFile replaces the "<ENVIRONMENT>.env" file name. Relative paths are
// resolved against the project root.
func WithEnvFile(name string) Option {
	return func(o *options) {
		o.envFile = name
	}
}

// WithSecretsDir pins the secrets directory. Ignored when [WithProber] is used.
func WithSecretsDir(dir string) Option {
	return func(o *options) {
		o.proberOpts = append(o.proberOpts, environment.WithSecretsDir(dir))
	}
}

// WithProber supplies a preconfigured environment prober.
func WithProber(p *environment.Prober) Option {
	return func(o *options) {
		o.prober = p
	}
}

// WithEnviron replaces os.Environ as the environment variable source. It also
// feeds the ENVIRONMENT lookup of the default prober. Variable expansion inside
// the dotenv file still reads the process environment.
func WithEnviron(environ func() []string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// WithLogger makes the loader log source activity at debug level. Values are
// never logged.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger.Wrap(l)
	}
}
