package main

import "github.com/MKhiriev/snapenv-core/config"

// AppSettings is the example application configuration: the common fields
// plus a title and a log level, both required.
type AppSettings struct {
	config.Common `yaml:",inline"`

	// AppTitle is the human-readable application title.
	// Env: APP_TITLE
	AppTitle string `env:"APP_TITLE" json:"app_title" yaml:"app_title"`

	// LogLevel is the level the application logs at.
	// Env: LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" json:"log_level" yaml:"log_level"`
}
