package environment

import "errors"

// ErrSecretsDir is returned when the secrets directory cannot be inspected or
// created. It is fatal: settings must not be loaded without the directory.
var ErrSecretsDir = errors.New("cannot prepare secrets directory")
