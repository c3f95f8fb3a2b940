package config

import (
	"strings"
)

// SourceName identifies where a settings value came from.
type SourceName string

const (
	// SourceEnv is the process environment.
	SourceEnv SourceName = "env"
	// SourceDotenv is the per-environment dotenv file.
	SourceDotenv SourceName = "dotenv"
	// SourceInit is the overrides map handed to the loader.
	SourceInit SourceName = "init"
	// SourceSecrets is the secrets directory.
	SourceSecrets SourceName = "secrets"
	// SourceDefault is the probed environment (ENVIRONMENT, PLATFORM).
	SourceDefault SourceName = "default"
	// SourceTag marks keys left to the field's envDefault tag.
	SourceTag SourceName = "envDefault"
)

// Source produces raw string values for a set of declared keys.
//
// Load receives every key the settings type declares and returns the subset it
// has values for, keyed exactly as requested. Key matching is
// case-insensitive. Keys the source knows but that were not requested are
// dropped, which is how unrecognised settings get ignored.
type Source interface {
	Name() SourceName
	Load(keys []string) (map[string]string, error)
}

// pick selects the requested keys from a case-folded index.
func pick(index map[string]string, keys []string) map[string]string {
	values := make(map[string]string, len(keys))
	for _, key := range keys {
		if value, ok := index[strings.ToUpper(key)]; ok {
			values[key] = value
		}
	}

	return values
}

// foldKeys upper-cases the keys of raw. When two keys fold to the same value
// the one already upper-case wins.
func foldKeys(raw map[string]string) map[string]string {
	index := make(map[string]string, len(raw))
	for key, value := range raw {
		upper := strings.ToUpper(key)
		if _, taken := index[upper]; taken && key != upper {
			continue
		}
		index[upper] = value
	}

	return index
}

type envSource struct {
	environ func() []string
}

func newEnvSource(environ func() []string) *envSource {
	return &envSource{environ: environ}
}

func (s *envSource) Name() SourceName {
	return SourceEnv
}

func (s *envSource) Load(keys []string) (map[string]string, error) {
	raw := make(map[string]string)
	for _, kv := range s.environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		raw[key] = value
	}

	return pick(foldKeys(raw), keys), nil
}

type mapSource struct {
	name   SourceName
	values map[string]string
}

// newOverridesSource wraps the explicit overrides.
func newOverridesSource(values map[string]string) *mapSource {
	return &mapSource{name: SourceInit, values: values}
}

// newDefaultsSource holds the probed values of the Common fields.
func newDefaultsSource(environment, platform string) *mapSource {
	return &mapSource{
		name: SourceDefault,
		values: map[string]string{
			"ENVIRONMENT": environment,
			"PLATFORM":    platform,
		},
	}
}

func (s *mapSource) Name() SourceName {
	return s.name
}

func (s *mapSource) Load(keys []string) (map[string]string, error) {
	return pick(foldKeys(s.values), keys), nil
}
