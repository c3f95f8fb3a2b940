// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/MKhiriev/snapenv-core/environment"
)

// Load builds a settings value of type T from all sources. T must be a struct,
// usually one embedding [Common].
//
// Before any source is read the environment is probed and the secrets
// directory created when missing; a failure there is returned wrapped in
// [environment.ErrSecretsDir]. Missing required fields and values that do not
// convert to their field type are reported as [ErrValidation].
func Load[T any](opts ...Option) (*T, error) {
	cfg, _, err := Resolve[T](opts...)
	return cfg, err
}

// Resolve is [Load] that also reports, for every declared key, the merged raw
// value and the source it came from. Resolutions are returned even when
// decoding fails so callers can show what was found.
func Resolve[T any](opts ...Option) (*T, []Resolution, error) {
	o := newOptions(opts)
	log := o.logger.GetChildLogger("settings")

	cfg := new(T)
	if reflect.TypeFor[T]().Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("%w: got %s", ErrInvalidTarget, reflect.TypeFor[T]())
	}

	snapshot, err := o.getProber().Probe()
	if err != nil {
		return nil, nil, fmt.Errorf("error probing environment: %w", err)
	}

	keys, err := declaredKeys(cfg)
	if err != nil {
		return nil, nil, err
	}

	merged, resolutions, err := newConfigBuilder(keys, log).
		with(newEnvSource(o.environ)).
		with(newDotenvSource(o.dotenvPath(snapshot), log)).
		with(newOverridesSource(o.overrides)).
		with(newSecretsSource(snapshot.SecretsDir, log)).
		with(newDefaultsSource(snapshot.Name, snapshot.Platform)).
		build()
	if err != nil {
		return nil, nil, err
	}

	if err := decode(cfg, merged); err != nil {
		return nil, resolutions, err
	}

	log.Debug().
		Str("environment", snapshot.Name).
		Str("secrets_dir", snapshot.SecretsDir).
		Int("keys", len(keys)).
		Msg("settings loaded")

	return cfg, resolutions, nil
}

func (o *options) dotenvPath(snapshot environment.Snapshot) string {
	name := o.envFile
	if name == "" {
		name = snapshot.DotenvFile()
	}
	if filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(o.projectRoot, name)
}

// Cached returns a function that loads the settings on first call and returns
// the same pointer, or the same error, on every later call.
func Cached[T any](opts ...Option) func() (*T, error) {
	return sync.OnceValues(func() (*T, error) {
		return Load[T](opts...)
	})
}
