// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"reflect"

	"github.com/caarlos0/env/v11"
)

// fieldKey describes one declared key of a settings struct.
type fieldKey struct {
	Key        string
	HasDefault bool
}

// declaredKeys lists the keys a settings struct reads, nested envPrefix
// groups included, in declaration order.
func declaredKeys(cfg any) ([]fieldKey, error) {
	params, err := env.GetFieldParams(cfg)
	if err != nil {
		return nil, fmt.Errorf("error inspecting settings fields: %w", err)
	}

	keys := make([]fieldKey, 0, len(params))
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if p.Key == "" {
			continue
		}
		if _, dup := seen[p.Key]; dup {
			continue
		}
		seen[p.Key] = struct{}{}
		keys = append(keys, fieldKey{Key: p.Key, HasDefault: p.HasDefaultValue})
	}

	return keys, nil
}

// decode populates cfg from the merged values using the caarlos0/env tag
// rules. A field without envDefault and without a value is required.
func decode(cfg any, values map[string]string) error {
	if reflect.TypeOf(cfg).Kind() != reflect.Pointer || reflect.TypeOf(cfg).Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}

	err := env.ParseWithOptions(cfg, env.Options{
		Environment:     values,
		RequiredIfNoDef: true,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}
