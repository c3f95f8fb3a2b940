// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"slices"

	"dario.cat/mergo"

	"github.com/MKhiriev/snapenv-core/internal/logger"
)

// Resolution reports how one declared key was resolved.
type Resolution struct {
	Key    string     `json:"key" yaml:"key"`
	Value  string     `json:"value" yaml:"value"`
	Source SourceName `json:"source" yaml:"source"`
}

type layer struct {
	source SourceName
	values map[string]string
}

// configBuilder collects one layer per source, highest priority first, and
// merges them with mergo so the first layer holding a key wins, even when its
// value is empty.
type configBuilder struct {
	keys   []fieldKey
	names  []string
	layers []layer
	err    error
	logger *logger.Logger
}

func newConfigBuilder(keys []fieldKey, log *logger.Logger) *configBuilder {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k.Key)
	}

	return &configBuilder{
		keys:   keys,
		names:  names,
		layers: make([]layer, 0, 5),
		logger: log,
	}
}

func (b *configBuilder) with(src Source) *configBuilder {
	values, err := src.Load(b.names)
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%w: %s: %w", ErrSource, src.Name(), err))
		return b
	}

	found := make([]string, 0, len(values))
	for key := range values {
		found = append(found, key)
	}
	slices.Sort(found)
	b.logger.Debug().Str("source", string(src.Name())).Strs("keys", found).Msg("settings source loaded")

	b.layers = append(b.layers, layer{source: src.Name(), values: values})
	return b
}

func (b *configBuilder) build() (map[string]string, []Resolution, error) {
	if b.err != nil {
		return nil, nil, fmt.Errorf("error occurred during building settings: %w", b.err)
	}

	// Lowest layer first. For string maps WithOverride also copies empty
	// values, so a present key always replaces what a lower layer set.
	// WithOverwriteWithEmptyValue is avoided: it drops keys the layer lacks.
	merged := make(map[string]string, len(b.keys))
	for _, l := range slices.Backward(b.layers) {
		if err := mergo.Merge(&merged, l.values, mergo.WithOverride); err != nil {
			return nil, nil, fmt.Errorf("error merging %s values: %w", l.source, err)
		}
	}

	return merged, b.resolve(merged), nil
}

func (b *configBuilder) resolve(merged map[string]string) []Resolution {
	resolutions := make([]Resolution, 0, len(b.keys))
	for _, k := range b.keys {
		r := Resolution{Key: k.Key, Value: merged[k.Key]}
		r.Source = b.origin(k)
		resolutions = append(resolutions, r)
	}

	return resolutions
}

// origin names the first layer holding key.
func (b *configBuilder) origin(k fieldKey) SourceName {
	for _, l := range b.layers {
		if _, ok := l.values[k.Key]; ok {
			return l.source
		}
	}

	if k.HasDefault {
		return SourceTag
	}

	return ""
}
