// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "os"

// hostname is swapped in tests.
var hostname = os.Hostname

// Common holds the fields every settings struct shares. Embed it without a
// tag so its keys stay unprefixed.
type Common struct {
	// Environment is the named environment, e.g. "production" or "test".
	// Env: ENVIRONMENT
	Environment string `env:"ENVIRONMENT" json:"environment" yaml:"environment"`

	// Platform is the display name of the host operating system
	// ("Linux", "Windows", "MacOS" or "other").
	// Env: PLATFORM
	Platform string `env:"PLATFORM" json:"platform" yaml:"platform"`
}

// Host returns the node name reported by the operating system. It is looked
// up on every call and never read from any settings source.
func (Common) Host() string {
	name, err := hostname()
	if err != nil {
		return ""
	}

	return name
}
