// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models holds plain data types shared between the snapenv command
// and its output formatters.
package models

import "fmt"

const notAvailable = "N/A"

// BuildInfo carries immutable build-time metadata embedded into binaries.
//
// Values are injected by linker flags during CI/CD, e.g.
//
//	-ldflags "-X main.buildVersion=1.2.3 -X main.buildCommit=abc123"
type BuildInfo struct {
	Version string `json:"version" yaml:"version"`
	Date    string `json:"date" yaml:"date"`
	Commit  string `json:"commit" yaml:"commit"`
}

// NewBuildInfo constructs [BuildInfo], replacing empty values with "N/A".
func NewBuildInfo(version, date, commit string) BuildInfo {
	return BuildInfo{
		Version: orNotAvailable(version),
		Date:    orNotAvailable(date),
		Commit:  orNotAvailable(commit),
	}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s", b.Version, b.Date, b.Commit)
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
