// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package environment computes the process-wide facts every settings load
// depends on: the named environment selected by the ENVIRONMENT variable, the
// platform name of the running host and the directory holding secret files.
//
// The secrets directory is /run/secrets inside a container (detected through
// the /.dockerenv marker) and <user-base>/secrets everywhere else. Outside a
// container [Prober.EnsureSecretsDir] creates it, so the secret-file source
// always has a directory to read from.
//
// A [Prober] should be run once during start-up via [Prober.Probe]; the
// resulting [Snapshot] is immutable and can be passed to whoever needs it.
package environment
