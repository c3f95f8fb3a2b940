// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package environment

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// ContainerMarker is the file a container runtime drops into the root
	// filesystem. Its presence is the only container check performed.
	ContainerMarker = "/.dockerenv"

	// ContainerSecretsDir is where orchestrators mount secret files.
	ContainerSecretsDir = "/run/secrets"

	// EnvironmentVariable selects the named environment and therefore the
	// dotenv file name.
	EnvironmentVariable = "ENVIRONMENT"

	// SecretsDirPerm is the mode used when the secrets directory is created.
	SecretsDirPerm os.FileMode = 0o700

	secretsDirName = "secrets"
)

// Platform names reported by [PlatformName].
const (
	PlatformLinux   = "Linux"
	PlatformWindows = "Windows"
	PlatformMacOS   = "MacOS"
	PlatformOther   = "other"
)

var platforms = map[string]string{
	"linux":   PlatformLinux,
	"linux2":  PlatformLinux,
	"win32":   PlatformWindows,
	"windows": PlatformWindows,
	"darwin":  PlatformMacOS,
}

// PlatformName maps an operating system identifier to its display name.
// Unknown identifiers map to [PlatformOther].
func PlatformName(id string) string {
	if name, ok := platforms[id]; ok {
		return name
	}

	return PlatformOther
}

// UserBase returns the per-user base directory: $HOME/.local on Unix-like
// hosts and %APPDATA% on Windows.
func UserBase() (string, error) {
	if runtime.GOOS == "windows" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("error resolving user base: %w", err)
		}
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error resolving user base: %w", err)
	}

	return filepath.Join(home, ".local"), nil
}

// Snapshot is the immutable result of [Prober.Probe].
type Snapshot struct {
	// Name is the value of ENVIRONMENT, empty when unset.
	Name string `json:"environment" yaml:"environment"`
	// Platform is one of the Platform* constants.
	Platform string `json:"platform" yaml:"platform"`
	// SecretsDir is the directory secret files are read from.
	SecretsDir string `json:"secrets_dir" yaml:"secrets_dir"`
	// InContainer reports whether the container marker was found.
	InContainer bool `json:"in_container" yaml:"in_container"`
}

// DotenvFile returns the dotenv file name selected by the environment name:
// "<name>.env", or ".env" for the unnamed environment.
func (s Snapshot) DotenvFile() string {
	return s.Name + ".env"
}

// Prober computes environment facts. The zero value is not usable; build one
// with [NewProber].
type Prober struct {
	fs         FileSystem
	userBase   func() (string, error)
	lookupEnv  func(string) (string, bool)
	goos       string
	secretsDir string
}

// ProberOption customises a [Prober].
type ProberOption func(*Prober)

// WithFileSystem replaces the OS-backed filesystem.
func WithFileSystem(fs FileSystem) ProberOption {
	return func(p *Prober) {
		p.fs = fs
	}
}

// WithUserBase replaces the user-base directory lookup.
func WithUserBase(fn func() (string, error)) ProberOption {
	return func(p *Prober) {
		p.userBase = fn
	}
}

// WithLookupEnv replaces os.LookupEnv for reading ENVIRONMENT.
func WithLookupEnv(fn func(string) (string, bool)) ProberOption {
	return func(p *Prober) {
		p.lookupEnv = fn
	}
}

// WithGOOS pretends the process runs on the given operating system.
func WithGOOS(goos string) ProberOption {
	return func(p *Prober) {
		p.goos = goos
	}
}

// WithSecretsDir pins the secrets directory, bypassing container detection
// for the path computation.
func WithSecretsDir(dir string) ProberOption {
	return func(p *Prober) {
		p.secretsDir = dir
	}
}

// NewProber returns a Prober that inspects the real host unless options say
// otherwise.
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		fs:        OSFileSystem(),
		userBase:  UserBase,
		lookupEnv: os.LookupEnv,
		goos:      runtime.GOOS,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the current named environment, empty when ENVIRONMENT is unset.
func (p *Prober) Name() string {
	name, _ := p.lookupEnv(EnvironmentVariable)
	return name
}

// Platform returns the display name of the running operating system.
func (p *Prober) Platform() string {
	return PlatformName(p.goos)
}

// InContainer reports whether the container marker file is present. A failed
// check is treated as "not in a container".
func (p *Prober) InContainer() bool {
	found, err := p.fs.Exists(ContainerMarker)
	return err == nil && found
}

// SecretsDir returns the directory secret files are read from.
func (p *Prober) SecretsDir() string {
	return p.secretsDirFor(p.InContainer())
}

func (p *Prober) secretsDirFor(inContainer bool) string {
	if p.secretsDir != "" {
		return p.secretsDir
	}

	if inContainer {
		return ContainerSecretsDir
	}

	base, err := p.userBase()
	if err != nil || base == "" {
		base = os.TempDir()
	}

	return filepath.Join(base, secretsDirName)
}

// EnsureSecretsDir creates the secrets directory and its parents when the
// process is not running in a container and the directory is missing.
func (p *Prober) EnsureSecretsDir() error {
	inContainer := p.InContainer()
	if inContainer {
		return nil
	}

	return p.ensureDir(p.secretsDirFor(inContainer))
}

func (p *Prober) ensureDir(dir string) error {
	exists, err := p.fs.Exists(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSecretsDir, dir, err)
	}
	if exists {
		return nil
	}

	if err := p.fs.MkdirAll(dir, SecretsDirPerm); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSecretsDir, dir, err)
	}

	return nil
}

// Probe computes every environment fact and makes sure the secrets directory
// exists. It is meant to run once during process start-up.
func (p *Prober) Probe() (Snapshot, error) {
	inContainer := p.InContainer()
	snapshot := Snapshot{
		Name:        p.Name(),
		Platform:    p.Platform(),
		SecretsDir:  p.secretsDirFor(inContainer),
		InContainer: inContainer,
	}

	if !inContainer {
		if err := p.ensureDir(snapshot.SecretsDir); err != nil {
			return Snapshot{}, err
		}
	}

	return snapshot, nil
}
