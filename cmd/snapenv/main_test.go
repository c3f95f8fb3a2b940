package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/snapenv-core/config"
	"github.com/MKhiriev/snapenv-core/environment"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func isolate(t *testing.T) (root, secrets string) {
	t.Helper()
	root = t.TempDir()
	secrets = filepath.Join(t.TempDir(), "secrets")
	for _, key := range []string{"ENVIRONMENT", "APP_TITLE", "LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return root, secrets
}

func TestRun_Version(t *testing.T) {
	stdout, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Build version: N/A")
}

func TestRun_VersionJSON(t *testing.T) {
	stdout, _, err := runCLI(t, "--format", "json", "version")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, "N/A", info["version"])
}

func TestRun_UnknownCommand(t *testing.T) {
	_, _, err := runCLI(t, "frobnicate")
	assert.Error(t, err)
}

func TestRun_ProbeJSON(t *testing.T) {
	_, secrets := isolate(t)
	t.Setenv("ENVIRONMENT", "test")

	stdout, _, err := runCLI(t, "--secrets-dir", secrets, "-o", "json", "probe")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "test", report["environment"])
	assert.Equal(t, secrets, report["secrets_dir"])
	host, _ := os.Hostname()
	assert.Equal(t, host, report["host"])
}

func TestRun_ProbeTable(t *testing.T) {
	_, secrets := isolate(t)

	stdout, _, err := runCLI(t, "--secrets-dir", secrets, "probe")
	require.NoError(t, err)
	assert.Contains(t, stdout, "secrets dir")
	assert.Contains(t, stdout, secrets)
}

func TestRun_Init(t *testing.T) {
	_, secrets := isolate(t)
	if environment.NewProber().InContainer() {
		t.Skip("running inside a container")
	}

	_, stderr, err := runCLI(t, "--secrets-dir", secrets, "--log-level", "info", "init")
	require.NoError(t, err)
	assert.Contains(t, stderr, "secrets directory ready")

	info, err := os.Stat(secrets)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRun_ShowResolvesSources(t *testing.T) {
	root, secrets := isolate(t)
	t.Setenv("ENVIRONMENT", "test")
	require.NoError(t, os.WriteFile(filepath.Join(root, "test.env"), []byte("APP_TITLE=From Dotenv\n"), 0o600))
	require.NoError(t, os.MkdirAll(secrets, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(secrets, "LOG_LEVEL"), []byte("debug\n"), 0o600))

	stdout, _, err := runCLI(t, "--project-root", root, "--secrets-dir", secrets, "-o", "json", "show")
	require.NoError(t, err)

	var report settingsReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.NotNil(t, report.Settings)
	assert.Equal(t, "From Dotenv", report.Settings.AppTitle)
	assert.Equal(t, "test", report.Settings.Environment)
	assert.Equal(t, maskedValue, report.Settings.LogLevel)
	assert.Contains(t, report.Sources, config.Resolution{Key: "APP_TITLE", Value: "From Dotenv", Source: config.SourceDotenv})
	assert.Contains(t, report.Sources, config.Resolution{Key: "LOG_LEVEL", Value: maskedValue, Source: config.SourceSecrets})
}

func TestRun_ShowOverrides(t *testing.T) {
	root, secrets := isolate(t)

	stdout, _, err := runCLI(t,
		"--project-root", root, "--secrets-dir", secrets,
		"--set", "APP_TITLE=cli", "-s", "LOG_LEVEL=warn",
		"-o", "yaml", "show",
	)
	require.NoError(t, err)

	var report struct {
		Settings map[string]string  `yaml:"settings"`
		Sources  []config.Resolution `yaml:"sources"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "cli", report.Settings["app_title"])
	assert.Contains(t, report.Sources, config.Resolution{Key: "LOG_LEVEL", Value: "warn", Source: config.SourceInit})
}

func TestRun_ShowMissingField(t *testing.T) {
	root, secrets := isolate(t)

	stdout, _, err := runCLI(t, "--project-root", root, "--secrets-dir", secrets, "-s", "LOG_LEVEL=info", "show")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrValidation)
	assert.Contains(t, stdout, "missing")
	assert.Contains(t, stdout, "APP_TITLE")
}

func TestRun_ShowEmptyValueIsSet(t *testing.T) {
	root, secrets := isolate(t)
	t.Setenv("APP_TITLE", "")

	stdout, _, err := runCLI(t, "--project-root", root, "--secrets-dir", secrets, "-s", "LOG_LEVEL=info", "-o", "json", "show")
	require.NoError(t, err)

	var report settingsReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.NotNil(t, report.Settings)
	assert.Empty(t, report.Settings.AppTitle)
	assert.Contains(t, report.Sources, config.Resolution{Key: "APP_TITLE", Value: "", Source: config.SourceEnv})
}
