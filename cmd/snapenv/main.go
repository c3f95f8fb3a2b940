// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command snapenv inspects how settings resolve on the current host: the
// probed environment, the secrets directory and, for the example
// AppSettings, which source supplied every key.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/MKhiriev/snapenv-core/config"
	"github.com/MKhiriev/snapenv-core/environment"
	"github.com/MKhiriev/snapenv-core/internal/logger"
	"github.com/MKhiriev/snapenv-core/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cli struct {
	app *kingpin.Application

	projectRoot *string
	envFile     *string
	secretsDir  *string
	overrides   *map[string]string
	format      *string
	logLevel    *string

	probeCmd   *kingpin.CmdClause
	initCmd    *kingpin.CmdClause
	showCmd    *kingpin.CmdClause
	versionCmd *kingpin.CmdClause
}

func newCLI(stdout, stderr io.Writer) *cli {
	app := kingpin.New("snapenv", "Show how settings resolve from env, dotenv, overrides and secret files")
	app.Writer(stdout)
	app.ErrorWriter(stderr)
	app.Terminate(nil)

	c := &cli{app: app}
	c.projectRoot = app.Flag("project-root", "Directory holding the <ENVIRONMENT>.env file").Default(".").String()
	c.envFile = app.Flag("env-file", "Dotenv file name overriding <ENVIRONMENT>.env").String()
	c.secretsDir = app.Flag("secrets-dir", "Secrets directory overriding the probed one").String()
	c.overrides = app.Flag("set", "Explicit override KEY=VALUE, repeatable").Short('s').StringMap()
	c.format = app.Flag("format", "Output format").Short('o').Default(formatTable).Enum(formatTable, formatJSON, formatYAML)
	c.logLevel = app.Flag("log-level", "Log level for diagnostics on stderr").Default("warn").String()

	c.probeCmd = app.Command("probe", "Print the probed environment and ensure the secrets directory")
	c.initCmd = app.Command("init", "Create the secrets directory when missing")
	c.showCmd = app.Command("show", "Load the example settings and print where each value came from")
	c.versionCmd = app.Command("version", "Print build information")

	return c
}

func (c *cli) options(log *logger.Logger) []config.Option {
	opts := []config.Option{
		config.WithProjectRoot(*c.projectRoot),
		config.WithOverrides(*c.overrides),
		config.WithLogger(log.Logger),
	}
	if *c.envFile != "" {
		opts = append(opts, config.WithEnvFile(*c.envFile))
	}
	if *c.secretsDir != "" {
		opts = append(opts, config.WithSecretsDir(*c.secretsDir))
	}

	return opts
}

func (c *cli) prober() *environment.Prober {
	if *c.secretsDir != "" {
		return environment.NewProber(environment.WithSecretsDir(*c.secretsDir))
	}
	return environment.NewProber()
}

func run(args []string, stdout, stderr io.Writer) error {
	c := newCLI(stdout, stderr)

	command, err := c.app.Parse(args)
	if err != nil {
		return err
	}

	log := logger.New(stderr, "snapenv", *c.logLevel)
	out := newPrinter(stdout, *c.format)

	switch command {
	case c.probeCmd.FullCommand():
		snapshot, err := c.prober().Probe()
		if err != nil {
			return fmt.Errorf("error probing environment: %w", err)
		}
		return out.probe(snapshot, config.Common{}.Host())

	case c.initCmd.FullCommand():
		p := c.prober()
		if err := p.EnsureSecretsDir(); err != nil {
			return err
		}
		log.Info().Str("dir", p.SecretsDir()).Msg("secrets directory ready")
		return nil

	case c.showCmd.FullCommand():
		settings, resolutions, err := config.Resolve[AppSettings](c.options(log)...)
		if resolutions != nil {
			if printErr := out.resolutions(settings, resolutions); printErr != nil {
				return printErr
			}
		}
		if err != nil {
			return fmt.Errorf("error loading settings: %w", err)
		}
		return nil

	case c.versionCmd.FullCommand():
		return out.buildInfo(models.NewBuildInfo(buildVersion, buildDate, buildCommit))
	}

	return nil
}
