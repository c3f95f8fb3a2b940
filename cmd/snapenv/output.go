package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/snapenv-core/config"
	"github.com/MKhiriev/snapenv-core/environment"
	"github.com/MKhiriev/snapenv-core/models"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"

	maskedValue = "******"
	hostSource  = "os"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Faint(true)
)

type printer struct {
	w      io.Writer
	format string
}

func newPrinter(w io.Writer, format string) *printer {
	return &printer{w: w, format: format}
}

type probeReport struct {
	environment.Snapshot `yaml:",inline"`
	Host                 string `json:"host" yaml:"host"`
}

type settingsReport struct {
	Settings *AppSettings        `json:"settings,omitempty" yaml:"settings,omitempty"`
	Host     string              `json:"host" yaml:"host"`
	Sources  []config.Resolution `json:"sources" yaml:"sources"`
}

func (p *printer) probe(snapshot environment.Snapshot, host string) error {
	report := probeReport{Snapshot: snapshot, Host: host}
	if p.format != formatTable {
		return p.encode(report)
	}

	return p.table([]string{"FACT", "VALUE"}, [][]string{
		{"environment", snapshot.Name},
		{"dotenv file", snapshot.DotenvFile()},
		{"platform", snapshot.Platform},
		{"host", host},
		{"secrets dir", snapshot.SecretsDir},
		{"in container", strconv.FormatBool(snapshot.InContainer)},
	})
}

// resolutions prints every declared key with its source. Values read from
// secret files are masked in every format.
func (p *printer) resolutions(settings *AppSettings, resolutions []config.Resolution) error {
	masked := make([]config.Resolution, 0, len(resolutions))
	for _, r := range resolutions {
		if r.Source == config.SourceSecrets {
			r.Value = maskedValue
		}
		masked = append(masked, r)
	}

	host := config.Common{}.Host()
	if p.format != formatTable {
		if settings != nil {
			copied := *settings
			settings = &copied
			maskSettings(settings, resolutions)
		}
		return p.encode(settingsReport{Settings: settings, Host: host, Sources: masked})
	}

	rows := make([][]string, 0, len(masked)+1)
	for _, r := range masked {
		source := string(r.Source)
		if source == "" {
			source = "missing"
		}
		rows = append(rows, []string{r.Key, r.Value, source})
	}
	rows = append(rows, []string{"HOST", host, hostSource})

	return p.table([]string{"KEY", "VALUE", "SOURCE"}, rows)
}

func maskSettings(settings *AppSettings, resolutions []config.Resolution) {
	for _, r := range resolutions {
		if r.Source != config.SourceSecrets {
			continue
		}
		switch r.Key {
		case "APP_TITLE":
			settings.AppTitle = maskedValue
		case "LOG_LEVEL":
			settings.LogLevel = maskedValue
		case "ENVIRONMENT":
			settings.Environment = maskedValue
		case "PLATFORM":
			settings.Platform = maskedValue
		}
	}
}

func (p *printer) buildInfo(info models.BuildInfo) error {
	if p.format != formatTable {
		return p.encode(info)
	}

	_, err := fmt.Fprintln(p.w, info.String())
	return err
}

func (p *printer) table(headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	_, err := fmt.Fprintln(p.w, t.Render())
	return err
}

func (p *printer) encode(v any) error {
	switch p.format {
	case formatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(p.w)
		defer enc.Close()
		enc.SetIndent(2)
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q", p.format)
	}
}
