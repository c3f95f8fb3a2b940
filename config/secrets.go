package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/snapenv-core/internal/logger"
)

type secretsSource struct {
	dir    string
	logger *logger.Logger
}

func newSecretsSource(dir string, log *logger.Logger) *secretsSource {
	return &secretsSource{dir: dir, logger: log}
}

func (s *secretsSource) Name() SourceName {
	return SourceSecrets
}

// Load reads one file per requested key. The whole file, trimmed of
// surrounding whitespace, is the value. Directories and unrequested files are
// ignored.
func (s *secretsSource) Load(keys []string) (map[string]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug().Str("dir", s.dir).Msg("secrets directory not found, skipping")
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error listing secrets directory %s: %w", s.dir, err)
	}

	files := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files[entry.Name()] = filepath.Join(s.dir, entry.Name())
	}

	values := make(map[string]string)
	for key, path := range pick(foldKeys(files), keys) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading secret %s: %w", path, err)
		}
		values[key] = strings.TrimSpace(string(data))
	}

	return values, nil
}
