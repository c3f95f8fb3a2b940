package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/joho/godotenv"

	"github.com/MKhiriev/snapenv-core/internal/logger"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type dotenvSource struct {
	path   string
	logger *logger.Logger
}

func newDotenvSource(path string, log *logger.Logger) *dotenvSource {
	return &dotenvSource{path: path, logger: log}
}

func (s *dotenvSource) Name() SourceName {
	return SourceDotenv
}

// Load parses the dotenv file. A missing file contributes nothing.
//
// ${VAR} references are expanded by godotenv against keys defined earlier in
// the file and then the real process environment. The environment injected
// with [WithEnviron] is not consulted.
func (s *dotenvSource) Load(keys []string) (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug().Str("path", s.path).Msg("dotenv file not found, skipping")
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading dotenv file %s: %w", s.path, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrDotenvEncoding, s.path)
	}

	raw, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing dotenv file %s: %w", s.path, err)
	}

	return pick(foldKeys(raw), keys), nil
}
