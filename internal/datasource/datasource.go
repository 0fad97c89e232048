// Package datasource reads company financial statements from local files.
// It defines a common Source interface and implements concrete sources for
// JSON, YAML, TOML, HJSON and HTML statement tables, plus built-in samples.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/seenimoa/riskscanner/pkg/models"
)

// Source defines the common interface that all file formats implement.
type Source interface {
	// Name returns the human-readable name of this format.
	Name() string

	// Extensions lists the lower-case file extensions handled, with the dot.
	Extensions() []string

	// Decode parses one company document.
	Decode(data []byte) (*models.Company, error)
}

// Encoder is implemented by sources that can also write documents.
type Encoder interface {
	Encode(c *models.Company) ([]byte, error)
}

// --- Sentinel errors ---

// ErrUnsupportedFormat is returned for a file extension no source handles.
var ErrUnsupportedFormat = fmt.Errorf("unsupported input format")

// ErrNoFigures is returned when a document holds no recognizable line items.
var ErrNoFigures = fmt.Errorf("no financial figures found")

var sources = []Source{
	jsonSource{},
	yamlSource{},
	tomlSource{},
	hjsonSource{},
	htmlSource{},
}

// ForPath picks the source for a file by its extension.
func ForPath(path string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range sources {
		for _, e := range s.Extensions() {
			if e == ext {
				return s, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Extensions returns every supported file extension, sorted.
func Extensions() []string {
	var exts []string
	for _, s := range sources {
		exts = append(exts, s.Extensions()...)
	}
	sort.Strings(exts)
	return exts
}

// Loader reads company files and logs what it finds.
type Loader struct {
	logger zerolog.Logger
}

// NewLoader creates a loader that logs through l.
func NewLoader(l zerolog.Logger) *Loader {
	return &Loader{logger: l.With().Str("component", "datasource").Logger()}
}

// Load reads one company file with a silent loader.
func Load(path string) (*models.Company, error) {
	return NewLoader(zerolog.Nop()).Load(path)
}

// Load reads and decodes one company file. When the document carries no
// company name the file name without extension is used.
func (l *Loader) Load(path string) (*models.Company, error) {
	src, err := ForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	c, err := src.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s as %s: %w", path, src.Name(), err)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	l.logger.Debug().
		Str("file", path).
		Str("format", src.Name()).
		Str("company", c.Name).
		Msg("loaded statement")
	return c, nil
}

// Save writes a company to path in the format implied by its extension.
func Save(path string, c *models.Company) error {
	src, err := ForPath(path)
	if err != nil {
		return err
	}
	enc, ok := src.(Encoder)
	if !ok {
		return fmt.Errorf("%w: %s output", ErrUnsupportedFormat, src.Name())
	}

	data, err := enc.Encode(c)
	if err != nil {
		return fmt.Errorf("encode %s: %w", src.Name(), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
