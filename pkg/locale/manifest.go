package locale

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyManifest    = errors.New("locale manifest has no locales")
	ErrDuplicateLocale  = errors.New("duplicate locale code")
	ErrEmptyLocaleCode  = errors.New("locale code is empty")
	ErrFailedToReadYAML = errors.New("failed to read locale manifest")
)

// Info describes one supported locale.
type Info struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

// Manifest is the configured, fixed set of supported locales.
type Manifest struct {
	Locales []Info `yaml:"locales" json:"locales"`
}

// DefaultManifest mirrors the site's locale table.
func DefaultManifest() Manifest {
	return Manifest{Locales: []Info{
		{Code: "mm", Name: "Burmese"},
		{Code: "en", Name: "English"},
		{Code: "kn", Name: "Karen"},
	}}
}

var knownNames = map[string]string{
	"mm": "Burmese",
	"en": "English",
	"kn": "Karen",
}

var titleCaser = cases.Title(language.Und)

// DisplayName returns a name for code: a known name when there is one, the title-cased
// code otherwise.
func DisplayName(code string) string {
	if name, ok := knownNames[code]; ok {
		return name
	}
	return titleCaser.String(code)
}

// NewManifest builds a manifest from codes, deriving display names.
func NewManifest(codes ...string) (Manifest, error) {
	m := Manifest{Locales: make([]Info, 0, len(codes))}
	for _, c := range codes {
		c = strings.TrimSpace(c)
		m.Locales = append(m.Locales, Info{Code: c, Name: DisplayName(c)})
	}
	return m, m.Validate()
}

// ParseManifest decodes a YAML manifest and fills missing names.
func ParseManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return Manifest{}, errors.Join(ErrFailedToReadYAML, err)
	}
	for i := range m.Locales {
		m.Locales[i].Code = strings.TrimSpace(m.Locales[i].Code)
		if m.Locales[i].Name == "" {
			m.Locales[i].Name = DisplayName(m.Locales[i].Code)
		}
	}
	return m, m.Validate()
}

// LoadManifest reads a YAML manifest from path.
func LoadManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, errors.Join(ErrFailedToReadYAML, err)
	}
	defer func() { _ = f.Close() }()
	return ParseManifest(f)
}

// Validate checks that the manifest is non-empty with unique, non-empty codes.
func (m Manifest) Validate() error {
	if len(m.Locales) == 0 {
		return ErrEmptyManifest
	}
	seen := make(map[string]struct{}, len(m.Locales))
	for _, l := range m.Locales {
		if l.Code == "" {
			return ErrEmptyLocaleCode
		}
		if _, ok := seen[l.Code]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateLocale, l.Code)
		}
		seen[l.Code] = struct{}{}
	}
	return nil
}

// Codes returns the locale codes in manifest order.
func (m Manifest) Codes() []string {
	codes := make([]string, 0, len(m.Locales))
	for _, l := range m.Locales {
		codes = append(codes, l.Code)
	}
	return codes
}

// Has reports whether code is one of the configured locales.
func (m Manifest) Has(code string) bool {
	return slices.ContainsFunc(m.Locales, func(l Info) bool { return l.Code == code })
}
