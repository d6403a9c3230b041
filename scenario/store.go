package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Extensions understood by ReadFile / WriteFile, in the order Load looks for them
var Extensions = []string{".json", ".yaml", ".yml", ".toml"}

var ErrUnknownFormat = errors.New("unknown scenario file format")

// Store keeps one file per scenario in Dir. New files are written with Format (".json" when empty).
type Store struct {
	Dir    string
	Format string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("scenario store: %w", err)
	}
	return &Store{Dir: dir, Format: ".json"}, nil
}

// SanitizeName keeps letters, digits, '_' and ' ', and drops trailing spaces
func SanitizeName(name string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == ' ' {
			return r
		}
		return -1
	}, name)
	return strings.TrimRight(clean, " ")
}

func (st *Store) format() string {
	if st.Format == "" {
		return ".json"
	}
	return st.Format
}

func (st *Store) path(name, ext string) string {
	return filepath.Join(st.Dir, name+ext)
}

// Save validates s and writes it under its sanitized name, returning the file path.
func (st *Store) Save(s Scenario) (string, error) {
	name := SanitizeName(s.Name)
	if name == "" {
		return "", fmt.Errorf("%w: scenario name %q is empty after sanitizing", ErrValidation, s.Name)
	}
	s.Name = name
	if err := s.Validate(); err != nil {
		return "", err
	}
	fname := st.path(name, st.format())
	if err := WriteFile(fname, s); err != nil {
		return "", err
	}
	log.Infof("Saved scenario %q to %s", name, fname)
	return fname, nil
}

// Load reads the scenario called name, trying the store format first and then every known extension.
func (st *Store) Load(name string) (Scenario, error) {
	name = SanitizeName(name)
	exts := append([]string{st.format()}, Extensions...)
	for _, ext := range exts {
		fname := st.path(name, ext)
		if _, err := os.Stat(fname); err != nil {
			continue
		}
		s, err := ReadFile(fname)
		if err != nil {
			return Scenario{}, err
		}
		log.Debugf("Loaded scenario %q from %s", s.Name, fname)
		return s, nil
	}
	return Scenario{}, fmt.Errorf("scenario %q in %s: %w", name, st.Dir, os.ErrNotExist)
}

// List returns the sorted names of all scenario files in the store
func (st *Store) List() ([]string, error) {
	entries, err := os.ReadDir(st.Dir)
	if err != nil {
		return nil, fmt.Errorf("scenario store: %w", err)
	}
	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() || !known(filepath.Ext(e.Name())) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes every file stored for name
func (st *Store) Delete(name string) error {
	name = SanitizeName(name)
	removed := 0
	for _, ext := range Extensions {
		err := os.Remove(st.path(name, ext))
		if err == nil {
			removed++
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("delete scenario %q: %w", name, err)
		}
	}
	if removed == 0 {
		return fmt.Errorf("scenario %q in %s: %w", name, st.Dir, os.ErrNotExist)
	}
	log.Infof("Deleted scenario %q", name)
	return nil
}

// SeedDefaults writes the presets that are not in the store yet and returns their names
func (st *Store) SeedDefaults() ([]string, error) {
	existing, err := st.List()
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}
	var written []string
	for _, p := range Presets() {
		if have[p.Name] {
			continue
		}
		if _, err := st.Save(p); err != nil {
			return written, err
		}
		written = append(written, p.Name)
	}
	return written, nil
}

func known(ext string) bool {
	for _, e := range Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// ReadFile decodes a scenario file, choosing the format by extension. A file without a name
// field is named after the file.
func ReadFile(fname string) (Scenario, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return Scenario{}, err
	}
	ext := strings.ToLower(filepath.Ext(fname))
	s, err := Decode(data, ext)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", fname, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(fname), filepath.Ext(fname))
	}
	return s, nil
}

func WriteFile(fname string, s Scenario) error {
	data, err := Encode(s, strings.ToLower(filepath.Ext(fname)))
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	return os.WriteFile(fname, data, 0o644)
}

// Decode parses data in the format named by ext (".json", ".yaml", ".yml" or ".toml").
func Decode(data []byte, ext string) (Scenario, error) {
	raw := make(map[string]interface{})
	var err error
	switch ext {
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return Scenario{}, err
	}
	return fromMap(raw)
}

func Encode(s Scenario, ext string) ([]byte, error) {
	rec := newRecord(s)
	switch ext {
	case ".json":
		return json.MarshalIndent(rec, "", "    ")
	case ".yaml", ".yml":
		return yaml.Marshal(rec)
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(rec); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}
