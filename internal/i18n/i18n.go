// Package i18n resolves bot texts from YAML catalogs.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultDir = "locales"

//go:embed locales/*.yaml
var embedded embed.FS

// Translator resolves localized strings using dot-separated keys.
type Translator interface {
	T(key string) string
	Lang() string
}

// messages maps flattened keys such as "button.back" to texts.
type messages map[string]string

// Manager stores all available translations.
type Manager struct {
	catalog     map[string]messages
	defaultLang string
}

// Load loads the catalogs compiled into the binary.
func Load(defaultLang string) (*Manager, error) {
	return LoadFS(embedded, defaultDir, defaultLang)
}

// LoadFromDir loads translations from a directory containing YAML files.
func LoadFromDir(dir, defaultLang string) (*Manager, error) {
	return LoadFS(os.DirFS(dir), ".", defaultLang)
}

// LoadFS loads translations from YAML files found in dir of fsys.
func LoadFS(fsys fs.FS, dir, defaultLang string) (*Manager, error) {
	catalog, err := readCatalog(fsys, dir)
	if err != nil {
		return nil, err
	}

	if defaultLang == "" {
		defaultLang = "uz"
	}

	if _, ok := catalog[defaultLang]; !ok {
		return nil, fmt.Errorf("i18n: default language %q is missing", defaultLang)
	}

	return &Manager{catalog: catalog, defaultLang: defaultLang}, nil
}

// Translator returns a translator for lang, or for the default language when lang has no catalog.
func (m *Manager) Translator(lang string) Translator {
	if m == nil {
		return translator{}
	}

	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := m.catalog[lang]; !ok {
		lang = m.defaultLang
	}

	return translator{
		lang:     lang,
		primary:  m.catalog[lang],
		fallback: m.catalog[m.defaultLang],
	}
}

// Fill substitutes {{.Name}} style placeholders in text.
func Fill(text string, vars map[string]string) string {
	for name, value := range vars {
		text = strings.ReplaceAll(text, "{{."+name+"}}", value)
	}
	return text
}

type translator struct {
	lang     string
	primary  messages
	fallback messages
}

func (t translator) Lang() string {
	return t.lang
}

// T resolves key in the translator's language, then in the default one. Missing keys
// come back unchanged so gaps stay visible in the chat.
func (t translator) T(key string) string {
	key = strings.TrimSpace(key)
	if v, ok := t.primary[key]; ok && v != "" {
		return v
	}
	if v, ok := t.fallback[key]; ok && v != "" {
		return v
	}
	return key
}

// readCatalog merges every YAML file in dir. Each file maps language codes to nested
// message trees.
func readCatalog(fsys fs.FS, dir string) (map[string]messages, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := fs.Glob(fsys, path.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("i18n: list %s: %w", dir, err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("i18n: no yaml files found in %s", dir)
	}
	sort.Strings(files)

	catalog := make(map[string]messages)
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("i18n: read file %s: %w", name, err)
		}

		var doc map[string]map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("i18n: parse file %s: %w", name, err)
		}

		for lang, tree := range doc {
			lang = strings.ToLower(strings.TrimSpace(lang))
			if lang == "" {
				continue
			}
			if catalog[lang] == nil {
				catalog[lang] = make(messages)
			}
			flatten("", tree, catalog[lang])
		}
	}

	return catalog, nil
}

func flatten(prefix string, tree map[string]any, out messages) {
	for key, value := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			flatten(key, v, out)
		case string:
			out[key] = v
		case nil:
		default:
			out[key] = fmt.Sprint(v)
		}
	}
}
