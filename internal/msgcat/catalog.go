package msgcat

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"text/template"

	yaml "gopkg.in/yaml.v3"
)

//go:embed messages.en.yaml
var defaultFiles embed.FS

// Catalog holds the game's message templates: the embedded English set,
// optionally reworded by YAML files in an override directory. Overrides may
// only replace keys the embedded set defines. Every template is parsed at
// load time and renders with missingkey=error.
type Catalog struct {
	mu   sync.RWMutex
	tpls map[string]*template.Template // flattened dot-keys
}

// New loads the embedded default messages and then applies overrides from dir if provided.
func New(overrideDir string) (*Catalog, error) {
	c := &Catalog{tpls: make(map[string]*template.Template)}

	raw, err := fs.ReadFile(defaultFiles, "messages.en.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded messages: %w", err)
	}
	flat, err := parseYAMLToFlat(raw)
	if err != nil {
		return nil, fmt.Errorf("parse embedded messages: %w", err)
	}
	if err := c.set(flat); err != nil {
		return nil, err
	}
	if strings.TrimSpace(overrideDir) != "" {
		if err := c.applyDir(overrideDir); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) applyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read template dir: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		ext := strings.ToLower(filepath.Ext(n))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, n)
		}
	}
	sort.Strings(files)
	seen := make(map[string]string) // key -> filename
	for _, name := range files {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		flat, err := parseYAMLToFlat(b)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		for k := range flat {
			if !c.has(k) {
				return fmt.Errorf("unknown message key %q in %s", k, name)
			}
			if prev, ok := seen[k]; ok {
				return fmt.Errorf("duplicate override key %q in %s and %s", k, prev, name)
			}
			seen[k] = name
		}
		if err := c.set(flat); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func parseYAMLToFlat(b []byte) (map[string]string, error) {
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	flat := make(map[string]string)
	if err := flattenStrings(m, "", flat); err != nil {
		return nil, err
	}
	return flat, nil
}

func (c *Catalog) has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.tpls[key]
	return ok
}

// set parses every template before storing any, so a bad file changes nothing.
func (c *Catalog) set(flat map[string]string) error {
	parsed := make(map[string]*template.Template, len(flat))
	for k, v := range flat {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("empty message %q", k)
		}
		tpl, err := template.New(k).Option("missingkey=error").Parse(v)
		if err != nil {
			return fmt.Errorf("message %q: %w", k, err)
		}
		parsed[k] = tpl
	}
	c.mu.Lock()
	for k, tpl := range parsed {
		c.tpls[k] = tpl
	}
	c.mu.Unlock()
	return nil
}

func flattenStrings(src any, prefix string, out map[string]string) error {
	switch v := src.(type) {
	case map[string]any:
		for k, vv := range v {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if err := flattenStrings(vv, key, out); err != nil {
				return err
			}
		}
		return nil
	case map[any]any:
		tmp := make(map[string]any)
		for kk, vv := range v {
			tmp[fmt.Sprint(kk)] = vv
		}
		return flattenStrings(tmp, prefix, out)
	case string:
		if prefix == "" {
			return errors.New("string value without key prefix")
		}
		out[prefix] = v
		return nil
	case nil:
		return nil
	default:
		// only string leaves
		return fmt.Errorf("unsupported value at %s: %T", prefix, v)
	}
}

// Render executes the template stored under key. Unknown keys and missing
// data fields are errors; the caller falls back on its own text.
func (c *Catalog) Render(key string, data any) (string, error) {
	c.mu.RLock()
	tpl, ok := c.tpls[strings.TrimSpace(key)]
	c.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("template not found: %s", key)
	}
	var b strings.Builder
	if err := tpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
