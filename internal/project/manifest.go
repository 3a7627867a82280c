package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const manifestName = "package.json"

// Manifest wraps a parsed package.json. The raw document is kept as a
// generic map so keys we never touch survive a rewrite.
type Manifest struct {
	path string
	data map[string]interface{}
}

// ReadManifest parses dir/package.json. A missing manifest returns
// (nil, nil); a malformed one is a hard error, never treated as absent.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, manifestName)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}

	return &Manifest{path: path, data: data}, nil
}

func (m *Manifest) section(key string) map[string]interface{} {
	if section, ok := m.data[key].(map[string]interface{}); ok {
		return section
	}
	return nil
}

// HasDependency reports whether name appears in dependencies or
// devDependencies.
func (m *Manifest) HasDependency(name string) bool {
	for _, key := range []string{"dependencies", "devDependencies"} {
		if section := m.section(key); section != nil {
			if _, ok := section[name]; ok {
				return true
			}
		}
	}
	return false
}

// HasScript reports whether the named entry exists under scripts.
func (m *Manifest) HasScript(name string) bool {
	section := m.section("scripts")
	if section == nil {
		return false
	}
	_, ok := section[name]
	return ok
}

// SetScript adds or replaces a scripts entry.
func (m *Manifest) SetScript(name, command string) {
	section := m.section("scripts")
	if section == nil {
		section = make(map[string]interface{})
		m.data["scripts"] = section
	}
	section[name] = command
}

// SetDependency adds or replaces an entry in the given dependency group
// ("dependencies" or "devDependencies").
func (m *Manifest) SetDependency(group, name, version string) {
	section := m.section(group)
	if section == nil {
		section = make(map[string]interface{})
		m.data[group] = section
	}
	section[name] = version
}

// Save writes the manifest back to disk, pretty-printed.
func (m *Manifest) Save() error {
	raw, err := json.MarshalIndent(m.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %v", m.path, err)
	}

	if err := os.WriteFile(m.path, append(raw, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", m.path, err)
	}

	return nil
}
