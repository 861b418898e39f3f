package prefabs

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jannetahkola/webgpu-game/ecs"
	"gopkg.in/yaml.v3"
)

// Prefab is a named snapshot a scene is loaded from.
type Prefab struct {
	Name     string       `yaml:"name" json:"name"`
	Snapshot ecs.Snapshot `yaml:"em" json:"em"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec, err := ParseSpec[T](filename, data)
	if err != nil {
		return zero, err
	}
	return spec, nil
}

// ParseSpec decodes data as JSON when filename ends in .json and as YAML
// otherwise.
func ParseSpec[T any](filename string, data []byte) (T, error) {
	var spec T
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		if err := json.Unmarshal(data, &spec); err != nil {
			return spec, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
		}
		return spec, nil
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// LoadPrefab reads a scene prefab by file name.
func LoadPrefab(filename string) (Prefab, error) {
	p, err := LoadSpec[Prefab](filename)
	if err != nil {
		return Prefab{}, err
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return p, nil
}
