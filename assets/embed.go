package assets

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed models/*.yaml
var modelsFS embed.FS

// Dir is checked for model files before the embedded copies.
var Dir = "assets"

type modelFile struct {
	Meshes []meshFile `yaml:"meshes"`
}

type meshFile struct {
	Name     string       `yaml:"name"`
	Material string       `yaml:"material"`
	Vertices [][3]float32 `yaml:"vertices"`
	Indices  []uint32     `yaml:"indices"`
}

// LoadFile reads an asset relative to Dir, falling back to the embedded
// copies.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return modelsFS.ReadFile(clean)
}

func parseModel(ref string, data []byte) (*Model, error) {
	var f modelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("assets: parse %s: %w", ref, err)
	}
	if len(f.Meshes) == 0 {
		return nil, fmt.Errorf("assets: %s: %w", ref, ErrNoMeshes)
	}
	m := &Model{Ref: ref, Meshes: make([]Mesh, 0, len(f.Meshes))}
	for i, mf := range f.Meshes {
		mesh := Mesh{
			Ref:         fmt.Sprintf("%s#%d", ref, i),
			MaterialRef: mf.Material,
			Vertices:    make([]mgl32.Vec3, len(mf.Vertices)),
			Indices:     mf.Indices,
		}
		if mf.Name != "" {
			mesh.Ref = ref + "#" + mf.Name
		}
		for j, v := range mf.Vertices {
			mesh.Vertices[j] = mgl32.Vec3(v)
		}
		if err := mesh.Collision().Validate(); err != nil {
			return nil, fmt.Errorf("assets: %s mesh %d: %w", ref, i, err)
		}
		m.Meshes = append(m.Meshes, mesh)
	}
	return m, nil
}

func cleanAssetPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "./"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		s = after
	}
	return s
}
