package shader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/scenegl/internal/engine/shader/shaders"
)

// Program names. A program named n is stored on disk as n.vert and n.frag.
const (
	MeshProgram   = "mesh"
	MarkerProgram = "marker"
)

// Source is the GLSL text of one program.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

// Embedded returns the built-in source for a program name.
func Embedded(name string) (Source, error) {
	switch name {
	case MeshProgram:
		return Source{Name: name, Vertex: shaders.MeshVertexShader, Fragment: shaders.MeshFragmentShader}, nil
	case MarkerProgram:
		return Source{Name: name, Vertex: shaders.MarkerVertexShader, Fragment: shaders.MarkerFragmentShader}, nil
	default:
		return Source{}, fmt.Errorf("unknown shader program %q", name)
	}
}

// Load reads <dir>/<name>.vert and <dir>/<name>.frag. An empty dir selects
// the embedded sources.
func Load(dir, name string) (Source, error) {
	if dir == "" {
		return Embedded(name)
	}

	vert, err := os.ReadFile(filepath.Join(dir, name+".vert"))
	if err != nil {
		return Source{}, fmt.Errorf("reading %s vertex shader: %w", name, err)
	}
	frag, err := os.ReadFile(filepath.Join(dir, name+".frag"))
	if err != nil {
		return Source{}, fmt.Errorf("reading %s fragment shader: %w", name, err)
	}
	return Source{Name: name, Vertex: string(vert), Fragment: string(frag)}, nil
}

// Library holds the sources for every program the engine builds.
type Library struct {
	Mesh   Source
	Marker Source
}

// LoadLibrary loads all programs from dir, or the embedded set when dir is
// empty.
func LoadLibrary(dir string) (Library, error) {
	mesh, err := Load(dir, MeshProgram)
	if err != nil {
		return Library{}, err
	}
	marker, err := Load(dir, MarkerProgram)
	if err != nil {
		return Library{}, err
	}
	return Library{Mesh: mesh, Marker: marker}, nil
}

// DefaultLibrary returns the embedded programs.
func DefaultLibrary() Library {
	mesh, _ := Embedded(MeshProgram)
	marker, _ := Embedded(MarkerProgram)
	return Library{Mesh: mesh, Marker: marker}
}
