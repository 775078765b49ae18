package shader

import (
	"fmt"

	"github.com/Faultbox/scenegl/internal/engine/gfx"
)

// ShaderCompileError is returned when a stage fails to compile.
type ShaderCompileError struct {
	Stage gfx.Stage
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("%s shader: compile failed: %s", e.Stage, e.Log)
}

// ProgramLinkError is returned when the stages fail to link.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return fmt.Sprintf("program: link failed: %s", e.Log)
}

// LocationKind tells attributes and uniforms apart.
type LocationKind string

const (
	AttribLocation  LocationKind = "attribute"
	UniformLocation LocationKind = "uniform"
)

// LocationNotFoundError is returned when a named attribute or uniform is
// absent from the linked program (or optimized out by the compiler).
type LocationNotFoundError struct {
	Kind    LocationKind
	Name    string
	Program gfx.Handle
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in program %d", e.Kind, e.Name, e.Program)
}
