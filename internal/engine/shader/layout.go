package shader

// Names shared with the GLSL sources. Renaming one side without the other
// breaks program construction with a LocationNotFoundError.
const (
	AttrPosition = "vertexPosition"
	AttrColor    = "vertexColor"
	AttrTexture  = "vertexTexture"
	AttrNormal   = "vertexNormal"

	UniformModel          = "modelMatrix"
	UniformProjectionView = "projectionViewMatrix"
	UniformNormalMatrix   = "normalMatrix"
	UniformSampler        = "textureSampler"
	UniformUseTexture     = "useTexture"
	UniformLightDirection = "lightDirection"
)

// MeshLayout holds every location of the lit mesh program.
type MeshLayout struct {
	Position uint32
	Color    uint32
	Texture  uint32
	Normal   uint32

	Model          int32
	ProjectionView int32
	NormalMatrix   int32
	Sampler        int32
	UseTexture     int32
	LightDirection int32
}

// ResolveMeshLayout looks up the full mesh interface, failing on the first
// missing name.
func ResolveMeshLayout(p *Program) (MeshLayout, error) {
	var l MeshLayout
	r := resolver{p: p}

	l.Position = r.attrib(AttrPosition)
	l.Color = r.attrib(AttrColor)
	l.Texture = r.attrib(AttrTexture)
	l.Normal = r.attrib(AttrNormal)

	l.Model = r.uniform(UniformModel)
	l.ProjectionView = r.uniform(UniformProjectionView)
	l.NormalMatrix = r.uniform(UniformNormalMatrix)
	l.Sampler = r.uniform(UniformSampler)
	l.UseTexture = r.uniform(UniformUseTexture)
	l.LightDirection = r.uniform(UniformLightDirection)

	return l, r.err
}

// MarkerLayout holds the locations of the unlit marker program.
type MarkerLayout struct {
	Position uint32
	Color    uint32

	Model          int32
	ProjectionView int32
}

// ResolveMarkerLayout looks up the marker interface.
func ResolveMarkerLayout(p *Program) (MarkerLayout, error) {
	var l MarkerLayout
	r := resolver{p: p}

	l.Position = r.attrib(AttrPosition)
	l.Color = r.attrib(AttrColor)
	l.Model = r.uniform(UniformModel)
	l.ProjectionView = r.uniform(UniformProjectionView)

	return l, r.err
}

// resolver stops at the first lookup error.
type resolver struct {
	p   *Program
	err error
}

func (r *resolver) attrib(name string) uint32 {
	if r.err != nil {
		return 0
	}
	loc, err := r.p.Attrib(name)
	r.err = err
	return loc
}

func (r *resolver) uniform(name string) int32 {
	if r.err != nil {
		return 0
	}
	loc, err := r.p.Uniform(name)
	r.err = err
	return loc
}
