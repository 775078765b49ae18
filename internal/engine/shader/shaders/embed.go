// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader is the vertex shader for lit meshes.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader is the fragment shader for lit meshes.
//
//go:embed mesh.frag
var MeshFragmentShader string

// MarkerVertexShader is the vertex shader for unlit vertex-colored markers.
//
//go:embed marker.vert
var MarkerVertexShader string

// MarkerFragmentShader is the fragment shader for unlit vertex-colored markers.
//
//go:embed marker.frag
var MarkerFragmentShader string
