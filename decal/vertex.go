// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decal

import "cogentcore.org/decal/math32"

// Vertex is one triangle corner with its full attribute set.
// Within the clipping pipeline all attributes are in decal-local space.
type Vertex struct {

	// Position is the vertex position.
	Position math32.Vector3

	// Normal is the vertex normal direction. It is not required to be
	// unit length, and interpolation does not renormalize it.
	Normal math32.Vector3

	// Tangent is the xyz tangent direction with the handedness
	// sign of the bitangent in W.
	Tangent math32.Vector4

	// UV is the original texture coordinate of the source mesh.
	UV math32.Vector2
}

// Lerp returns the vertex whose attributes are each the linear
// interpolation between a and b by the same factor d:
// d = 0 gives a and d = 1 gives b. d is not restricted to [0,1].
func Lerp(a, b Vertex, d float32) Vertex {
	return Vertex{
		Position: a.Position.Lerp(b.Position, d),
		Normal:   a.Normal.Lerp(b.Normal, d),
		Tangent:  a.Tangent.Lerp(b.Tangent, d),
		UV:       a.UV.Lerp(b.UV, d),
	}
}

// Triangle is an ordered triple of vertices. The order defines
// the winding, which every clip operation preserves.
type Triangle struct {
	A, B, C Vertex
}

// Vertices returns the three vertices in winding order.
func (t Triangle) Vertices() [3]Vertex {
	return [3]Vertex{t.A, t.B, t.C}
}

// Positions returns the geometric triangle of the vertex positions.
func (t Triangle) Positions() math32.Triangle {
	return math32.NewTriangle(t.A.Position, t.B.Position, t.C.Position)
}

// Inside returns whether all three positions are within the
// unit cube [-1,1]^3, boundary included.
func (t Triangle) Inside() bool {
	return UnitCube.ContainsPoint(t.A.Position) &&
		UnitCube.ContainsPoint(t.B.Position) &&
		UnitCube.ContainsPoint(t.C.Position)
}

// UnitCube is the decal volume in decal-local space.
var UnitCube = math32.B3(-1, -1, -1, 1, 1, 1)
