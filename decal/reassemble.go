// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decal

import "cogentcore.org/decal/math32"

// Reassemble flattens the given triangles into a new [Mesh]. Each
// triangle gets its own three vertices; the original UVs become the
// second texture channel, and the first channel is the projection UV
// from [ProjectionUV]. Positions are then moved by offset along their
// normals. The projection UVs are computed before the offset is applied.
func Reassemble(tris []Triangle, offset float32) *Mesh {
	ms := &Mesh{}
	ms.BBox.SetEmpty()
	if len(tris) == 0 {
		return ms
	}
	nv := 3 * len(tris)
	ms.Positions = make([]math32.Vector3, 0, nv)
	ms.Normals = make([]math32.Vector3, 0, nv)
	ms.Tangents = make([]math32.Vector4, 0, nv)
	ms.UV = make([]math32.Vector2, 0, nv)
	ms.UV2 = make([]math32.Vector2, 0, nv)
	ms.Indices = make([]uint32, 0, nv)
	for _, t := range tris {
		for _, v := range t.Vertices() {
			ms.UV = append(ms.UV, ProjectionUV(v.Position))
			pos := v.Position.Add(v.Normal.MulScalar(offset))
			ms.BBox.ExpandByPoint(pos)
			ms.Indices = append(ms.Indices, uint32(len(ms.Positions)))
			ms.Positions = append(ms.Positions, pos)
			ms.Normals = append(ms.Normals, v.Normal)
			ms.Tangents = append(ms.Tangents, v.Tangent)
			ms.UV2 = append(ms.UV2, v.UV)
		}
	}
	return ms
}

// ProjectionUV returns the planar projection texture coordinate of a
// decal-local position along the Z axis, mapping X,Y in [-1,1] to [0,1].
func ProjectionUV(pos math32.Vector3) math32.Vector2 {
	return math32.Vec2(pos.X*0.5+0.5, pos.Y*0.5+0.5)
}
