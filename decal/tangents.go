// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decal

import "cogentcore.org/decal/math32"

// ComputeNormals sets Normals to the area weighted average of the
// face normals around each vertex. Vertices not used by any
// triangle get a zero normal.
func (sm *SourceMesh) ComputeNormals() {
	sm.Normals = make([]math32.Vector3, len(sm.Positions))
	idx := sm.Indices()
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := idx[i], idx[i+1], idx[i+2]
		pa, pb, pc := sm.Positions[a], sm.Positions[b], sm.Positions[c]
		// cross product length is twice the area: this is the weighting
		fn := pc.Sub(pb).Cross(pa.Sub(pb))
		sm.Normals[a].SetAdd(fn)
		sm.Normals[b].SetAdd(fn)
		sm.Normals[c].SetAdd(fn)
	}
	for i, n := range sm.Normals {
		sm.Normals[i] = n.Normal()
	}
}

// ComputeTangents sets Tangents from the UV layout, as needed for
// tangent space normal mapping. The mesh must have Normals and UVs;
// otherwise Tangents are left unchanged. Triangles with a degenerate
// UV area are skipped, and vertices left without a tangent get an
// arbitrary one perpendicular to the normal. W holds the handedness.
func (sm *SourceMesh) ComputeTangents() {
	np := len(sm.Positions)
	if len(sm.Normals) != np || len(sm.UVs) != np {
		return
	}
	tan := make([]math32.Vector3, np)
	bit := make([]math32.Vector3, np)
	idx := sm.Indices()
	for i := 0; i+2 < len(idx); i += 3 {
		i0, i1, i2 := idx[i], idx[i+1], idx[i+2]
		e1 := sm.Positions[i1].Sub(sm.Positions[i0])
		e2 := sm.Positions[i2].Sub(sm.Positions[i0])
		d1 := sm.UVs[i1].Sub(sm.UVs[i0])
		d2 := sm.UVs[i2].Sub(sm.UVs[i0])

		denom := d1.Cross(d2)
		if denom == 0 {
			continue
		}
		r := 1 / denom
		t := e1.MulScalar(d2.Y * r).Sub(e2.MulScalar(d1.Y * r))
		b := e2.MulScalar(d1.X * r).Sub(e1.MulScalar(d2.X * r))
		for _, vi := range [3]uint32{i0, i1, i2} {
			tan[vi].SetAdd(t)
			bit[vi].SetAdd(b)
		}
	}

	sm.Tangents = make([]math32.Vector4, np)
	for i := range sm.Tangents {
		n := sm.Normals[i]
		// Gram-Schmidt orthogonalize
		t := tan[i].Sub(n.MulScalar(n.Dot(tan[i])))
		if t.LengthSquared() < 1e-12 {
			if math32.Abs(n.X) < 0.9 {
				t = math32.Vec3(1, 0, 0).Sub(n.MulScalar(n.X))
			} else {
				t = math32.Vec3(0, 1, 0).Sub(n.MulScalar(n.Y))
			}
		}
		t = t.Normal()
		w := float32(1)
		if n.Cross(t).Dot(bit[i]) < 0 {
			w = -1
		}
		sm.Tangents[i] = math32.Vector4FromVector3(t, w)
	}
}
