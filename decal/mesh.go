// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decal

import (
	"fmt"

	"cogentcore.org/decal/math32"
)

// SourceMesh is the indexed triangle mesh that a decal is projected
// onto, in its own object space. Normals, Tangents, and UVs are
// optional: each is either empty or has one entry per position,
// and missing attributes read as zero.
type SourceMesh struct {

	// Name is the name of the mesh, used for logging.
	Name string

	// Positions are the vertex positions.
	Positions []math32.Vector3

	// Normals are the vertex normals.
	Normals []math32.Vector3

	// Tangents are the vertex tangents, with handedness in W.
	Tangents []math32.Vector4

	// UVs are the vertex texture coordinates.
	UVs []math32.Vector2

	// SubMeshes are the triangle index ranges of the mesh,
	// for example one per material. They are merged into one
	// triangle list for projection.
	SubMeshes []SubMesh
}

// SubMesh is one range of triangle indexes into a [SourceMesh].
type SubMesh struct {
	Name    string
	Indices []uint32
}

// NumTriangles returns the total number of triangles of all sub meshes.
func (sm *SourceMesh) NumTriangles() int {
	n := 0
	for _, sub := range sm.SubMeshes {
		n += len(sub.Indices) / 3
	}
	return n
}

// Indices returns the triangle indexes of all sub meshes as one flat list.
func (sm *SourceMesh) Indices() []uint32 {
	if len(sm.SubMeshes) == 1 {
		return sm.SubMeshes[0].Indices
	}
	idx := make([]uint32, 0, 3*sm.NumTriangles())
	for _, sub := range sm.SubMeshes {
		idx = append(idx, sub.Indices...)
	}
	return idx
}

// Validate returns an error wrapping [ErrInvalidMesh] if any attribute
// array does not match the positions, or any index is out of range.
func (sm *SourceMesh) Validate() error {
	np := len(sm.Positions)
	if n := len(sm.Normals); n != 0 && n != np {
		return fmt.Errorf("%w: %q has %d normals for %d positions", ErrInvalidMesh, sm.Name, n, np)
	}
	if n := len(sm.Tangents); n != 0 && n != np {
		return fmt.Errorf("%w: %q has %d tangents for %d positions", ErrInvalidMesh, sm.Name, n, np)
	}
	if n := len(sm.UVs); n != 0 && n != np {
		return fmt.Errorf("%w: %q has %d uvs for %d positions", ErrInvalidMesh, sm.Name, n, np)
	}
	for _, sub := range sm.SubMeshes {
		if len(sub.Indices)%3 != 0 {
			return fmt.Errorf("%w: sub mesh %q of %q has %d indexes, not a multiple of 3", ErrInvalidMesh, sub.Name, sm.Name, len(sub.Indices))
		}
		for _, i := range sub.Indices {
			if int(i) >= np {
				return fmt.Errorf("%w: sub mesh %q of %q has index %d for %d positions", ErrInvalidMesh, sub.Name, sm.Name, i, np)
			}
		}
	}
	return nil
}

// vertex returns vertex i transformed by the given matrix:
// the position as a point, and the normal and tangent as directions.
func (sm *SourceMesh) vertex(i uint32, xf *math32.Matrix4) Vertex {
	v := Vertex{Position: sm.Positions[i].MulMatrix4(xf)}
	if len(sm.Normals) > 0 {
		v.Normal = sm.Normals[i].MulMatrix4AsVector(xf)
	}
	if len(sm.Tangents) > 0 {
		tn := sm.Tangents[i]
		v.Tangent = math32.Vector4FromVector3(tn.Vector3().MulMatrix4AsVector(xf), tn.W)
	}
	if len(sm.UVs) > 0 {
		v.UV = sm.UVs[i]
	}
	return v
}

// Mesh holds the output buffers of a projection: parallel per-vertex
// arrays and a sequential index list. Every triangle has its own three
// vertices, so vertex i belongs to triangle i/3.
type Mesh struct {

	// Positions are the decal-local vertex positions,
	// offset along their normals.
	Positions []math32.Vector3

	// Normals are the decal-local vertex normals.
	Normals []math32.Vector3

	// Tangents are the decal-local vertex tangents.
	Tangents []math32.Vector4

	// UV is the projection texture coordinate (first channel),
	// mapping the decal X,Y range [-1,1] onto [0,1].
	UV []math32.Vector2

	// UV2 is the original texture coordinate of the
	// source mesh (second channel).
	UV2 []math32.Vector2

	// Indices are the triangle indexes, 0..3N-1 for N triangles.
	Indices []uint32

	// BBox is the bounding box of Positions.
	BBox math32.Box3

	// Stats has the triangle counts of the projection
	// that produced this mesh.
	Stats Stats
}

// IsEmpty returns whether no geometry survived projection,
// in which case the mesh should not be rendered.
func (ms *Mesh) IsEmpty() bool {
	return ms == nil || len(ms.Indices) == 0
}

// NumTriangles returns the number of triangles in the mesh.
func (ms *Mesh) NumTriangles() int {
	return len(ms.Indices) / 3
}

// Stats are the triangle counts of one projection.
type Stats struct {

	// Source is the number of source mesh triangles.
	Source int

	// Rejected is the number of triangles entirely outside one face.
	Rejected int

	// Backfaces is the number of triangles removed as facing away.
	Backfaces int

	// PassThrough is the number of triangles entirely inside,
	// which are not clipped.
	PassThrough int

	// Clipped is the number of triangles run through the clipper.
	Clipped int

	// Output is the number of triangles in the resulting mesh.
	Output int

	// Degenerate is the number of output triangles with zero area,
	// which are kept.
	Degenerate int
}
