// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decal

import (
	"fmt"
	"log/slog"

	"cogentcore.org/decal/base/errors"
	"cogentcore.org/decal/math32"
)

var (
	// ErrMissingSource is returned by [Project] when there is no
	// source mesh to project onto.
	ErrMissingSource = errors.New("decal: missing source mesh")

	// ErrSingularTransform is returned by [Project] when the decal
	// transform cannot be inverted, e.g. for a zero scale.
	ErrSingularTransform = errors.New("decal: decal transform is not invertible")

	// ErrInvalidMesh is returned by [SourceMesh.Validate] and [Project]
	// for inconsistent source mesh data.
	ErrInvalidMesh = errors.New("decal: invalid source mesh")
)

// Options are the parameters of a projection.
type Options struct {

	// Offset is the distance by which each output vertex is moved
	// along its normal, to avoid z-fighting with the target surface.
	// It is typically small, e.g. 0 to 0.1.
	Offset float32

	// RemoveBackfaces removes the triangles whose summed vertex normal
	// points away from the projection direction.
	RemoveBackfaces bool
}

// Project projects the decal volume onto the source mesh and returns the
// part of its surface inside the volume, clipped at the faces of the
// volume and reassembled into a [Mesh] in decal-local space.
// srcToWorld is the object-to-world transform of the source mesh and
// decalToWorld the one of the decal; nil means the identity.
// The source mesh is only read. The result is empty, not nil, if no
// geometry is inside the volume.
func Project(src *SourceMesh, srcToWorld, decalToWorld *math32.Matrix4, opts Options) (*Mesh, error) {
	if src == nil {
		return nil, ErrMissingSource
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	xf, err := SourceToDecal(srcToWorld, decalToWorld)
	if err != nil {
		return nil, err
	}

	var cl Clipper
	var st Stats
	var tris []Triangle
	idx := src.Indices()
	for i := 0; i+2 < len(idx); i += 3 {
		st.Source++
		t := Triangle{src.vertex(idx[i], xf), src.vertex(idx[i+1], xf), src.vertex(idx[i+2], xf)}
		switch {
		case Rejected(t):
			st.Rejected++
		case opts.RemoveBackfaces && IsBackface(t):
			st.Backfaces++
		case t.Inside():
			st.PassThrough++
			tris = append(tris, t)
		default:
			st.Clipped++
			tris = cl.ClipToCube(t, tris)
		}
	}

	for _, t := range tris {
		if t.Positions().Area() == 0 {
			st.Degenerate++
		}
	}
	ms := Reassemble(tris, opts.Offset)
	st.Output = ms.NumTriangles()
	ms.Stats = st
	slog.Debug("decal: projected", "source", src.Name, "triangles", st.Source, "rejected", st.Rejected,
		"backfaces", st.Backfaces, "passThrough", st.PassThrough, "clipped", st.Clipped, "output", st.Output,
		"degenerate", st.Degenerate)
	return ms, nil
}

// SourceToDecal returns the transform from source object space to
// decal-local space: the inverse of decalToWorld times srcToWorld.
// nil matrices are the identity.
func SourceToDecal(srcToWorld, decalToWorld *math32.Matrix4) (*math32.Matrix4, error) {
	if srcToWorld == nil {
		srcToWorld = math32.Identity4()
	}
	if decalToWorld == nil {
		return srcToWorld, nil
	}
	worldToDecal, err := decalToWorld.Inverse()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSingularTransform, err)
	}
	return worldToDecal.Mul(srcToWorld), nil
}

// Rejected returns whether all three vertices of t are outside the
// same face of the unit cube, so that nothing of t can be inside.
func Rejected(t Triangle) bool {
	for _, axis := range ClipAxes {
		if axis.Outside(t.A.Position) && axis.Outside(t.B.Position) && axis.Outside(t.C.Position) {
			return true
		}
	}
	return false
}

// IsBackface returns whether the sum of the vertex normals of t points
// along the +Z projection axis of the decal, i.e. away from the
// projector, which looks along +Z.
func IsBackface(t Triangle) bool {
	return t.A.Normal.Z+t.B.Normal.Z+t.C.Normal.Z > 0
}
