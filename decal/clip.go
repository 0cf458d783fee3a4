// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decal

import "cogentcore.org/decal/math32"

// ClipAxis is one of the six unit directions ±X, ±Y, ±Z.
// Each one defines the half-space of points whose coordinate
// along the axis is at most 1; points beyond 1 are outside.
type ClipAxis int32

const (
	NegX ClipAxis = iota
	PosY
	PosX
	NegY
	NegZ
	PosZ
)

// ClipAxes are all of the clip axes in the order in which
// [Clipper.ClipToCube] applies them.
var ClipAxes = [6]ClipAxis{NegX, PosY, PosX, NegY, NegZ, PosZ}

// Dim returns the coordinate dimension of the axis.
func (ax ClipAxis) Dim() math32.Dims {
	switch ax {
	case NegX, PosX:
		return math32.X
	case NegY, PosY:
		return math32.Y
	default:
		return math32.Z
	}
}

// Sign returns -1 for the negative axes and 1 for the positive ones.
func (ax ClipAxis) Sign() float32 {
	switch ax {
	case NegX, NegY, NegZ:
		return -1
	default:
		return 1
	}
}

// Vector returns the unit direction of the axis.
func (ax ClipAxis) Vector() math32.Vector3 {
	v := math32.Vector3{}
	v.SetDim(ax.Dim(), ax.Sign())
	return v
}

// Distance returns the coordinate of p along the axis,
// which is the dot product of p with [ClipAxis.Vector].
func (ax ClipAxis) Distance(p math32.Vector3) float32 {
	return ax.Sign() * p.Dim(ax.Dim())
}

// Outside returns whether p is strictly beyond the clip plane.
// Points exactly on the plane are inside.
func (ax ClipAxis) Outside(p math32.Vector3) bool {
	return ax.Distance(p) > 1
}

func (ax ClipAxis) String() string {
	switch ax {
	case NegX:
		return "-X"
	case PosY:
		return "+Y"
	case PosX:
		return "+X"
	case NegY:
		return "-Y"
	case NegZ:
		return "-Z"
	case PosZ:
		return "+Z"
	}
	return "ClipAxis(?)"
}

// ClipResult is the result of clipping one triangle against one axis.
// If Unchanged is set the triangle passes through as it was; otherwise
// it is replaced by the N triangles in Tris, where N == 0 means the
// triangle was entirely outside.
type ClipResult struct {
	Unchanged bool
	N         int
	Tris      [2]Triangle
}

// Triangles returns the replacement triangles.
func (cr *ClipResult) Triangles() []Triangle {
	return cr.Tris[:cr.N]
}

// Clip clips triangle t against the half-space of the given axis.
// A triangle with one vertex inside is replaced by one triangle, and a
// triangle with one vertex outside by the two triangles tiling the
// remaining quadrilateral. Winding is preserved in both cases.
func Clip(t Triangle, axis ClipAxis) ClipResult {
	fa := axis.Distance(t.A.Position)
	fb := axis.Distance(t.B.Position)
	fc := axis.Distance(t.C.Position)
	oa, ob, oc := fa > 1, fb > 1, fc > 1

	nout := 0
	for _, o := range [3]bool{oa, ob, oc} {
		if o {
			nout++
		}
	}

	switch nout {
	case 0:
		return ClipResult{Unchanged: true}
	case 3:
		return ClipResult{}
	case 2:
		switch {
		case !oa:
			return clipOneInside(axis, t.A, t.B, t.C, fa, fb, fc)
		case !ob:
			return clipOneInside(axis, t.B, t.C, t.A, fb, fc, fa)
		default:
			return clipOneInside(axis, t.C, t.A, t.B, fc, fa, fb)
		}
	default:
		switch {
		case oa:
			return clipOneOutside(axis, t.A, t.B, t.C, fa, fb, fc)
		case ob:
			return clipOneOutside(axis, t.B, t.C, t.A, fb, fc, fa)
		default:
			return clipOneOutside(axis, t.C, t.A, t.B, fc, fa, fb)
		}
	}
}

// clipOneInside handles the inside vertex i followed by the outside
// vertices o1, o2 in winding order.
func clipOneInside(axis ClipAxis, i, o1, o2 Vertex, fi, fo1, fo2 float32) ClipResult {
	p1 := onPlane(axis, Lerp(i, o1, (1-fi)/(fo1-fi)))
	p2 := onPlane(axis, Lerp(i, o2, (1-fi)/(fo2-fi)))
	cr := ClipResult{N: 1}
	cr.Tris[0] = Triangle{i, p1, p2}
	return cr
}

// clipOneOutside handles the outside vertex o followed by the inside
// vertices i1, i2 in winding order. The two result triangles share
// the edge i1-q2.
func clipOneOutside(axis ClipAxis, o, i1, i2 Vertex, fo, fi1, fi2 float32) ClipResult {
	q1 := onPlane(axis, Lerp(o, i1, (1-fo)/(fi1-fo)))
	q2 := onPlane(axis, Lerp(o, i2, (1-fo)/(fi2-fo)))
	cr := ClipResult{N: 2}
	cr.Tris[0] = Triangle{i1, i2, q2}
	cr.Tris[1] = Triangle{i1, q2, q1}
	return cr
}

// onPlane sets the coordinate of v along the axis to exactly the
// clip plane, removing rounding error from the interpolation.
func onPlane(axis ClipAxis, v Vertex) Vertex {
	v.Position.SetDim(axis.Dim(), axis.Sign())
	return v
}
