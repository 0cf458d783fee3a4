// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decal

// Clipper clips triangles against the unit cube, one face at a time.
// It owns the two working sets that are swapped between faces, so that
// clipping many triangles reuses the same memory. The zero value is
// ready to use. A Clipper must not be used by multiple goroutines.
type Clipper struct {
	cur  []Triangle
	next []Triangle
}

// ClipToCube clips t against all six faces of the unit cube in
// [ClipAxes] order, and appends the surviving triangles to dst.
// A triangle entirely inside is appended unchanged.
func (cl *Clipper) ClipToCube(t Triangle, dst []Triangle) []Triangle {
	cl.cur = append(cl.cur[:0], t)
	for _, axis := range ClipAxes {
		cl.next = cl.next[:0]
		for _, tri := range cl.cur {
			cr := Clip(tri, axis)
			if cr.Unchanged {
				cl.next = append(cl.next, tri)
				continue
			}
			cl.next = append(cl.next, cr.Triangles()...)
		}
		cl.cur, cl.next = cl.next, cl.cur
		if len(cl.cur) == 0 {
			break
		}
	}
	return append(dst, cl.cur...)
}

// ClipToCube returns the parts of t inside the unit cube, as
// described in [Clipper.ClipToCube].
func ClipToCube(t Triangle) []Triangle {
	var cl Clipper
	return cl.ClipToCube(t, nil)
}
