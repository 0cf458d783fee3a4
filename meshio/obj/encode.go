// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"cogentcore.org/decal/decal"
	"cogentcore.org/decal/math32"
)

// Encode writes the given decal mesh to w as one obj object with the
// given name. The texture coordinates are the projection UVs; obj has
// no second channel, so the original UVs are not written.
// Each vertex has its own v, vt, and vn entry.
func Encode(w io.Writer, ms *decal.Mesh, name string) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("# decal mesh\n")
	bw.WriteString("o " + name + "\n")
	for _, p := range ms.Positions {
		writeVec(bw, "v", p.X, p.Y, p.Z)
	}
	for _, uv := range ms.UV {
		writeVec(bw, "vt", uv.X, uv.Y)
	}
	for _, n := range ms.Normals {
		writeVec(bw, "vn", n.X, n.Y, n.Z)
	}
	for i := 0; i+2 < len(ms.Indices); i += 3 {
		bw.WriteString("f")
		for _, vi := range ms.Indices[i : i+3] {
			is := strconv.FormatUint(uint64(vi)+1, 10)
			bw.WriteString(" " + is + "/" + is + "/" + is)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Save writes the given decal mesh to the named obj file, as in [Encode].
func Save(filename string, ms *decal.Mesh, name string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	err = Encode(f, ms, name)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func writeVec(bw *bufio.Writer, ltype string, vals ...float32) {
	bw.WriteString(ltype)
	for _, v := range vals {
		bw.WriteByte(' ')
		bw.WriteString(formatFloat(v))
	}
	bw.WriteByte('\n')
}

// formatFloat formats v with the fewest digits that read back
// as exactly the same float32.
func formatFloat(v float32) string {
	if v == 0 {
		// no negative zero
		v = 0
	}
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// Bounds returns the bounding box of the positions of the given source mesh.
func Bounds(sm *decal.SourceMesh) math32.Box3 {
	bb := math32.B3Empty()
	for _, p := range sm.Positions {
		bb.ExpandByPoint(p)
	}
	return bb
}
