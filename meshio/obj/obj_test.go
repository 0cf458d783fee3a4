// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/decal/decal"
	"cogentcore.org/decal/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadObj = `# quad facing -Z
mtllib quad.mtl
v -2 -2 0
v 2 -2 0
v 2 2 0
v -2 2 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 -1
o quad
usemtl red
s 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestDecodeQuad(t *testing.T) {
	dec := NewDecoder()
	require.NoError(t, dec.Decode(strings.NewReader(quadObj)))
	require.Len(t, dec.Objects, 1)
	fc := dec.Objects[0].Faces[0]
	assert.Equal(t, []int{0, 1, 2, 3}, fc.Vertices)
	assert.Equal(t, []int{0, 0, 0, 0}, fc.Normals)
	assert.Equal(t, "red", fc.Material)
	assert.True(t, fc.Smooth)
	assert.Equal(t, []string{"line 2: field not supported: mtllib"}, dec.Warnings)

	sm, err := dec.SourceMesh("quad")
	require.NoError(t, err)
	require.NoError(t, sm.Validate())
	assert.Equal(t, "quad", sm.Name)
	assert.Len(t, sm.Positions, 4)
	require.Len(t, sm.SubMeshes, 1)
	assert.Equal(t, "quad_0", sm.SubMeshes[0].Name)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, sm.SubMeshes[0].Indices)
	assert.Equal(t, math32.Vec2(1, 1), sm.UVs[2])
	for i := range sm.Positions {
		assert.Equal(t, math32.Vec3(0, 0, -1), sm.Normals[i])
	}
	require.Len(t, sm.Tangents, 4)
	assert.InDelta(t, 1, sm.Tangents[0].X, 1.0e-6)
}

func TestDecodeObjects(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
o second
v 0 0 1
v 1 0 1
v 0 1 1
usemtl a
f 4 5 6
usemtl b
f 4 6 5
g empty
`
	dec := NewDecoder()
	require.NoError(t, dec.Decode(strings.NewReader(src)))
	require.Len(t, dec.Objects, 3)
	assert.Equal(t, "unnamed4", dec.Objects[0].Name)
	assert.Equal(t, []int{0, 1, 2}, dec.Objects[0].Faces[0].Vertices)
	assert.Equal(t, []int{-1, -1, -1}, dec.Objects[0].Faces[0].UVs)

	sm, err := dec.SourceMesh("objects")
	require.NoError(t, err)
	require.Len(t, sm.SubMeshes, 3)
	assert.Equal(t, []string{"unnamed4_0", "second_1", "second_2"},
		[]string{sm.SubMeshes[0].Name, sm.SubMeshes[1].Name, sm.SubMeshes[2].Name})
	// no smoothing: every face has vertices of its own
	assert.Equal(t, []uint32{0, 1, 2}, sm.SubMeshes[0].Indices)
	assert.Equal(t, []uint32{3, 4, 5}, sm.SubMeshes[1].Indices)
	assert.Equal(t, []uint32{6, 7, 8}, sm.SubMeshes[2].Indices)
	assert.Equal(t, 3, sm.NumTriangles())

	// no UVs in the file, normals computed from the faces
	assert.Nil(t, sm.UVs)
	assert.Nil(t, sm.Tangents)
	require.Len(t, sm.Normals, 9)
	assert.Equal(t, math32.Vec3(0, 0, 1), sm.Normals[0])
	assert.Equal(t, math32.Vec3(0, 0, 1), sm.Normals[4])
	assert.Equal(t, math32.Vec3(0, 0, -1), sm.Normals[7])
}

func TestDecodeSmooth(t *testing.T) {
	// two faces folded at a right angle along the x axis
	const fold = `v 0 0 0
v 1 0 0
v 1 1 0
v 0 0 1
%s
f 1 2 3
f 1 4 2
`
	flat, err := Decode(strings.NewReader(fmt.Sprintf(fold, "s off")), "flat")
	require.NoError(t, err)
	assert.Len(t, flat.Positions, 6)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, flat.Indices())
	for i := 0; i < 3; i++ {
		assert.Equal(t, math32.Vec3(0, 0, 1), flat.Normals[i])
		assert.Equal(t, math32.Vec3(0, 1, 0), flat.Normals[3+i])
	}

	smooth, err := Decode(strings.NewReader(fmt.Sprintf(fold, "s 1")), "smooth")
	require.NoError(t, err)
	assert.Len(t, smooth.Positions, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 3, 1}, smooth.Indices())
	// the shared edge averages both faces
	for _, i := range []int{0, 1} {
		n := smooth.Normals[i]
		assert.InDelta(t, 0, n.X, 1.0e-6)
		assert.InDelta(t, 1/math32.Sqrt(2), n.Y, 1.0e-6)
		assert.InDelta(t, 1/math32.Sqrt(2), n.Z, 1.0e-6)
	}
	assert.Equal(t, math32.Vec3(0, 0, 1), smooth.Normals[2])
	assert.Equal(t, math32.Vec3(0, 1, 0), smooth.Normals[3])

	// given normals are shared even without smoothing
	withNormals, err := Decode(strings.NewReader(quadObj+"s off\nf 1/1/1 3/3/1 4/4/1\n"), "quad")
	require.NoError(t, err)
	assert.Len(t, withNormals.Positions, 4)
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"v 1 2\n", "line 1: less than 3 values"},
		{"v 0 0 0\nv 1 x 0\n", "line 2"},
		{"v 0 0 0\n\nf 1 1\n", "line 3: face line with less than 3 fields"},
		{"v 0 0 0\nf 1 1 0\n", "face vertex index value equal to 0"},
		{"v 0 0 0\nf 1/0 1 1\n", "face uv index value equal to 0"},
		{"o\n", "object line (o) with no fields"},
		{"s maybe\n", "'s' with invalid value"},
		{"v 0 0 0\nf 1 2 3\n", "vertex index 2 out of range"},
		{"v 0 0 0\nf 1//1 1//1 1//1\n", "normal index 1 out of range"},
		{"v 0 0 0\nvt 0 0\nf 1/2 1/1 1/1\n", "uv index 2 out of range"},
	}
	for _, c := range cases {
		_, err := Decode(strings.NewReader(c.src), "bad")
		assert.ErrorIs(t, err, ErrFormat, c.src)
		assert.ErrorContains(t, err, c.want, c.src)
	}
}

func TestEncode(t *testing.T) {
	ms := &decal.Mesh{
		Positions: []math32.Vector3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: -0.5}, {X: 0, Y: 1, Z: 0}},
		Normals:   []math32.Vector3{{X: 0, Y: 0, Z: -1}, {X: 0, Y: 0, Z: -1}, {X: 0, Y: 0, Z: -1}},
		UV:        []math32.Vector2{{X: 0.5, Y: 0.5}, {X: 1, Y: 0.5}, {X: 0.5, Y: 1}},
		Indices:   []uint32{0, 1, 2},
	}
	var b bytes.Buffer
	require.NoError(t, Encode(&b, ms, "logo"))
	want := `# decal mesh
o logo
v 0 0 0
v 1 0 -0.5
v 0 1 0
vt 0.5 0.5
vt 1 0.5
vt 0.5 1
vn 0 0 -1
vn 0 0 -1
vn 0 0 -1
f 1/1/1 2/2/2 3/3/3
`
	assert.Equal(t, want, b.String())

	negZero := float32(0)
	negZero = -negZero
	assert.Equal(t, "0", formatFloat(negZero))
	assert.Equal(t, "0.1", formatFloat(0.1))
}

func TestRoundTrip(t *testing.T) {
	src, err := Decode(strings.NewReader(quadObj), "quad")
	require.NoError(t, err)
	bb := Bounds(src)
	assert.Equal(t, math32.B3(-2, -2, 0, 2, 2, 0), bb)

	ps := decal.NewPose()
	ps.SetEulerRotation(0, 0, 30)
	ms, err := decal.Project(src, nil, ps.Matrix(), decal.Options{})
	require.NoError(t, err)
	require.False(t, ms.IsEmpty())

	fn := filepath.Join(t.TempDir(), "decal.obj")
	require.NoError(t, Save(fn, ms, "decal"))
	back, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, "decal", back.Name)
	assert.Equal(t, ms.Positions, back.Positions)
	assert.Equal(t, ms.Normals, back.Normals)
	assert.Equal(t, ms.UV, back.UVs)
	assert.Equal(t, ms.Indices, back.Indices())
}
