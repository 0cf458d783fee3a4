// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uvmap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/decal/base/tolassert"
	"cogentcore.org/decal/decal"
	"cogentcore.org/decal/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var square = []math32.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

func TestMask(t *testing.T) {
	mask := Mask(square, []uint32{0, 1, 2, 0, 2, 3}, 64)
	tolassert.EqualTol(t, 1, Coverage(mask), 1.0e-3)

	// lower right half, with V up
	mask = Mask(square, []uint32{0, 1, 2}, 64)
	tolassert.EqualTol(t, 0.5, Coverage(mask), 0.01)
	assert.Equal(t, uint8(255), mask.AlphaAt(62, 60).A)
	assert.Equal(t, uint8(0), mask.AlphaAt(1, 3).A)

	// the same triangle twice, in opposite windings
	mask = Mask(square, []uint32{0, 1, 2, 0, 2, 1}, 64)
	tolassert.EqualTol(t, 0.5, Coverage(mask), 0.01)
	assert.Equal(t, uint8(255), mask.AlphaAt(62, 60).A)

	mask = Mask(nil, nil, 16)
	assert.Equal(t, image.Rect(0, 0, 16, 16), mask.Rect)
	assert.Equal(t, float32(0), Coverage(mask))
	assert.Equal(t, float32(0), Coverage(&image.Alpha{}))
}

func TestPad(t *testing.T) {
	uvs := []math32.Vector2{{X: 0.25, Y: 0.25}, {X: 0.75, Y: 0.25}, {X: 0.75, Y: 0.75}, {X: 0.25, Y: 0.75}}
	mask := Mask(uvs, []uint32{0, 1, 2, 0, 2, 3}, 64)
	assert.Equal(t, uint8(0), mask.AlphaAt(15, 32).A)
	assert.Same(t, mask, Pad(mask, 0))

	padded := Pad(mask, 2)
	assert.Equal(t, mask.Rect, padded.Rect)
	assert.Equal(t, uint8(255), padded.AlphaAt(32, 32).A)
	assert.Equal(t, uint8(255), padded.AlphaAt(15, 32).A)
	assert.Equal(t, uint8(0), padded.AlphaAt(5, 32).A)
	assert.Greater(t, Coverage(padded), Coverage(mask))

	// the padded area is drawn by Render too
	img := Render(&decal.Mesh{UV: uvs, Indices: []uint32{0, 1, 2, 0, 2, 3}}, Options{Size: 64, Padding: 2, Background: color.Black})
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(15, 32))
}

func TestRender(t *testing.T) {
	ms := &decal.Mesh{
		UV:      square,
		UV2:     []math32.Vector2{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 0.5, Y: 0.5}, {X: 0, Y: 0.5}},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	red := color.RGBA{255, 0, 0, 255}
	img := Render(ms, Options{Size: 32, Fill: red, Background: color.Black})
	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Rect)
	assert.Equal(t, red, img.RGBAAt(5, 5))

	img = Render(ms, Options{Size: 32, Channel: Original, Fill: red, Background: color.Black})
	// original UVs cover the lower left quarter only
	assert.Equal(t, red, img.RGBAAt(5, 27))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(27, 5))

	var opts Options
	opts.Defaults()
	assert.Equal(t, 512, opts.Size)
	assert.Equal(t, color.White, opts.Fill)
}

func TestRenderProjection(t *testing.T) {
	h := float32(2)
	n := math32.Vec3(0, 0, -1)
	src := &decal.SourceMesh{
		Name:      "plane",
		Positions: []math32.Vector3{{X: -h, Y: -h, Z: 0}, {X: h, Y: -h, Z: 0}, {X: h, Y: h, Z: 0}, {X: -h, Y: h, Z: 0}},
		Normals:   []math32.Vector3{n, n, n, n},
		SubMeshes: []decal.SubMesh{{Indices: []uint32{0, 1, 2, 0, 2, 3}}},
	}
	// the decal volume hangs over the +X edge of the plane by half
	dc := decal.NewPose()
	dc.Pos.Set(2, 0, 0)
	ms, err := decal.Project(src, nil, dc.Matrix(), decal.Options{})
	require.NoError(t, err)
	mask := Mask(ms.UV, ms.Indices, 64)
	tolassert.EqualTol(t, 0.5, Coverage(mask), 1.0e-3)
	assert.Equal(t, uint8(255), mask.AlphaAt(10, 32).A)
	assert.Equal(t, uint8(0), mask.AlphaAt(54, 32).A)
}

func TestSave(t *testing.T) {
	ms := &decal.Mesh{UV: square, Indices: []uint32{0, 1, 2}}
	img := Render(ms, Options{Size: 16})

	var b bytes.Buffer
	require.NoError(t, Write(img, &b, PNG))
	back, err := png.Decode(&b)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), back.Bounds())

	dir := t.TempDir()
	for _, fn := range []string{"uv.png", "uv.BMP", "uv.tif"} {
		fn = filepath.Join(dir, fn)
		require.NoError(t, Save(img, fn))
		st, err := os.Stat(fn)
		require.NoError(t, err)
		assert.Positive(t, st.Size())
	}

	_, err = ExtToFormat("")
	assert.Error(t, err)
	f, err := ExtToFormat(".TIFF")
	assert.NoError(t, err)
	assert.Equal(t, TIFF, f)
	assert.Error(t, Save(img, filepath.Join(dir, "uv.gif")))
	assert.ErrorContains(t, Write(img, &b, None), `"none"`)
}
