// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/decal/base/tolassert"
	"cogentcore.org/decal/math32"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlConfig = `
name = "logo"
source = "wall.obj"
offset = 0.01
remove_backfaces = false

[decal]
pos = {x = 1, y = 2, z = 3}
rotation = {z = 90}

[target]
scale = {x = 2, y = 2, z = 2}
`

const yamlConfig = `
name: logo
source: wall.obj
uv_image: logo.png
uv_image_size: 256
uv_image_padding: 4
keep_attributes_serialized: true
decal:
  pos: {x: 1, y: 2, z: 3}
  scale: {x: 0.5, y: 0.5, z: 4}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(content), 0666))
	return fn
}

func TestDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, "decal", cfg.Name)
	assert.Equal(t, "decal.obj", cfg.Output)
	assert.Equal(t, 512, cfg.UVImageSize)
	assert.True(t, cfg.RemoveBackfaces)
	assert.Equal(t, Vector{1, 1, 1}, cfg.Decal.Scale)
	assert.Equal(t, Vector{1, 1, 1}, cfg.Target.Scale)
	assert.ErrorContains(t, cfg.Validate(), "no source mesh file")
}

func TestOpenTOML(t *testing.T) {
	cfg, err := Open(writeFile(t, "job.toml", tomlConfig))
	require.NoError(t, err)
	assert.Equal(t, "logo", cfg.Name)
	assert.Equal(t, "wall.obj", cfg.Source)
	assert.Equal(t, "decal.obj", cfg.Output)
	assert.Equal(t, float32(0.01), cfg.Offset)
	assert.False(t, cfg.RemoveBackfaces)
	assert.Equal(t, Vector{1, 2, 3}, cfg.Decal.Pos)
	assert.Equal(t, Vector{0, 0, 90}, cfg.Decal.Rotation)
	// not in the file
	assert.Equal(t, Vector{1, 1, 1}, cfg.Decal.Scale)
	assert.Equal(t, Vector{2, 2, 2}, cfg.Target.Scale)
	assert.NoError(t, cfg.Validate())

	dc := cfg.NewDecal()
	assert.Equal(t, "logo", dc.Name)
	assert.Equal(t, float32(0.01), dc.Offset)
	assert.False(t, dc.RemoveBackfaces)
	p := math32.Vec3(1, 0, 0).MulMatrix4(dc.Pose.Matrix())
	tolassert.EqualTol(t, 1, p.X, 1.0e-6)
	tolassert.EqualTol(t, 3, p.Y, 1.0e-6)
	tolassert.EqualTol(t, 3, p.Z, 1.0e-6)

	tp := cfg.Target.Pose()
	assert.Equal(t, math32.Vec3(2, 2, 2), tp.Scale)
	assert.Equal(t, math32.QuatIdentity(), tp.Quat)
}

func TestOpenYAML(t *testing.T) {
	for _, ext := range []string{"yaml", "YML"} {
		cfg, err := Open(writeFile(t, "job."+ext, yamlConfig))
		require.NoError(t, err)
		assert.Equal(t, "logo", cfg.Name)
		assert.Equal(t, "logo.png", cfg.UVImage)
		assert.Equal(t, 256, cfg.UVImageSize)
		assert.Equal(t, 4, cfg.UVImagePadding)
		assert.True(t, cfg.KeepAttributesSerialized)
		assert.True(t, cfg.RemoveBackfaces)
		assert.Equal(t, Vector{0.5, 0.5, 4}, cfg.Decal.Scale)
		assert.True(t, cfg.NewDecal().KeepAttributesSerialized)
	}

	cfg, err := Open(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(writeFile(t, "job.json", "{}"))
	assert.ErrorIs(t, err, ErrFormat)

	_, err = Open(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Open(writeFile(t, "bad.toml", "offset = \"far\"\n"))
	assert.ErrorContains(t, err, "bad.toml")

	cfg := New()
	cfg.Source = "wall.obj"
	cfg.Output = ""
	cfg.UVImage = "uv.png"
	cfg.UVImageSize = 0
	err = cfg.Validate()
	assert.ErrorContains(t, err, "no output file")
	assert.ErrorContains(t, err, "invalid uv image size 0")
	cfg.UVImagePadding = -1
	assert.ErrorContains(t, cfg.Validate(), "invalid uv image padding -1")
}

func TestExpandPaths(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)
	cfg := New()
	cfg.Source = "~/meshes/wall.obj"
	cfg.Output = "out/decal.obj"
	require.NoError(t, cfg.ExpandPaths())
	assert.Equal(t, filepath.Join(home, "meshes", "wall.obj"), cfg.Source)
	assert.Equal(t, "out/decal.obj", cfg.Output)
	assert.Equal(t, "", cfg.UVImage)

	cfg.UVImage = "~other/uv.png"
	assert.Error(t, cfg.ExpandPaths())
}

func TestSave(t *testing.T) {
	cfg := New()
	cfg.Source = "wall.obj"
	cfg.Decal.Pos = Vector{0, 1, 0}
	cfg.Decal.Rotation = Vector{45, 0, 0}
	dir := t.TempDir()
	for _, name := range []string{"job.toml", "job.yaml"} {
		fn := filepath.Join(dir, name)
		require.NoError(t, cfg.Save(fn))
		back, err := Open(fn)
		require.NoError(t, err)
		assert.Equal(t, cfg, back, name)
	}
	assert.ErrorIs(t, cfg.Save(filepath.Join(dir, "job.ini")), ErrFormat)

	var b bytes.Buffer
	require.NoError(t, cfg.Write(&b, TOML))
	assert.True(t, strings.Contains(b.String(), "source = "), b.String())
	assert.Contains(t, b.String(), "wall.obj")
	assert.Contains(t, b.String(), "[decal.pos]")
	b.Reset()
	require.NoError(t, cfg.Write(&b, YAML))
	assert.Contains(t, b.String(), "source: wall.obj")
	assert.Contains(t, b.String(), "uv_image_size: 512")
}
