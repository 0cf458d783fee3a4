// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decal

import (
	"errors"
	"testing"

	"cogentcore.org/decal/base/tolassert"
	"cogentcore.org/decal/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRenderer struct {
	meshes  []*Mesh
	visible []bool
	err     error
}

func (tr *testRenderer) SetMesh(ms *Mesh) error {
	if tr.err != nil {
		return tr.err
	}
	tr.meshes = append(tr.meshes, ms)
	return nil
}

func (tr *testRenderer) SetVisible(visible bool) {
	tr.visible = append(tr.visible, visible)
}

func TestDecalUpdate(t *testing.T) {
	target := &Target{Mesh: planeMesh(2, -1)}
	dc := NewDecal("logo")
	assert.Equal(t, NewPose(), dc.Pose)

	r := &testRenderer{}
	ms, err := dc.Update(target, r)
	require.NoError(t, err)
	require.False(t, ms.IsEmpty())
	assert.Equal(t, []*Mesh{ms}, r.meshes)
	assert.Equal(t, []bool{true}, r.visible)
	assert.Nil(t, dc.Mesh)

	dc.KeepAttributesSerialized = true
	ms, err = dc.Update(target, r)
	require.NoError(t, err)
	assert.Same(t, ms, dc.Mesh)
	assert.Len(t, r.meshes, 2)

	// no renderer is fine
	ms2, err := dc.Update(target, nil)
	require.NoError(t, err)
	assert.Equal(t, ms.Positions, ms2.Positions)
}

func TestDecalMissingTarget(t *testing.T) {
	dc := NewDecal("logo")
	dc.KeepAttributesSerialized = true
	prior := &Mesh{}
	dc.Mesh = prior

	r := &testRenderer{}
	for _, target := range []*Target{nil, {}} {
		ms, err := dc.Update(target, r)
		assert.NoError(t, err)
		assert.Nil(t, ms)
	}
	assert.Empty(t, r.meshes)
	assert.Empty(t, r.visible)
	assert.Same(t, prior, dc.Mesh)
}

func TestDecalEmpty(t *testing.T) {
	dc := NewDecal("logo")
	dc.Pose.Pos.Set(10, 0, 0)
	r := &testRenderer{}
	ms, err := dc.Update(&Target{Mesh: planeMesh(2, -1)}, r)
	require.NoError(t, err)
	assert.True(t, ms.IsEmpty())
	assert.Equal(t, []bool{false}, r.visible)
	assert.Len(t, r.meshes, 1)
}

func TestDecalErrors(t *testing.T) {
	dc := NewDecal("logo")
	dc.Pose.Scale.Set(1, 0, 1)
	dc.KeepAttributesSerialized = true
	r := &testRenderer{}
	_, err := dc.Update(&Target{Mesh: planeMesh(2, -1)}, r)
	assert.ErrorIs(t, err, ErrSingularTransform)
	assert.Empty(t, r.meshes)
	assert.Nil(t, dc.Mesh)

	errGPU := errors.New("out of buffers")
	dc = NewDecal("logo")
	dc.KeepAttributesSerialized = true
	r = &testRenderer{err: errGPU}
	ms, err := dc.Update(&Target{Mesh: planeMesh(2, -1)}, r)
	assert.ErrorIs(t, err, errGPU)
	assert.NotNil(t, ms)
	assert.Empty(t, r.visible)
	assert.Nil(t, dc.Mesh)
}

func TestDecalOptions(t *testing.T) {
	dc := NewDecal("logo")
	dc.Offset = 0.02
	dc.RemoveBackfaces = true
	assert.Equal(t, Options{Offset: 0.02, RemoveBackfaces: true}, dc.Options())

	// the target faces away from the projector
	r := &testRenderer{}
	ms, err := dc.Update(&Target{Mesh: planeMesh(2, 1)}, r)
	require.NoError(t, err)
	assert.True(t, ms.IsEmpty())
	assert.Equal(t, 2, ms.Stats.Backfaces)
}

func TestPose(t *testing.T) {
	var ps Pose
	assert.Equal(t, math32.Identity4(), ps.Matrix())
	// Matrix does not modify the pose
	assert.True(t, ps.Scale.IsNil())

	ps = NewPose()
	ps.SetEulerRotation(0, 0, 90)
	p := math32.Vec3(1, 0, 0).MulMatrix4(ps.Matrix())
	tolassert.EqualTol(t, 0, p.X, 1.0e-6)
	tolassert.EqualTol(t, 1, p.Y, 1.0e-6)

	ps.SetEulerRotation(90, 0, 0)
	p = math32.Vec3(0, 1, 0).MulMatrix4(ps.Matrix())
	tolassert.EqualTol(t, 0, p.Y, 1.0e-6)
	tolassert.EqualTol(t, 1, p.Z, 1.0e-6)

	ps = NewPose()
	ps.Pos.Set(1, 2, 3)
	ps.Scale.Set(2, 2, 2)
	assert.Equal(t, math32.Vec3(3, 2, 1), math32.Vec3(1, 0, -1).MulMatrix4(ps.Matrix()))
}
