// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package decal projects a decal volume, an oriented unit cube, onto
// the surface of a source mesh. It produces a new mesh containing only
// the source triangles inside the volume, clipped exactly at its six
// faces, with projection texture coordinates along the volume Z axis.
//
// [Project] is the pure projection function. [Decal] wraps it with the
// state that a host keeps for a decal object between recomputations.
package decal

import (
	"log/slog"
)

// Target is the object that a [Decal] is projected onto.
type Target struct {

	// Mesh is the source mesh of the target; nil if there is none.
	Mesh *SourceMesh

	// Pose is the object-to-world pose of the target.
	Pose Pose
}

// Renderer is the render resource of a decal, which
// receives the results of [Decal.Update].
type Renderer interface {

	// SetMesh replaces the rendered mesh with the given one.
	SetMesh(ms *Mesh) error

	// SetVisible sets whether the decal is rendered at all.
	SetVisible(visible bool)
}

// Decal is a decal object: the projection volume with its settings,
// and the last projected mesh if that is kept.
type Decal struct {

	// Name is the name of the decal, used for logging.
	Name string

	// Pose is the decal-to-world pose of the volume.
	Pose Pose

	// Offset is the distance by which output vertices are moved
	// along their normals. See [Options.Offset].
	Offset float32

	// RemoveBackfaces removes target triangles facing away from the projector.
	RemoveBackfaces bool

	// KeepAttributesSerialized keeps the projected mesh in [Decal.Mesh]
	// after it has been handed to the renderer, so that it can be saved
	// with the decal. Otherwise only the renderer holds it.
	KeepAttributesSerialized bool

	// Mesh is the last projected mesh, if KeepAttributesSerialized.
	Mesh *Mesh
}

// NewDecal returns a new decal with the given name and default pose.
func NewDecal(name string) *Decal {
	return &Decal{Name: name, Pose: NewPose()}
}

// Options returns the projection options of the decal.
func (dc *Decal) Options() Options {
	return Options{Offset: dc.Offset, RemoveBackfaces: dc.RemoveBackfaces}
}

// Update recomputes the decal mesh from scratch for the given target,
// and passes it to r (if non-nil), which is made invisible if the mesh
// is empty. If the target has no mesh nothing is changed, and Update
// returns a nil mesh and no error.
func (dc *Decal) Update(target *Target, r Renderer) (*Mesh, error) {
	if target == nil || target.Mesh == nil {
		slog.Debug("decal: no target mesh, keeping previous output", "decal", dc.Name)
		return nil, nil
	}
	ms, err := Project(target.Mesh, target.Pose.Matrix(), dc.Pose.Matrix(), dc.Options())
	if err != nil {
		return nil, err
	}
	if r != nil {
		if err := r.SetMesh(ms); err != nil {
			return ms, err
		}
		r.SetVisible(!ms.IsEmpty())
	}
	if dc.KeepAttributesSerialized {
		dc.Mesh = ms
	} else {
		dc.Mesh = nil
	}
	return ms, nil
}
