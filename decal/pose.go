// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decal

import "cogentcore.org/decal/math32"

// Pose places an object relative to the world with a position,
// a rotation, and a scale.
type Pose struct {

	// Pos is the position of the center of the object.
	Pos math32.Vector3

	// Scale is the scale of the object. For a decal it is the
	// half size of the volume along each axis.
	Scale math32.Vector3

	// Quat is the rotation of the object.
	Quat math32.Quat
}

// NewPose returns a pose at the origin with unit scale and no rotation.
func NewPose() Pose {
	return Pose{Scale: math32.Vector3Scalar(1), Quat: math32.QuatIdentity()}
}

// Defaults sets defaults only if current values are nil
func (ps *Pose) Defaults() {
	if ps.Scale.IsNil() {
		ps.Scale.Set(1, 1, 1)
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// SetEulerRotation sets the rotation in Euler angles (degrees).
func (ps *Pose) SetEulerRotation(x, y, z float32) {
	ps.Quat = math32.NewQuatEuler(math32.Vec3(math32.DegToRad(x), math32.DegToRad(y), math32.DegToRad(z)))
}

// Matrix returns the object-to-world transform of the pose. A nil
// scale or rotation is treated as its default, as in [Pose.Defaults].
func (ps Pose) Matrix() *math32.Matrix4 {
	ps.Defaults()
	return math32.Matrix4Transform(ps.Pos, ps.Quat, ps.Scale)
}
