// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uvmap renders the texture space layout of a projected decal
// mesh into an image, showing which part of the decal texture ends up
// on the target surface.
package uvmap

import (
	"image"
	"image/color"

	"cogentcore.org/decal/decal"
	"cogentcore.org/decal/math32"
	"github.com/anthonynsimon/bild/effect"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Channels are the texture coordinate channels of a [decal.Mesh].
type Channels int32

const (
	// Projection is the projection UV channel, [decal.Mesh.UV].
	Projection Channels = iota

	// Original is the original source mesh UV channel, [decal.Mesh.UV2].
	Original
)

// Options are the rendering parameters of [Render].
type Options struct {

	// Size is the width and height of the image in pixels.
	Size int

	// Channel is the texture coordinate channel to render.
	Channel Channels

	// Padding is the number of pixels by which the covered area is grown.
	Padding int

	// Fill is the color of the covered area.
	Fill color.Color

	// Background is the color of the uncovered area.
	Background color.Color
}

// Defaults sets default values for any unset options.
func (o *Options) Defaults() {
	if o.Size <= 0 {
		o.Size = 512
	}
	if o.Fill == nil {
		o.Fill = color.White
	}
	if o.Background == nil {
		o.Background = color.Transparent
	}
}

// UVs returns the texture coordinates of ms for the given channel.
func UVs(ms *decal.Mesh, ch Channels) []math32.Vector2 {
	if ch == Original {
		return ms.UV2
	}
	return ms.UV
}

// Render draws the triangles of ms in texture space with the Fill
// color over the Background color. The V axis points up, so V = 0
// is the bottom row of the image.
func Render(ms *decal.Mesh, opts Options) *image.RGBA {
	opts.Defaults()
	mask := Pad(Mask(UVs(ms, opts.Channel), ms.Indices, opts.Size), opts.Padding)
	img := image.NewRGBA(mask.Rect)
	draw.Draw(img, img.Rect, image.NewUniform(opts.Background), image.Point{}, draw.Src)
	draw.DrawMask(img, img.Rect, image.NewUniform(opts.Fill), image.Point{}, mask, image.Point{}, draw.Over)
	return img
}

// Mask rasterizes the indexed triangles with the given texture
// coordinates into an anti-aliased size x size alpha mask.
// Overlapping triangles are drawn once, regardless of their winding.
func Mask(uvs []math32.Vector2, indices []uint32, size int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	if len(indices) < 3 || size <= 0 {
		return mask
	}
	sz := float32(size)
	pt := func(uv math32.Vector2) math32.Vector2 {
		return math32.Vec2(uv.X*sz, (1-uv.Y)*sz)
	}
	ras := vector.NewRasterizer(size, size)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := pt(uvs[indices[i]]), pt(uvs[indices[i+1]]), pt(uvs[indices[i+2]])
		// same orientation for all, so that coverage only adds up
		if b.Sub(a).Cross(c.Sub(a)) < 0 {
			b, c = c, b
		}
		ras.MoveTo(a.X, a.Y)
		ras.LineTo(b.X, b.Y)
		ras.LineTo(c.X, c.Y)
		ras.ClosePath()
	}
	ras.Draw(mask, mask.Rect, image.Opaque, image.Point{})
	return mask
}

// Pad returns the mask with its covered area grown by the given number
// of pixels, so that texture lookups at the edges of UV islands do not
// bleed in the background. The mask is returned as is for pixels <= 0.
func Pad(mask *image.Alpha, pixels int) *image.Alpha {
	if pixels <= 0 {
		return mask
	}
	dl := effect.Dilate(mask, float64(pixels))
	pm := image.NewAlpha(mask.Rect)
	for y := mask.Rect.Min.Y; y < mask.Rect.Max.Y; y++ {
		for x := mask.Rect.Min.X; x < mask.Rect.Max.X; x++ {
			pm.SetAlpha(x, y, color.Alpha{dl.RGBAAt(x-mask.Rect.Min.X, y-mask.Rect.Min.Y).A})
		}
	}
	return pm
}

// Coverage returns the fraction of the mask area that is covered,
// from 0 to 1, counting partially covered pixels by their alpha.
func Coverage(mask *image.Alpha) float32 {
	n := mask.Rect.Dx() * mask.Rect.Dy()
	if n == 0 {
		return 0
	}
	sum := 0
	for y := mask.Rect.Min.Y; y < mask.Rect.Max.Y; y++ {
		for x := mask.Rect.Min.X; x < mask.Rect.Max.X; x++ {
			sum += int(mask.AlphaAt(x, y).A)
		}
	}
	return float32(sum) / float32(255*n)
}
