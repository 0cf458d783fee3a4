// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"cogentcore.org/decal/config"
	"cogentcore.org/decal/decal"
	"cogentcore.org/decal/meshio/obj"
	"cogentcore.org/decal/uvmap"
	"golang.org/x/sync/errgroup"
)

// Project runs the projection job of the given config: it loads the
// source mesh, projects the decal onto it, and writes the results.
func Project(c *config.Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	src, err := obj.Open(c.Source)
	if err != nil {
		return fmt.Errorf("project: %w", err)
	}
	bb := obj.Bounds(src)
	slog.Info("loaded target mesh", "file", c.Source, "triangles", src.NumTriangles(),
		"min", bb.Min, "max", bb.Max)

	dc := c.NewDecal()
	fr := &fileRenderer{config: c}
	ms, err := dc.Update(&decal.Target{Mesh: src, Pose: c.Target.Pose()}, fr)
	if err != nil {
		return fmt.Errorf("project: %w", err)
	}
	st := ms.Stats
	slog.Info("projected decal", "decal", dc.Name, "output", st.Output, "rejected", st.Rejected,
		"backfaces", st.Backfaces, "passThrough", st.PassThrough, "clipped", st.Clipped, "degenerate", st.Degenerate)
	return nil
}

// fileRenderer is a [decal.Renderer] that writes the
// decal mesh to the output files of a config.
type fileRenderer struct {
	config *config.Config
}

func (fr *fileRenderer) SetMesh(ms *decal.Mesh) error {
	c := fr.config
	var g errgroup.Group
	g.Go(func() error {
		if err := obj.Save(c.Output, ms, c.Name); err != nil {
			return err
		}
		slog.Info("wrote decal mesh", "file", c.Output, "triangles", ms.NumTriangles())
		return nil
	})
	if c.UVImage != "" {
		g.Go(func() error {
			img := uvmap.Render(ms, uvmap.Options{Size: c.UVImageSize, Padding: c.UVImagePadding})
			if err := uvmap.Save(img, c.UVImage); err != nil {
				return err
			}
			cov := uvmap.Coverage(uvmap.Mask(ms.UV, ms.Indices, c.UVImageSize))
			slog.Info("wrote uv image", "file", c.UVImage, "coverage", cov)
			return nil
		})
	}
	return g.Wait()
}

func (fr *fileRenderer) SetVisible(visible bool) {
	if !visible {
		slog.Warn("decal does not cover any part of the target", "decal", fr.config.Name)
	}
}

// Init writes a config file with the default values to the given file,
// which must not exist yet.
func Init(filename string) error {
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("init: %s already exists", filename)
	}
	c := config.New()
	c.Source = "target.obj"
	return c.Save(filename)
}
