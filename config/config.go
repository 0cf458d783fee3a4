// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration
// of a decal projection job.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/decal/base/errors"
	"cogentcore.org/decal/decal"
	"cogentcore.org/decal/math32"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the main config struct that contains
// all of the options for projecting one decal.
type Config struct {

	// Name is the name of the decal, also used as the
	// object name in the output file.
	Name string `toml:"name" yaml:"name"`

	// Source is the obj file of the target mesh.
	Source string `toml:"source" yaml:"source"`

	// Output is the obj file that the decal mesh is written to.
	Output string `toml:"output" yaml:"output"`

	// UVImage is an optional image file (png, tiff, or bmp) that the
	// projection UV layout of the decal mesh is rendered to.
	UVImage string `toml:"uv_image" yaml:"uv_image"`

	// UVImageSize is the width and height of the UVImage in pixels.
	UVImageSize int `toml:"uv_image_size" yaml:"uv_image_size"`

	// UVImagePadding is the number of pixels by which the covered
	// area of the UVImage is grown, to avoid seams when sampling.
	UVImagePadding int `toml:"uv_image_padding" yaml:"uv_image_padding"`

	// Offset is the distance by which the decal surface is moved
	// along its normals, to avoid z-fighting with the target.
	Offset float32 `toml:"offset" yaml:"offset"`

	// RemoveBackfaces removes target triangles facing away from the projector.
	RemoveBackfaces bool `toml:"remove_backfaces" yaml:"remove_backfaces"`

	// KeepAttributesSerialized keeps the projected mesh with the decal.
	KeepAttributesSerialized bool `toml:"keep_attributes_serialized" yaml:"keep_attributes_serialized"`

	// Decal is the pose of the decal volume.
	Decal Pose `toml:"decal" yaml:"decal"`

	// Target is the pose of the target mesh.
	Target Pose `toml:"target" yaml:"target"`
}

// Pose is the configuration of a [decal.Pose],
// with the rotation given as Euler angles.
type Pose struct {

	// Pos is the position.
	Pos Vector `toml:"pos" yaml:"pos"`

	// Rotation is the rotation in Euler angles (degrees),
	// applied in X, Y, Z order.
	Rotation Vector `toml:"rotation" yaml:"rotation"`

	// Scale is the scale; for the decal, the half size of its volume.
	Scale Vector `toml:"scale" yaml:"scale"`
}

// Vector is a 3D vector in a config file.
type Vector struct {
	X float32 `toml:"x" yaml:"x"`
	Y float32 `toml:"y" yaml:"y"`
	Z float32 `toml:"z" yaml:"z"`
}

// Vector3 returns the vector as a [math32.Vector3].
func (v Vector) Vector3() math32.Vector3 {
	return math32.Vec3(v.X, v.Y, v.Z)
}

// Defaults sets the default scale.
func (ps *Pose) Defaults() {
	ps.Scale = Vector{1, 1, 1}
}

// Pose returns the config as a [decal.Pose].
func (ps *Pose) Pose() decal.Pose {
	p := decal.NewPose()
	p.Pos = ps.Pos.Vector3()
	p.Scale = ps.Scale.Vector3()
	p.SetEulerRotation(ps.Rotation.X, ps.Rotation.Y, ps.Rotation.Z)
	return p
}

// New returns a new config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.Defaults()
	return cfg
}

// Defaults sets the default values.
func (cfg *Config) Defaults() {
	cfg.Name = "decal"
	cfg.Output = "decal.obj"
	cfg.UVImageSize = 512
	cfg.Offset = 0.001
	cfg.RemoveBackfaces = true
	cfg.Decal.Defaults()
	cfg.Target.Defaults()
}

// ErrFormat is returned for config files with an unsupported extension.
var ErrFormat = errors.New("config: unsupported file format, must be .toml, .yaml, or .yml")

// Formats are the supported config file formats.
type Formats int32

const (
	TOML Formats = iota
	YAML
)

// ExtToFormat returns the format for the given filename extension.
func ExtToFormat(ext string) (Formats, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return TOML, fmt.Errorf("%w: %q", ErrFormat, ext)
}

// Open returns the config in the given file, with the format chosen
// by its extension. Values missing in the file keep their defaults.
func Open(filename string) (*Config, error) {
	f, err := ExtToFormat(filepath.Ext(filename))
	if err != nil {
		return nil, err
	}
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	cfg := New()
	if err := cfg.Read(fp, f); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	return cfg, nil
}

// Read reads the config from r in the given format,
// on top of the current values.
func (cfg *Config) Read(r io.Reader, f Formats) error {
	if f == YAML {
		err := yaml.NewDecoder(r).Decode(cfg)
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return toml.NewDecoder(r).Decode(cfg)
}

// Write writes the config to w in the given format.
func (cfg *Config) Write(w io.Writer, f Formats) error {
	if f == YAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}
	return toml.NewEncoder(w).Encode(cfg)
}

// Save writes the config to the given file, with the format
// chosen by its extension.
func (cfg *Config) Save(filename string) error {
	f, err := ExtToFormat(filepath.Ext(filename))
	if err != nil {
		return err
	}
	var b bytes.Buffer
	if err := cfg.Write(&b, f); err != nil {
		return err
	}
	return os.WriteFile(filename, b.Bytes(), 0666)
}

// Validate returns an error if the config cannot be run.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Source == "" {
		errs = append(errs, errors.New("config: no source mesh file"))
	}
	if cfg.Output == "" {
		errs = append(errs, errors.New("config: no output file"))
	}
	if cfg.UVImage != "" && cfg.UVImageSize <= 0 {
		errs = append(errs, fmt.Errorf("config: invalid uv image size %d", cfg.UVImageSize))
	}
	if cfg.UVImagePadding < 0 {
		errs = append(errs, fmt.Errorf("config: invalid uv image padding %d", cfg.UVImagePadding))
	}
	return errors.Join(errs...)
}

// ExpandPaths replaces a leading ~ in the file paths
// with the home directory of the user.
func (cfg *Config) ExpandPaths() error {
	for _, p := range []*string{&cfg.Source, &cfg.Output, &cfg.UVImage} {
		ep, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		*p = ep
	}
	return nil
}

// NewDecal returns a new [decal.Decal] with the decal settings of the config.
func (cfg *Config) NewDecal() *decal.Decal {
	dc := decal.NewDecal(cfg.Name)
	dc.Pose = cfg.Decal.Pose()
	dc.Offset = cfg.Offset
	dc.RemoveBackfaces = cfg.RemoveBackfaces
	dc.KeepAttributesSerialized = cfg.KeepAttributesSerialized
	return dc
}
