// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command decal projects decals onto Wavefront OBJ meshes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"cogentcore.org/decal/base/errors"
	"cogentcore.org/decal/base/logx"
	"cogentcore.org/decal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if errors.Log(err) != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug, verbose, quiet bool
	root := &cobra.Command{
		Use:           "decal",
		Short:         "Project decals onto the surface of meshes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.UserLevel = logx.LevelFromFlags(debug, verbose, quiet)
			logx.SetDefaultLogger()
		},
	}
	pf := root.PersistentFlags()
	pf.BoolVar(&debug, "debug", false, "show debug messages")
	pf.BoolVarP(&verbose, "verbose", "v", false, "show info messages")
	pf.BoolVarP(&quiet, "quiet", "q", false, "only show errors")
	root.AddCommand(newProjectCmd(), newWatchCmd(), newInitCmd())
	return root
}

// jobFlags are the command line values that override a config file.
type jobFlags struct {
	cfgFile                                string
	cfg                                    config.Config
	pos, rotation, scale                   []float32
	targetPos, targetRotation, targetScale []float32
}

func newJobFlags(fs *pflag.FlagSet) *jobFlags {
	jf := &jobFlags{}
	jf.cfg.Defaults()
	fs.StringVarP(&jf.cfgFile, "config", "c", "", "the config file of the job")
	fs.StringVar(&jf.cfg.Name, "name", jf.cfg.Name, "the name of the decal")
	fs.StringVarP(&jf.cfg.Output, "output", "o", jf.cfg.Output, "the obj file to write the decal mesh to")
	fs.StringVar(&jf.cfg.UVImage, "uv-image", "", "an image file (png, tiff, bmp) to render the UV layout to")
	fs.IntVar(&jf.cfg.UVImageSize, "uv-size", jf.cfg.UVImageSize, "the size of the UV image in pixels")
	fs.IntVar(&jf.cfg.UVImagePadding, "uv-padding", 0, "the number of pixels to grow the covered area of the UV image by")
	fs.Float32Var(&jf.cfg.Offset, "offset", jf.cfg.Offset, "the distance to move the decal along the surface normals")
	fs.BoolVar(&jf.cfg.RemoveBackfaces, "remove-backfaces", jf.cfg.RemoveBackfaces, "remove target triangles facing away from the projector")
	fs.BoolVar(&jf.cfg.KeepAttributesSerialized, "keep", false, "keep the projected mesh with the decal")
	fs.Float32SliceVar(&jf.pos, "pos", nil, "the decal position as x,y,z")
	fs.Float32SliceVar(&jf.rotation, "rotation", nil, "the decal rotation as x,y,z Euler angles in degrees")
	fs.Float32SliceVar(&jf.scale, "scale", nil, "the decal half size as x,y,z")
	fs.Float32SliceVar(&jf.targetPos, "target-pos", nil, "the target position as x,y,z")
	fs.Float32SliceVar(&jf.targetRotation, "target-rotation", nil, "the target rotation as x,y,z Euler angles in degrees")
	fs.Float32SliceVar(&jf.targetScale, "target-scale", nil, "the target scale as x,y,z")
	return jf
}

// load returns the config of the job: the config file if any,
// with the source from args and the values of all given flags.
func (jf *jobFlags) load(fs *pflag.FlagSet, args []string) (*config.Config, error) {
	c := config.New()
	if jf.cfgFile != "" {
		var err error
		c, err = config.Open(jf.cfgFile)
		if err != nil {
			return nil, err
		}
	}
	if len(args) > 0 {
		c.Source = args[0]
	}
	if err := jf.apply(fs, c); err != nil {
		return nil, err
	}
	if err := c.ExpandPaths(); err != nil {
		return nil, err
	}
	return c, nil
}

// apply sets the values of all flags that were given on c.
func (jf *jobFlags) apply(fs *pflag.FlagSet, c *config.Config) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "name":
			c.Name = jf.cfg.Name
		case "output":
			c.Output = jf.cfg.Output
		case "uv-image":
			c.UVImage = jf.cfg.UVImage
		case "uv-size":
			c.UVImageSize = jf.cfg.UVImageSize
		case "uv-padding":
			c.UVImagePadding = jf.cfg.UVImagePadding
		case "offset":
			c.Offset = jf.cfg.Offset
		case "remove-backfaces":
			c.RemoveBackfaces = jf.cfg.RemoveBackfaces
		case "keep":
			c.KeepAttributesSerialized = jf.cfg.KeepAttributesSerialized
		case "pos":
			err = errors.Join(err, setVector(&c.Decal.Pos, jf.pos, f.Name))
		case "rotation":
			err = errors.Join(err, setVector(&c.Decal.Rotation, jf.rotation, f.Name))
		case "scale":
			err = errors.Join(err, setVector(&c.Decal.Scale, jf.scale, f.Name))
		case "target-pos":
			err = errors.Join(err, setVector(&c.Target.Pos, jf.targetPos, f.Name))
		case "target-rotation":
			err = errors.Join(err, setVector(&c.Target.Rotation, jf.targetRotation, f.Name))
		case "target-scale":
			err = errors.Join(err, setVector(&c.Target.Scale, jf.targetScale, f.Name))
		}
	})
	return err
}

func setVector(v *config.Vector, vals []float32, name string) error {
	if len(vals) != 3 {
		return fmt.Errorf("--%s needs 3 values x,y,z, not %d", name, len(vals))
	}
	*v = config.Vector{X: vals[0], Y: vals[1], Z: vals[2]}
	return nil
}

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [source.obj]",
		Short: "Project a decal onto a mesh and write the decal mesh",
		Long: `Project loads the source mesh, clips it against the decal volume, and
writes the resulting decal mesh as obj. The job is read from the --config
file (toml or yaml), and any flags given override its values.`,
		Args: cobra.MaximumNArgs(1),
	}
	jf := newJobFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := jf.load(cmd.Flags(), args)
		if err != nil {
			return err
		}
		return Project(c)
	}
	return cmd
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [source.obj]",
		Short: "Project a decal again whenever the source mesh or config changes",
		Long: `Watch runs the same job as project, and then runs it again from scratch
every time the source mesh or the config file is written, until interrupted.`,
		Args: cobra.MaximumNArgs(1),
	}
	jf := newJobFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return Watch(cmd.Context(), func() (*config.Config, error) {
			return jf.load(cmd.Flags(), args)
		}, jf.cfgFile)
	}
	return cmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <config.toml|config.yaml>",
		Short: "Write a config file with the default values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Init(args[0])
		},
	}
}
