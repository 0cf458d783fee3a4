// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obj reads Wavefront OBJ files (*.obj) into [decal.SourceMesh]
// values, and writes projected decal meshes back out as OBJ.
// Only the geometry statements are supported: materials are used
// to split sub meshes, but mtl files are not read.
// Basic format info: https://en.wikipedia.org/wiki/Wavefront_.obj_file
package obj

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"cogentcore.org/decal/base/errors"
	"cogentcore.org/decal/decal"
	"cogentcore.org/decal/math32"
)

// Decoder contains all decoded data from an obj file.
type Decoder struct {

	// Objects are the decoded objects, in file order.
	Objects []Object

	// Vertices are the vertex positions.
	Vertices []math32.Vector3

	// Normals are the vertex normals.
	Normals []math32.Vector3

	// UVs are the vertex texture coordinates.
	UVs []math32.Vector2

	// Warnings are messages about unsupported statements.
	Warnings []string

	line          int     // current line number
	objCurrent    *Object // current object
	matCurrent    string  // current material
	smoothCurrent bool    // current smooth state
}

// Object contains all information about one decoded object or group.
type Object struct {
	Name  string
	Faces []Face
}

// Face contains all information about an object face, which
// can have any number of vertices from 3 up.
type Face struct {
	Vertices []int  // Indices to the face vertices
	UVs      []int  // Indices to the face UV coordinates, or -1
	Normals  []int  // Indices to the face normals, or -1
	Material string // Material name

	// Smooth is whether the face is in a smoothing group. A face
	// without normals that is not smooth gets vertices of its own,
	// so that its computed normals are flat.
	Smooth bool
}

const (
	blanks   = "\r\n\t "
	invIndex = -1
)

// NewDecoder returns a new empty decoder.
func NewDecoder() *Decoder {
	return &Decoder{line: 1}
}

// Open reads the given obj file and returns its [decal.SourceMesh],
// named after the file.
func Open(filename string) (*decal.SourceMesh, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return Decode(f, name)
}

// Decode reads obj data from r and returns it as a [decal.SourceMesh]
// with the given name.
func Decode(r io.Reader, name string) (*decal.SourceMesh, error) {
	dec := NewDecoder()
	if err := dec.Decode(r); err != nil {
		return nil, err
	}
	return dec.SourceMesh(name)
}

// Decode parses the obj lines of r into the decoder.
func (dec *Decoder) Decode(r io.Reader) error {
	err := dec.parse(r, dec.parseObjLine)
	for _, w := range dec.Warnings {
		slog.Debug("obj: " + w)
	}
	return err
}

// SourceMesh returns the decoded faces as a [decal.SourceMesh].
// Each run of faces with the same material within an object becomes
// a sub mesh, and faces with more than 3 vertices are split into
// triangle fans. Face vertices with the same position, uv, and normal
// indexes share one mesh vertex. Normals are computed if any face
// vertex has none, and tangents are computed if there are UVs.
func (dec *Decoder) SourceMesh(name string) (*decal.SourceMesh, error) {
	sm := &decal.SourceMesh{Name: name}
	verts := map[vertexKey]uint32{}
	nface := 0
	hasUV := false
	missingNorm := false
	for oi := range dec.Objects {
		ob := &dec.Objects[oi]
		matName := ""
		var sub *decal.SubMesh
		for fi := range ob.Faces {
			face := &ob.Faces[fi]
			if sub == nil || face.Material != matName {
				sm.SubMeshes = append(sm.SubMeshes, decal.SubMesh{Name: fmt.Sprintf("%s_%d", ob.Name, len(sm.SubMeshes))})
				sub = &sm.SubMeshes[len(sm.SubMeshes)-1]
				matName = face.Material
			}
			nface++
			flat := -1
			if !face.Smooth && slices.Contains(face.Normals, invIndex) {
				flat = nface
			}
			idxs := make([]uint32, len(face.Vertices))
			for i := range face.Vertices {
				key := [3]int{face.Vertices[i], face.UVs[i], face.Normals[i]}
				if err := dec.checkVertex(key); err != nil {
					return nil, fmt.Errorf("%w: object %q: %w", ErrFormat, ob.Name, err)
				}
				vk := vertexKey{key, flat}
				vi, ok := verts[vk]
				if !ok {
					vi = uint32(len(sm.Positions))
					verts[vk] = vi
					sm.Positions = append(sm.Positions, dec.Vertices[key[0]])
					var uv math32.Vector2
					if key[1] != invIndex {
						uv = dec.UVs[key[1]]
						hasUV = true
					}
					sm.UVs = append(sm.UVs, uv)
					var n math32.Vector3
					if key[2] != invIndex {
						n = dec.Normals[key[2]]
					} else {
						missingNorm = true
					}
					sm.Normals = append(sm.Normals, n)
				}
				idxs[i] = vi
			}
			// logic for 0, i, i+1: triangle fans
			for i := 2; i < len(idxs); i++ {
				sub.Indices = append(sub.Indices, idxs[0], idxs[i-1], idxs[i])
			}
		}
	}
	if !hasUV {
		sm.UVs = nil
	}
	if missingNorm {
		sm.ComputeNormals()
	}
	sm.ComputeTangents()
	return sm, nil
}

// vertexKey identifies a welded vertex: its position, uv and normal
// indexes, and the flat face it belongs to, or -1 if it is shared.
type vertexKey struct {
	index [3]int
	face  int
}

// checkVertex returns an error if any index of the vertex key is out of range.
func (dec *Decoder) checkVertex(key [3]int) error {
	if key[0] < 0 || key[0] >= len(dec.Vertices) {
		return fmt.Errorf("vertex index %d out of range for %d vertices", key[0]+1, len(dec.Vertices))
	}
	if key[1] != invIndex && (key[1] < 0 || key[1] >= len(dec.UVs)) {
		return fmt.Errorf("uv index %d out of range for %d uvs", key[1]+1, len(dec.UVs))
	}
	if key[2] != invIndex && (key[2] < 0 || key[2] >= len(dec.Normals)) {
		return fmt.Errorf("normal index %d out of range for %d normals", key[2]+1, len(dec.Normals))
	}
	return nil
}

// parse reads the lines from the specified reader and dispatch them
// to the specified line parser.
func (dec *Decoder) parse(reader io.Reader, parseLine func(string) error) error {
	bufin := bufio.NewReader(reader)
	dec.line = 1
	for {
		// Reads next line and abort on errors (not EOF)
		line, err := bufin.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		line = strings.Trim(line, blanks)
		perr := parseLine(line)
		if perr != nil {
			return perr
		}
		if err == io.EOF {
			break
		}
		dec.line++
	}
	return nil
}

// Parses obj file line, dispatching to specific parsers
func (dec *Decoder) parseObjLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	ltype := fields[0]
	if strings.HasPrefix(ltype, "#") {
		return nil
	}
	switch ltype {
	// Object name
	case "o":
		return dec.parseObject(fields[1:])
	// Group names are considered the same as objects
	case "g":
		return dec.parseObject(fields[1:])
	case "v":
		return dec.parseVertex(fields[1:])
	case "vn":
		return dec.parseNormal(fields[1:])
	case "vt":
		return dec.parseTex(fields[1:])
	case "f":
		return dec.parseFace(fields[1:])
	case "usemtl":
		return dec.parseUsemtl(fields[1:])
	case "s":
		return dec.parseSmooth(fields[1:])
	default:
		dec.appendWarn("field not supported: " + ltype)
	}
	return nil
}

// Parses an object line:
// o <name>
func (dec *Decoder) parseObject(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("object line (o) with no fields")
	}
	dec.Objects = append(dec.Objects, Object{Name: fields[0]})
	dec.objCurrent = &dec.Objects[len(dec.Objects)-1]
	return nil
}

// parseFloats parses the first n fields as float32 values.
func (dec *Decoder) parseFloats(fields []string, n int, ltype string) ([]float32, error) {
	if len(fields) < n {
		return nil, dec.formatError(fmt.Sprintf("less than %d values in %q line", n, ltype))
	}
	vals := make([]float32, n)
	for i, f := range fields[:n] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, dec.wrapError(err)
		}
		vals[i] = float32(val)
	}
	return vals, nil
}

// Parses a vertex position line
// v <x> <y> <z> [w]
func (dec *Decoder) parseVertex(fields []string) error {
	vals, err := dec.parseFloats(fields, 3, "v")
	if err != nil {
		return err
	}
	dec.Vertices = append(dec.Vertices, math32.Vec3(vals[0], vals[1], vals[2]))
	return nil
}

// Parses a vertex normal line
// vn <x> <y> <z>
func (dec *Decoder) parseNormal(fields []string) error {
	vals, err := dec.parseFloats(fields, 3, "vn")
	if err != nil {
		return err
	}
	dec.Normals = append(dec.Normals, math32.Vec3(vals[0], vals[1], vals[2]))
	return nil
}

// Parses a vertex texture coordinate line:
// vt <u> <v> [w]
func (dec *Decoder) parseTex(fields []string) error {
	vals, err := dec.parseFloats(fields, 2, "vt")
	if err != nil {
		return err
	}
	dec.UVs = append(dec.UVs, math32.Vec2(vals[0], vals[1]))
	return nil
}

// parseIndex parses one face index field, where n is the number of
// elements parsed so far: positive indexes are 1-based, and negative
// ones are relative to the end.
func (dec *Decoder) parseIndex(field string, n int, what string) (int, error) {
	val, err := strconv.ParseInt(field, 10, 32)
	if err != nil {
		return 0, dec.wrapError(err)
	}
	switch {
	case val > 0:
		return int(val - 1), nil
	case val < 0:
		return n + int(val), nil
	}
	return 0, dec.formatError("face " + what + " index value equal to 0")
}

// parseFace parses a face decription line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *Decoder) parseFace(fields []string) error {
	if dec.objCurrent == nil {
		// faces before any g or o line go to a default object
		if err := dec.parseObject([]string{fmt.Sprintf("unnamed%d", dec.line)}); err != nil {
			return err
		}
	}
	if len(fields) < 3 {
		return dec.formatError("face line with less than 3 fields")
	}
	face := Face{
		Vertices: make([]int, len(fields)),
		UVs:      make([]int, len(fields)),
		Normals:  make([]int, len(fields)),
		Material: dec.matCurrent,
		Smooth:   dec.smoothCurrent,
	}
	for pos, f := range fields {
		vfields := strings.Split(f, "/")
		var err error
		face.Vertices[pos], err = dec.parseIndex(vfields[0], len(dec.Vertices), "vertex")
		if err != nil {
			return err
		}
		face.UVs[pos] = invIndex
		if len(vfields) > 1 && len(vfields[1]) > 0 {
			face.UVs[pos], err = dec.parseIndex(vfields[1], len(dec.UVs), "uv")
			if err != nil {
				return err
			}
		}
		face.Normals[pos] = invIndex
		if len(vfields) > 2 && len(vfields[2]) > 0 {
			face.Normals[pos], err = dec.parseIndex(vfields[2], len(dec.Normals), "normal")
			if err != nil {
				return err
			}
		}
	}
	dec.objCurrent.Faces = append(dec.objCurrent.Faces, face)
	return nil
}

// parseUsemtl parses a "usemtl" decription line:
// usemtl <name>
func (dec *Decoder) parseUsemtl(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("usemtl with no fields")
	}
	dec.matCurrent = fields[0]
	return nil
}

// parseSmooth parses a "s" decription line:
// s <0|1>
func (dec *Decoder) parseSmooth(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("'s' with no fields")
	}
	switch fields[0] {
	case "0", "off":
		dec.smoothCurrent = false
		return nil
	case "1", "on":
		dec.smoothCurrent = true
		return nil
	}
	// smoothing group numbers
	if _, err := strconv.Atoi(fields[0]); err == nil {
		dec.smoothCurrent = true
		return nil
	}
	return dec.formatError("'s' with invalid value")
}

// ErrFormat is wrapped by all errors about malformed obj data.
var ErrFormat = errors.New("obj: invalid format")

func (dec *Decoder) formatError(msg string) error {
	return fmt.Errorf("%w: line %d: %s", ErrFormat, dec.line, msg)
}

func (dec *Decoder) wrapError(err error) error {
	return fmt.Errorf("%w: line %d: %w", ErrFormat, dec.line, err)
}

func (dec *Decoder) appendWarn(msg string) {
	dec.Warnings = append(dec.Warnings, fmt.Sprintf("line %d: %s", dec.line, msg))
}
