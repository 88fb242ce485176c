package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/animalobj/pkg/math"
)

// OBJ format errors.
var (
	ErrInvalidOBJVertex  = errors.New("invalid OBJ vertex")
	ErrInvalidOBJFace    = errors.New("invalid OBJ face")
	ErrOBJFaceIndexRange = errors.New("OBJ face index out of range")
)

// OBJCoordPrecision is the number of decimals written for vertex coordinates.
const OBJCoordPrecision = 4

// OBJ is a Wavefront OBJ document made of named objects.
// Vertex numbering is global across the document and 1-based.
type OBJ struct {
	Comments []string // Header comment lines, without the leading '#'
	Objects  []OBJObject
}

// OBJObject is a named group of vertices and the faces that reference them.
type OBJObject struct {
	Name     string
	Vertices []math.Vec3
	Faces    []OBJFace
}

// OBJFace is a polygon referencing global 1-based vertex indices.
type OBJFace struct {
	VertexIDs []int
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Encode writes the document in OBJ text form.
// Objects are separated by a blank line and the output ends with a single newline.
func (o *OBJ) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)

	for _, c := range o.Comments {
		buf = append(buf[:0], "# "...)
		buf = append(buf, c...)
		buf = append(buf, '\n')
		bw.Write(buf)
	}

	wrote := len(o.Comments) > 0
	for i := range o.Objects {
		obj := &o.Objects[i]
		if wrote {
			bw.WriteByte('\n')
		}
		wrote = true

		bw.WriteString("o " + obj.Name + "\n")
		for _, v := range obj.Vertices {
			buf = append(buf[:0], 'v')
			for _, c := range [3]float64{v.X, v.Y, v.Z} {
				buf = append(buf, ' ')
				buf = strconv.AppendFloat(buf, c, 'f', OBJCoordPrecision, 64)
			}
			buf = append(buf, '\n')
			bw.Write(buf)
		}
		for _, f := range obj.Faces {
			buf = append(buf[:0], 'f')
			for _, id := range f.VertexIDs {
				buf = append(buf, ' ')
				buf = strconv.AppendInt(buf, int64(id), 10)
			}
			buf = append(buf, '\n')
			bw.Write(buf)
		}
	}

	return bw.Flush()
}

// Bytes returns the encoded document.
func (o *OBJ) Bytes() []byte {
	var buf bytes.Buffer
	_ = o.Encode(&buf) // bytes.Buffer writes do not fail
	return buf.Bytes()
}

// ParseOBJ parses OBJ text. Only comments, objects, vertices and faces are
// retained; other directives (normals, texture coordinates, groups, materials)
// are skipped.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{}
	total := 0

	current := func() *OBJObject {
		if len(obj.Objects) == 0 {
			obj.Objects = append(obj.Objects, OBJObject{})
		}
		return &obj.Objects[len(obj.Objects)-1]
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			// Comments after the first object are not part of the header
			if len(obj.Objects) == 0 {
				obj.Comments = append(obj.Comments, strings.TrimSpace(line[1:]))
			}
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "o":
			obj.Objects = append(obj.Objects, OBJObject{
				Name: strings.TrimSpace(strings.TrimPrefix(line, "o")),
			})

		case "v":
			v, err := parseOBJVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			cur := current()
			cur.Vertices = append(cur.Vertices, v)
			total++

		case "f":
			face, err := parseOBJFace(fields[1:], total)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			cur := current()
			cur.Faces = append(cur.Faces, face)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ data: %w", err)
	}

	for i := range obj.Objects {
		for _, f := range obj.Objects[i].Faces {
			for _, id := range f.VertexIDs {
				if id > total {
					return nil, fmt.Errorf("%w: object %q references vertex %d of %d",
						ErrOBJFaceIndexRange, obj.Objects[i].Name, id, total)
				}
			}
		}
	}

	return obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

func parseOBJVertex(fields []string) (math.Vec3, error) {
	// A fourth (w) component is allowed and ignored
	if len(fields) < 3 || len(fields) > 4 {
		return math.Vec3{}, fmt.Errorf("%w: expected 3 coordinates, got %d", ErrInvalidOBJVertex, len(fields))
	}

	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("%w: %v", ErrInvalidOBJVertex, err)
		}
		c[i] = f
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// parseOBJFace resolves vertex references of the forms a, a/b, a//c and a/b/c.
// Negative references are relative to the vertices seen so far.
func parseOBJFace(fields []string, seen int) (OBJFace, error) {
	if len(fields) < 3 {
		return OBJFace{}, fmt.Errorf("%w: expected at least 3 vertices, got %d", ErrInvalidOBJFace, len(fields))
	}

	face := OBJFace{VertexIDs: make([]int, 0, len(fields))}
	for _, ref := range fields {
		vs, _, _ := strings.Cut(ref, "/")
		id, err := strconv.Atoi(vs)
		if err != nil {
			return OBJFace{}, fmt.Errorf("%w: %v", ErrInvalidOBJFace, err)
		}
		if id < 0 {
			id = seen + id + 1
			if id < 1 {
				return OBJFace{}, fmt.Errorf("%w: relative index %s with %d vertices", ErrOBJFaceIndexRange, vs, seen)
			}
		}
		if id == 0 {
			return OBJFace{}, fmt.Errorf("%w: index 0", ErrOBJFaceIndexRange)
		}
		face.VertexIDs = append(face.VertexIDs, id)
	}
	return face, nil
}

// GetTotalVertexCount returns the total number of vertices across all objects.
func (o *OBJ) GetTotalVertexCount() int {
	total := 0
	for _, obj := range o.Objects {
		total += len(obj.Vertices)
	}
	return total
}

// GetTotalFaceCount returns the total number of faces across all objects.
func (o *OBJ) GetTotalFaceCount() int {
	total := 0
	for _, obj := range o.Objects {
		total += len(obj.Faces)
	}
	return total
}

// GetObjectByName returns an object by its name, or nil if not found.
func (o *OBJ) GetObjectByName(name string) *OBJObject {
	for i := range o.Objects {
		if o.Objects[i].Name == name {
			return &o.Objects[i]
		}
	}
	return nil
}

// Bounds returns the bounding box of every vertex in the document.
// ok is false when the document has no vertices.
func (o *OBJ) Bounds() (b Bounds, ok bool) {
	for i := range o.Objects {
		ob, has := o.Objects[i].Bounds()
		if !has {
			continue
		}
		if !ok {
			b, ok = ob, true
			continue
		}
		b.Min = b.Min.Min(ob.Min)
		b.Max = b.Max.Max(ob.Max)
	}
	return b, ok
}

// Bounds returns the bounding box of the object's vertices.
func (ob *OBJObject) Bounds() (b Bounds, ok bool) {
	if len(ob.Vertices) == 0 {
		return Bounds{}, false
	}
	b.Min, b.Max = ob.Vertices[0], ob.Vertices[0]
	for _, v := range ob.Vertices[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b, true
}

// IsHexahedron reports whether the object is an 8-vertex box with 6 quad faces.
func (ob *OBJObject) IsHexahedron() bool {
	if len(ob.Vertices) != 8 || len(ob.Faces) != 6 {
		return false
	}
	for _, f := range ob.Faces {
		if len(f.VertexIDs) != 4 {
			return false
		}
	}
	return true
}
