// Package mesh turns creature templates into indexed OBJ box meshes.
package mesh

import (
	"github.com/Faultbox/animalobj/pkg/formats"
	"github.com/Faultbox/animalobj/pkg/math"
)

// CubeFaces are the quads of a box as local vertex indices into CubeVertices.
// Order: front, back, left, right, top, bottom.
var CubeFaces = [6][4]int{
	{0, 1, 2, 3},
	{5, 4, 7, 6},
	{4, 0, 3, 7},
	{1, 5, 6, 2},
	{3, 2, 6, 7},
	{4, 5, 1, 0},
}

// CubeVertices returns the 8 corners of the box of the given full size
// centered at offset. The -Z face comes first, then the +Z face, each
// walked (-,-) (+,-) (+,+) (-,+) in X/Y.
func CubeVertices(size, offset math.Vec3) [8]math.Vec3 {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	cx, cy, cz := offset.X, offset.Y, offset.Z

	return [8]math.Vec3{
		{X: cx - hx, Y: cy - hy, Z: cz - hz},
		{X: cx + hx, Y: cy - hy, Z: cz - hz},
		{X: cx + hx, Y: cy + hy, Z: cz - hz},
		{X: cx - hx, Y: cy + hy, Z: cz - hz},
		{X: cx - hx, Y: cy - hy, Z: cz + hz},
		{X: cx + hx, Y: cy - hy, Z: cz + hz},
		{X: cx + hx, Y: cy + hy, Z: cz + hz},
		{X: cx - hx, Y: cy + hy, Z: cz + hz},
	}
}

// Builder appends box objects to an OBJ document while tracking the
// global vertex numbering.
type Builder struct {
	doc  *formats.OBJ
	next int // 1-based index of the next vertex
}

// NewBuilder creates a builder for a document with the given header comments.
func NewBuilder(comments ...string) *Builder {
	return &Builder{
		doc:  &formats.OBJ{Comments: comments},
		next: 1,
	}
}

// AddCube appends a box object. Sizes are not validated: zero or negative
// extents produce a degenerate box.
func (b *Builder) AddCube(name string, size, offset math.Vec3) {
	verts := CubeVertices(size, offset)

	obj := formats.OBJObject{
		Name:     name,
		Vertices: verts[:],
		Faces:    make([]formats.OBJFace, len(CubeFaces)),
	}
	for i, quad := range CubeFaces {
		ids := make([]int, len(quad))
		for j, local := range quad {
			ids[j] = b.next + local
		}
		obj.Faces[i] = formats.OBJFace{VertexIDs: ids}
	}

	b.doc.Objects = append(b.doc.Objects, obj)
	b.next += len(verts)
}

// VertexCount returns the number of vertices emitted so far.
func (b *Builder) VertexCount() int {
	return b.next - 1
}

// Document returns the assembled document.
func (b *Builder) Document() *formats.OBJ {
	return b.doc
}
