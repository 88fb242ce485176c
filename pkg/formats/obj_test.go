package formats

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/animalobj/pkg/math"
)

// createTestOBJ builds a document with two unit boxes written by hand.
func createTestOBJ() *OBJ {
	box := func(name string, base int, dx float64) OBJObject {
		o := OBJObject{Name: name}
		for _, z := range []float64{0, 1} {
			o.Vertices = append(o.Vertices,
				math.Vec3{X: dx, Y: 0, Z: z},
				math.Vec3{X: dx + 1, Y: 0, Z: z},
				math.Vec3{X: dx + 1, Y: 1, Z: z},
				math.Vec3{X: dx, Y: 1, Z: z},
			)
		}
		for _, q := range [6][4]int{{0, 1, 2, 3}, {5, 4, 7, 6}, {4, 0, 3, 7}, {1, 5, 6, 2}, {3, 2, 6, 7}, {4, 5, 1, 0}} {
			o.Faces = append(o.Faces, OBJFace{VertexIDs: []int{base + q[0], base + q[1], base + q[2], base + q[3]}})
		}
		return o
	}

	return &OBJ{
		Comments: []string{"Test document", "second line"},
		Objects:  []OBJObject{box("A", 1, 0), box("B", 9, 2)},
	}
}

func TestEncodeOBJ_Layout(t *testing.T) {
	doc := &OBJ{
		Comments: []string{"Header"},
		Objects: []OBJObject{
			{
				Name:     "Tri",
				Vertices: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1.23456, Y: -0.00004, Z: 2}, {X: -1, Y: 0.5, Z: 1e-5}},
				Faces:    []OBJFace{{VertexIDs: []int{1, 2, 3}}},
			},
			{
				Name:     "Point",
				Vertices: []math.Vec3{{X: 0.325, Y: 0, Z: 0}},
			},
		},
	}

	want := "# Header\n" +
		"\n" +
		"o Tri\n" +
		"v 0.0000 0.0000 0.0000\n" +
		"v 1.2346 -0.0000 2.0000\n" +
		"v -1.0000 0.5000 0.0000\n" +
		"f 1 2 3\n" +
		"\n" +
		"o Point\n" +
		"v 0.3250 0.0000 0.0000\n"

	if got := string(doc.Bytes()); got != want {
		t.Errorf("encoded OBJ mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeOBJ_HeaderOnly(t *testing.T) {
	doc := &OBJ{Comments: []string{"a", "b"}}
	if got := string(doc.Bytes()); got != "# a\n# b\n" {
		t.Errorf("expected only header lines, got %q", got)
	}
}

func TestEncodeOBJ_NoHeader(t *testing.T) {
	doc := &OBJ{Objects: []OBJObject{{Name: "X"}}}
	if got := string(doc.Bytes()); got != "o X\n" {
		t.Errorf("expected object without leading blank line, got %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncodeOBJ_WriteError(t *testing.T) {
	if err := createTestOBJ().Encode(failingWriter{}); err == nil {
		t.Error("expected write error, got nil")
	}
}

func TestParseOBJ_RoundTrip(t *testing.T) {
	doc := createTestOBJ()

	parsed, err := ParseOBJ(doc.Bytes())
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(parsed.Comments) != 2 || parsed.Comments[0] != "Test document" {
		t.Errorf("unexpected comments: %q", parsed.Comments)
	}
	if len(parsed.Objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(parsed.Objects))
	}
	if parsed.GetTotalVertexCount() != 16 {
		t.Errorf("expected 16 vertices, got %d", parsed.GetTotalVertexCount())
	}
	if parsed.GetTotalFaceCount() != 12 {
		t.Errorf("expected 12 faces, got %d", parsed.GetTotalFaceCount())
	}
	if !bytes.Equal(parsed.Bytes(), doc.Bytes()) {
		t.Error("re-encoded document differs from input")
	}
}

func TestParseOBJ_Directives(t *testing.T) {
	data := []byte(`# exported elsewhere
mtllib box.mtl
v 0 0 0
v 1 0 0 1.0
v 1 1 0
vt 0 0
vn 0 0 1
g group
s off
usemtl red
f 1/1/1 2/1/1 3/1/1
o Named
v 0 0 1
f -3//1 -2//1 -1//1
# trailing comment
`)

	obj, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(obj.Comments) != 1 {
		t.Errorf("expected only the header comment, got %q", obj.Comments)
	}
	if len(obj.Objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(obj.Objects))
	}
	if obj.Objects[0].Name != "" {
		t.Errorf("expected unnamed leading object, got %q", obj.Objects[0].Name)
	}
	if len(obj.Objects[0].Vertices) != 3 {
		t.Errorf("expected 3 vertices in leading object, got %d", len(obj.Objects[0].Vertices))
	}

	named := obj.GetObjectByName("Named")
	if named == nil {
		t.Fatal("object 'Named' not found")
	}
	want := []int{2, 3, 4}
	got := named.Faces[0].VertexIDs
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("relative face index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"short vertex", "v 1 2\n", ErrInvalidOBJVertex},
		{"bad coordinate", "v 1 x 2\n", ErrInvalidOBJVertex},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrInvalidOBJFace},
		{"bad face ref", "v 0 0 0\nf 1 a 1\n", ErrInvalidOBJFace},
		{"zero index", "v 0 0 0\nf 0 1 1\n", ErrOBJFaceIndexRange},
		{"past end", "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 2 4\n", ErrOBJFaceIndexRange},
		{"relative before start", "v 0 0 0\nf -1 -2 -1\n", ErrOBJFaceIndexRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.obj")
	if err := os.WriteFile(path, createTestOBJ().Bytes(), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	obj, err := ParseOBJFile(path)
	if err != nil {
		t.Fatalf("ParseOBJFile failed: %v", err)
	}
	if len(obj.Objects) != 2 {
		t.Errorf("expected 2 objects, got %d", len(obj.Objects))
	}

	if _, err := ParseOBJFile(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestOBJBounds(t *testing.T) {
	doc := createTestOBJ()

	b, ok := doc.Bounds()
	if !ok {
		t.Fatal("expected bounds for non-empty document")
	}
	if b.Min != (math.Vec3{X: 0, Y: 0, Z: 0}) {
		t.Errorf("unexpected min: %v", b.Min)
	}
	if b.Max != (math.Vec3{X: 3, Y: 1, Z: 1}) {
		t.Errorf("unexpected max: %v", b.Max)
	}
	if c := b.Center(); c != (math.Vec3{X: 1.5, Y: 0.5, Z: 0.5}) {
		t.Errorf("unexpected center: %v", c)
	}
	if s := b.Size(); s != (math.Vec3{X: 3, Y: 1, Z: 1}) {
		t.Errorf("unexpected size: %v", s)
	}

	if _, ok := (&OBJ{}).Bounds(); ok {
		t.Error("expected no bounds for empty document")
	}
}

func TestOBJObject_IsHexahedron(t *testing.T) {
	doc := createTestOBJ()
	if !doc.Objects[0].IsHexahedron() {
		t.Error("expected box to be a hexahedron")
	}

	tri := OBJObject{
		Vertices: make([]math.Vec3, 8),
		Faces:    make([]OBJFace, 6),
	}
	for i := range tri.Faces {
		tri.Faces[i].VertexIDs = []int{1, 2, 3}
	}
	if tri.IsHexahedron() {
		t.Error("expected triangle faces to fail the hexahedron check")
	}
}
