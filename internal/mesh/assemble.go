package mesh

import (
	"fmt"

	"github.com/Faultbox/animalobj/internal/creature"
	"github.com/Faultbox/animalobj/pkg/formats"
)

// Header returns the comment preamble written before the first object.
func Header(t *creature.Template) []string {
	return []string{
		"Animal Template: " + t.DisplayName(),
		"Exported from AnimalTemplates",
		"Import into Blender: File > Import > Wavefront (.obj)",
	}
}

// ObjectName returns the object name of block index (1-based) in a group.
func ObjectName(g creature.Group, index int) string {
	return fmt.Sprintf("%s_%d", g.Tag(), index)
}

// Assemble builds the OBJ document for a template: body, head, tail and
// decoration blocks in list order, then the four legs.
// Templates without body blocks or legs are rejected with a
// *creature.MissingFieldError.
func Assemble(t *creature.Template) (*formats.OBJ, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	b := NewBuilder(Header(t)...)
	for _, g := range creature.Groups {
		for i, blk := range t.Blocks(g) {
			b.AddCube(ObjectName(g, i+1), blk.Size, blk.Offset)
		}
	}
	b.AddLegs(*t.Legs)

	return b.Document(), nil
}
