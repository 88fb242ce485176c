// Package creature defines the block-built creature templates consumed by the mesh assembler.
package creature

import (
	"errors"
	"fmt"

	"github.com/Faultbox/animalobj/pkg/math"
)

// ErrMalformedTemplate marks a template record that breaks the catalogue contract.
var ErrMalformedTemplate = errors.New("malformed template")

// Block is an axis-aligned box. Size holds full extents and Offset is the
// box center in template space.
type Block struct {
	Size   math.Vec3
	Offset math.Vec3
}

// LegConfig describes one leg, replicated to all four corners of the creature.
type LegConfig struct {
	Blocks   []Block   // Leg stack, offsets relative to the leg root
	OffsetFL math.Vec3 // Front-left leg root
	PivotY   float64   // Animation pivot height; not used for mesh output
}

// Template is a named creature built from block groups and one leg configuration.
// Head, Tail and Decoration may be nil. Body and Legs are required.
type Template struct {
	ID         string
	Name       string
	Body       []Block
	Head       []Block
	Tail       []Block
	Decoration []Block
	Legs       *LegConfig
}

// Group identifies a block list of a template.
type Group int

// Block groups in emission order.
const (
	GroupBody Group = iota
	GroupHead
	GroupTail
	GroupDecoration
)

// Groups lists the non-leg groups in the order they are emitted.
var Groups = []Group{GroupBody, GroupHead, GroupTail, GroupDecoration}

// Tag returns the object name prefix used for blocks of the group.
func (g Group) Tag() string {
	switch g {
	case GroupBody:
		return "Body"
	case GroupHead:
		return "Head"
	case GroupTail:
		return "Tail"
	case GroupDecoration:
		return "Deco"
	default:
		return fmt.Sprintf("Group%d", int(g))
	}
}

// String returns the group's field name.
func (g Group) String() string {
	switch g {
	case GroupBody:
		return "Body"
	case GroupHead:
		return "Head"
	case GroupTail:
		return "Tail"
	case GroupDecoration:
		return "Decoration"
	default:
		return fmt.Sprintf("Group(%d)", int(g))
	}
}

// Blocks returns the block list for a group.
func (t *Template) Blocks(g Group) []Block {
	switch g {
	case GroupBody:
		return t.Body
	case GroupHead:
		return t.Head
	case GroupTail:
		return t.Tail
	case GroupDecoration:
		return t.Decoration
	default:
		return nil
	}
}

// DisplayName returns Name, falling back to ID.
func (t *Template) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

// InstanceCount returns the number of boxes the template expands to.
// Every leg block is counted four times.
func (t *Template) InstanceCount() int {
	n := 0
	for _, g := range Groups {
		n += len(t.Blocks(g))
	}
	if t.Legs != nil {
		n += 4 * len(t.Legs.Blocks)
	}
	return n
}

// Validate checks that the required fields are present.
// Empty lists are accepted; only absent ones are rejected.
func (t *Template) Validate() error {
	if t.Body == nil {
		return &MissingFieldError{TemplateID: t.ID, Field: "BodyBlocks"}
	}
	if t.Legs == nil {
		return &MissingFieldError{TemplateID: t.ID, Field: "Legs"}
	}
	return nil
}

// MissingFieldError reports a template without a required field.
type MissingFieldError struct {
	TemplateID string
	Field      string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("template %q: missing required field %s", e.TemplateID, e.Field)
}

// Is makes MissingFieldError match ErrMalformedTemplate.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMalformedTemplate
}
