package mesh

import (
	"fmt"

	"github.com/Faultbox/animalobj/internal/creature"
	"github.com/Faultbox/animalobj/pkg/math"
)

// LegPosition identifies one of the four replicated legs.
type LegPosition int

// Leg positions in emission order.
const (
	LegFrontLeft LegPosition = iota
	LegFrontRight
	LegBackLeft
	LegBackRight
)

// LegPositions lists all positions in emission order.
var LegPositions = [4]LegPosition{LegFrontLeft, LegFrontRight, LegBackLeft, LegBackRight}

// Tag returns the short position tag used in object names.
func (p LegPosition) Tag() string {
	switch p {
	case LegFrontLeft:
		return "FL"
	case LegFrontRight:
		return "FR"
	case LegBackLeft:
		return "BL"
	case LegBackRight:
		return "BR"
	default:
		return fmt.Sprintf("L%d", int(p))
	}
}

// LegRoots mirrors the front-left root into all four leg roots, indexed by
// LegPosition. Right legs negate X, back legs negate Z; Y is shared.
func LegRoots(offsetFL math.Vec3) [4]math.Vec3 {
	return [4]math.Vec3{
		LegFrontLeft:  offsetFL,
		LegFrontRight: offsetFL.MirrorX(),
		LegBackLeft:   offsetFL.MirrorZ(),
		LegBackRight:  offsetFL.MirrorX().MirrorZ(),
	}
}

// LegObjectName returns the object name of leg block index (1-based) at pos.
func LegObjectName(pos LegPosition, index int) string {
	return fmt.Sprintf("Leg%s_%d", pos.Tag(), index)
}

// AddLegs emits every leg block four times: FL, FR, BL, BR for the first
// block, then the same for the next.
func (b *Builder) AddLegs(legs creature.LegConfig) {
	roots := LegRoots(legs.OffsetFL)
	for i, blk := range legs.Blocks {
		for _, pos := range LegPositions {
			b.AddCube(LegObjectName(pos, i+1), blk.Size, roots[pos].Add(blk.Offset))
		}
	}
}
