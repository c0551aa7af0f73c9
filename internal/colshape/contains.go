package colshape

import (
	"fmt"
	"math"
)

// Contains reports whether p lies inside s. Boundary points count as
// inside for every kind.
func Contains(p Vector3, s *Shape) bool {
	switch s.Kind {
	case KindCircle:
		return withinRadiusXY(p, s.Pos1, s.Radius)

	case KindCube:
		return betweenXY(p, s.Pos1, s.Pos2) &&
			p.Z >= math.Min(s.Pos1.Z, s.Pos2.Z) && p.Z <= math.Max(s.Pos1.Z, s.Pos2.Z)

	case KindCylinder:
		if !withinRadiusXY(p, s.Pos1, s.Radius) {
			return false
		}
		return withinHeight(p.Z, s.Pos1.Z, s.Height)

	case KindRectangle:
		return betweenXY(p, s.Pos1, s.Pos2) && withinHeight(p.Z, s.Pos1.Z, s.Height)

	case KindSphere:
		dx := p.X - s.Pos1.X
		dy := p.Y - s.Pos1.Y
		dz := p.Z - s.Pos1.Z
		return dx*dx+dy*dy+dz*dz <= s.Radius*s.Radius
	}

	// Shapes are only built by the new* constructors, so this is a bug.
	panic(fmt.Sprintf("colshape: unrecognized kind %d for shape %q", uint8(s.Kind), s.ID))
}

func withinRadiusXY(p, center Vector3, radius float64) bool {
	dx := p.X - center.X
	dy := p.Y - center.Y
	return dx*dx+dy*dy <= radius*radius
}

func betweenXY(p, a, b Vector3) bool {
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}

// withinHeight checks z against [base, base+height], normalized low to high
// so a negative height extends downward.
func withinHeight(z, base, height float64) bool {
	bottom, top := base, base+height
	if top < bottom {
		bottom, top = top, bottom
	}
	return z >= bottom && z <= top
}
