package colshape

import (
	"fmt"
	"math"
)

// Kind identifies the geometry of a Shape. The set is closed: only the
// constants below are ever stored on a Shape.
type Kind uint8

const (
	KindCircle    Kind = iota // 2D circle, infinite in Z
	KindCube                  // axis-aligned box between two corners
	KindCylinder              // circle in XY, base Z + height
	KindRectangle             // XY rectangle, bottom Z + height
	KindSphere                // 3D sphere
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindCube:
		return "cube"
	case KindCylinder:
		return "cylinder"
	case KindRectangle:
		return "rectangle"
	case KindSphere:
		return "sphere"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a lowercase kind name back to its Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "circle":
		return KindCircle, nil
	case "cube":
		return KindCube, nil
	case "cylinder":
		return KindCylinder, nil
	case "rectangle":
		return KindRectangle, nil
	case "sphere":
		return KindSphere, nil
	}
	return 0, fmt.Errorf("unknown shape kind %q", s)
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Vector3 is a point in world space.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Shape is a named region. It is never mutated after creation; the
// Registry owns it and everything else refers to it through a Handle.
type Shape struct {
	ID        string  `json:"id"`
	Kind      Kind    `json:"kind"`
	Pos1      Vector3 `json:"pos1"` // center, or first corner
	Pos2      Vector3 `json:"pos2"` // second corner (cube, rectangle)
	Radius    float64 `json:"radius,omitempty"`
	Height    float64 `json:"height,omitempty"` // signed Z extent (cylinder, rectangle)
	Unbounded bool    `json:"unbounded"`

	// Planar bounding box, used to place the shape in grid cells.
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`

	handle Handle
	cells  []cellKey
}

// Width returns the X extent of the bounding box.
func (s *Shape) Width() float64 { return s.MaxX - s.MinX }

// Depth returns the Y extent of the bounding box.
func (s *Shape) Depth() float64 { return s.MaxY - s.MinY }

// squareBounds sets the bounding box to the square enclosing a circle of
// the given radius around center. Round shapes always use this square.
// Containment squares the radius, so a negative one spans the same area.
func (s *Shape) squareBounds(center Vector3, radius float64) {
	radius = math.Abs(radius)
	s.MinX = center.X - radius
	s.MaxX = center.X + radius
	s.MinY = center.Y - radius
	s.MaxY = center.Y + radius
}

func (s *Shape) cornerBounds(a, b Vector3) {
	s.MinX = math.Min(a.X, b.X)
	s.MaxX = math.Max(a.X, b.X)
	s.MinY = math.Min(a.Y, b.Y)
	s.MaxY = math.Max(a.Y, b.Y)
}

func newCircle(id string, center Vector3, radius float64, unbounded bool) *Shape {
	s := &Shape{ID: id, Kind: KindCircle, Pos1: center, Radius: radius, Unbounded: unbounded}
	s.squareBounds(center, radius)
	return s
}

func newCube(id string, corner1, corner2 Vector3, unbounded bool) *Shape {
	s := &Shape{ID: id, Kind: KindCube, Pos1: corner1, Pos2: corner2, Unbounded: unbounded}
	s.cornerBounds(corner1, corner2)
	return s
}

func newCylinder(id string, center Vector3, radius, height float64, unbounded bool) *Shape {
	s := &Shape{ID: id, Kind: KindCylinder, Pos1: center, Radius: radius, Height: height, Unbounded: unbounded}
	s.squareBounds(center, radius)
	return s
}

func newRectangle(id string, x1, y1, x2, y2, bottomZ, height float64, unbounded bool) *Shape {
	s := &Shape{
		ID:        id,
		Kind:      KindRectangle,
		Pos1:      Vector3{X: x1, Y: y1, Z: bottomZ},
		Pos2:      Vector3{X: x2, Y: y2, Z: bottomZ},
		Height:    height,
		Unbounded: unbounded,
	}
	s.cornerBounds(s.Pos1, s.Pos2)
	return s
}

func newSphere(id string, center Vector3, radius float64, unbounded bool) *Shape {
	s := &Shape{ID: id, Kind: KindSphere, Pos1: center, Radius: radius, Unbounded: unbounded}
	s.squareBounds(center, radius)
	return s
}
