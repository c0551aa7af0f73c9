package data

import (
	"fmt"
	"os"

	"github.com/l1jgo/colshape/internal/colshape"
	"gopkg.in/yaml.v3"
)

// ShapeEntry defines one static shape. Which fields matter depends on Type:
//
//	circle, sphere  x, y, z, radius
//	cylinder        x, y, z, radius, height
//	cube            x, y, z, x2, y2, z2
//	rectangle       x, y, x2, y2, bottom_z, height
type ShapeEntry struct {
	ID        string  `yaml:"id"`
	Type      string  `yaml:"type"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Z         float64 `yaml:"z"`
	X2        float64 `yaml:"x2"`
	Y2        float64 `yaml:"y2"`
	Z2        float64 `yaml:"z2"`
	Radius    float64 `yaml:"radius"`
	Height    float64 `yaml:"height"`
	BottomZ   float64 `yaml:"bottom_z"`
	Unbounded bool    `yaml:"unbounded"`
	Note      string  `yaml:"note"`

	kind colshape.Kind
}

// ShapeTable is the parsed shape_list.yaml.
type ShapeTable struct {
	entries []ShapeEntry
}

// LoadShapeTable loads shape_list.yaml.
func LoadShapeTable(path string) (*ShapeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shape list: %w", err)
	}
	var entries []ShapeEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse shape list: %w", err)
	}
	for i := range entries {
		e := &entries[i]
		if e.ID == "" {
			return nil, fmt.Errorf("parse shape list: entry %d has no id", i)
		}
		k, err := colshape.ParseKind(e.Type)
		if err != nil {
			return nil, fmt.Errorf("parse shape list: %s: %w", e.ID, err)
		}
		e.kind = k
	}
	return &ShapeTable{entries: entries}, nil
}

// Count returns the total number of entries loaded.
func (t *ShapeTable) Count() int {
	return len(t.entries)
}

// Entries returns the entries in file order.
func (t *ShapeTable) Entries() []ShapeEntry {
	return t.entries
}

// Spawn creates every entry through the manager's boundary operations and
// returns the ids that were rejected as duplicates.
func (t *ShapeTable) Spawn(m *colshape.Manager) (created int, rejected []string) {
	for _, e := range t.entries {
		if e.create(m) {
			created++
		} else {
			rejected = append(rejected, e.ID)
		}
	}
	return created, rejected
}

func (e ShapeEntry) create(m *colshape.Manager) bool {
	center := colshape.Vector3{X: e.X, Y: e.Y, Z: e.Z}
	switch e.kind {
	case colshape.KindCircle:
		return m.CreateCircle(e.ID, center, e.Radius, e.Unbounded)
	case colshape.KindCube:
		return m.CreateCube(e.ID, center, colshape.Vector3{X: e.X2, Y: e.Y2, Z: e.Z2}, e.Unbounded)
	case colshape.KindCylinder:
		return m.CreateCylinder(e.ID, center, e.Radius, e.Height, e.Unbounded)
	case colshape.KindRectangle:
		return m.CreateRectangle(e.ID, e.X, e.Y, e.X2, e.Y2, e.BottomZ, e.Height, e.Unbounded)
	case colshape.KindSphere:
		return m.CreateSphere(e.ID, center, e.Radius, e.Unbounded)
	}
	return false
}
