package scripting

import (
	"github.com/l1jgo/colshape/internal/colshape"
	lua "github.com/yuin/gopher-lua"
)

// registerNatives exposes the shape commands to Lua. Every native returns a
// single boolean: false on a duplicate id (create) or unknown id (delete).
// The trailing unbounded flag is optional and defaults to false.
func (e *Engine) registerNatives() {
	natives := map[string]lua.LGFunction{
		// colshape_circle(id, x, y, z, radius [, unbounded])
		"colshape_circle": func(L *lua.LState) int {
			ok := e.shapes.CreateCircle(L.CheckString(1), checkVector(L, 2), checkFloat(L, 5), L.OptBool(6, false))
			L.Push(lua.LBool(ok))
			return 1
		},
		// colshape_cube(id, x1, y1, z1, x2, y2, z2 [, unbounded])
		"colshape_cube": func(L *lua.LState) int {
			ok := e.shapes.CreateCube(L.CheckString(1), checkVector(L, 2), checkVector(L, 5), L.OptBool(8, false))
			L.Push(lua.LBool(ok))
			return 1
		},
		// colshape_cylinder(id, x, y, z, radius, height [, unbounded])
		"colshape_cylinder": func(L *lua.LState) int {
			ok := e.shapes.CreateCylinder(L.CheckString(1), checkVector(L, 2), checkFloat(L, 5), checkFloat(L, 6), L.OptBool(7, false))
			L.Push(lua.LBool(ok))
			return 1
		},
		// colshape_rectangle(id, x1, y1, x2, y2, bottom_z, height [, unbounded])
		"colshape_rectangle": func(L *lua.LState) int {
			ok := e.shapes.CreateRectangle(L.CheckString(1),
				checkFloat(L, 2), checkFloat(L, 3), checkFloat(L, 4), checkFloat(L, 5),
				checkFloat(L, 6), checkFloat(L, 7), L.OptBool(8, false))
			L.Push(lua.LBool(ok))
			return 1
		},
		// colshape_sphere(id, x, y, z, radius [, unbounded])
		"colshape_sphere": func(L *lua.LState) int {
			ok := e.shapes.CreateSphere(L.CheckString(1), checkVector(L, 2), checkFloat(L, 5), L.OptBool(6, false))
			L.Push(lua.LBool(ok))
			return 1
		},
		// colshape_delete(id)
		"colshape_delete": func(L *lua.LState) int {
			L.Push(lua.LBool(e.shapes.Delete(L.CheckString(1))))
			return 1
		},
		// colshape_exists(id)
		"colshape_exists": func(L *lua.LState) int {
			_, ok := e.shapes.Get(L.CheckString(1))
			L.Push(lua.LBool(ok))
			return 1
		},
	}
	for name, fn := range natives {
		e.vm.SetGlobal(name, e.vm.NewFunction(fn))
	}
}

func checkFloat(L *lua.LState, n int) float64 {
	return float64(L.CheckNumber(n))
}

// checkVector reads three consecutive numeric arguments starting at n.
func checkVector(L *lua.LState, n int) colshape.Vector3 {
	return colshape.Vector3{X: checkFloat(L, n), Y: checkFloat(L, n+1), Z: checkFloat(L, n+2)}
}
