package value

import (
	"github.com/spf13/cast"
)

// Coerce converts v to the requested target Type following §4.1's coercion
// table. When v's Type cannot be meaningfully interpreted as target, Coerce
// returns target's default value — it never errors and never panics; the
// engine's contract is that a type mismatch degrades to a defined-but-
// possibly-uninteresting result (§4.1 Failure mode).
func Coerce(v Value, target Type) Value {
	if v.typ == target {
		return v
	}

	switch target {
	case Float:
		return NewFloat(coerceToFloat(v))
	case Int:
		return NewInt(coerceToInt(v))
	case Bool:
		return NewBool(coerceToBool(v))
	case Vec2:
		x, y, _, _ := widenToVec(v)
		return NewVec2(x, y)
	case Vec3:
		x, y, z, _ := widenToVec(v)
		return NewVec3(x, y, z)
	case Vec4:
		x, y, z, w := widenToVec(v)
		return NewVec4(x, y, z, w)
	case Color:
		return coerceToColor(v)
	case String:
		if v.typ == String {
			return v
		}
		return Default(String)
	case Gradient, Matrix4:
		// Gradient and Matrix4 do not coerce from any other variant (§4.1).
		if v.typ == target {
			return v
		}
		return Default(target)
	default:
		if target.IsList() {
			return coerceToList(v, target)
		}
		return Default(target)
	}
}

// coerceToFloat implements the Bool/Int/Float numeric leg of §4.1 using
// spf13/cast for the scalar interpretation, then falls back to the
// Value-specific widening rules (e.g. a Vec2 collapses to its first
// component rather than failing outright).
func coerceToFloat(v Value) float32 {
	switch v.typ {
	case Float:
		return v.Float()
	case Int:
		f, _ := cast.ToFloat32E(v.Int())
		return f
	case Bool:
		if v.Bool() {
			return 1
		}
		return 0
	case Vec2, Vec3, Vec4, Color:
		return v.num[0]
	default:
		return 0
	}
}

func coerceToInt(v Value) int32 {
	switch v.typ {
	case Int:
		return v.Int()
	case Float:
		// Truncation toward zero, per §9 Open Questions (e.g. -0.9 -> 0, 1.9 -> 1).
		i, _ := cast.ToInt32E(int64(v.Float()))
		return i
	case Bool:
		if v.Bool() {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func coerceToBool(v Value) bool {
	switch v.typ {
	case Bool:
		return v.Bool()
	case Int:
		b, _ := cast.ToBoolE(v.Int() != 0)
		return b
	case Float:
		return v.Float() != 0
	default:
		return false
	}
}

// widenToVec broadcasts a scalar to all components (alpha/4th component
// defaults to 1.0 only when the *target* is Color; plain vector widening
// zero-fills the unused tail, per §4.1).
func widenToVec(v Value) (x, y, z, w float32) {
	switch v.typ {
	case Float, Int, Bool:
		f := coerceToFloat(v)
		return f, f, f, f
	case Vec2:
		return v.num[0], v.num[1], 0, 0
	case Vec3:
		return v.num[0], v.num[1], v.num[2], 0
	case Vec4:
		return v.num[0], v.num[1], v.num[2], v.num[3]
	case Color:
		return v.num[0], v.num[1], v.num[2], v.num[3]
	default:
		return 0, 0, 0, 0
	}
}

func coerceToColor(v Value) Value {
	switch v.typ {
	case Color:
		return v
	case Float, Int, Bool:
		f := coerceToFloat(v)
		return NewColor(f, f, f, 1.0)
	case Vec4:
		x, y, z, w := v.num[0], v.num[1], v.num[2], v.num[3]
		return NewColor(x, y, z, w)
	case Vec3:
		x, y, z := v.num[0], v.num[1], v.num[2]
		return NewColor(x, y, z, 1.0)
	default:
		return Default(Color)
	}
}

// coerceToList implements the list-wrap and list<->list legs of §4.1:
// a bare scalar wraps into a single-element list; IntList<->FloatList
// convert elementwise; Vec*List flattens to FloatList; FloatList groups
// into VecNList truncating any remainder; any other combination yields an
// empty list of the target element type.
func coerceToList(v Value, target Type) Value {
	if v.typ == target {
		return v
	}

	// Scalar -> single-element list.
	if !v.typ.IsList() {
		elem := Coerce(v, target.ElementType())
		return wrapSingleton(elem, target)
	}

	switch {
	case v.typ == IntList && target == FloatList:
		out := make([]float32, v.Len())
		for i := range out {
			out[i] = float32(v.list.ints[i])
		}
		return NewFloatList(out)
	case v.typ == FloatList && target == IntList:
		out := make([]int32, v.Len())
		for i := range out {
			out[i] = int32(v.list.floats[i])
		}
		return NewIntList(out)
	case v.typ == Vec2List && target == FloatList:
		return NewFloatList(flatten2(v.list.vec2s))
	case v.typ == Vec3List && target == FloatList:
		return NewFloatList(flatten3(v.list.vec3s))
	case v.typ == Vec4List && target == FloatList:
		return NewFloatList(flatten4(v.list.vec4s))
	case v.typ == FloatList && target == Vec2List:
		return NewVec2List(group2(v.list.floats))
	case v.typ == FloatList && target == Vec3List:
		return NewVec3List(group3(v.list.floats))
	case v.typ == FloatList && target == Vec4List:
		return NewVec4List(group4(v.list.floats))
	default:
		return emptyList(target)
	}
}

func wrapSingleton(elem Value, target Type) Value {
	switch target {
	case FloatList:
		return NewFloatList([]float32{coerceToFloat(elem)})
	case IntList:
		return NewIntList([]int32{coerceToInt(elem)})
	case BoolList:
		return NewBoolList([]bool{coerceToBool(elem)})
	case Vec2List:
		x, y := elem.Vec2Components()
		return NewVec2List([][2]float32{{x, y}})
	case Vec3List:
		x, y, z := elem.Vec3Components()
		return NewVec3List([][3]float32{{x, y, z}})
	case Vec4List:
		x, y, z, w := elem.Vec4Components()
		return NewVec4List([][4]float32{{x, y, z, w}})
	case ColorList:
		r, g, b, a := elem.ColorComponents()
		return NewColorList([]ColorValue{{r, g, b, a}})
	case StringList:
		return NewStringList([]string{elem.String2()})
	default:
		return emptyList(target)
	}
}

func flatten2(xs [][2]float32) []float32 {
	out := make([]float32, 0, len(xs)*2)
	for _, c := range xs {
		out = append(out, c[0], c[1])
	}
	return out
}
func flatten3(xs [][3]float32) []float32 {
	out := make([]float32, 0, len(xs)*3)
	for _, c := range xs {
		out = append(out, c[0], c[1], c[2])
	}
	return out
}
func flatten4(xs [][4]float32) []float32 {
	out := make([]float32, 0, len(xs)*4)
	for _, c := range xs {
		out = append(out, c[0], c[1], c[2], c[3])
	}
	return out
}

func group2(xs []float32) [][2]float32 {
	n := len(xs) / 2
	out := make([][2]float32, n)
	for i := 0; i < n; i++ {
		out[i] = [2]float32{xs[i*2], xs[i*2+1]}
	}
	return out
}
func group3(xs []float32) [][3]float32 {
	n := len(xs) / 3
	out := make([][3]float32, n)
	for i := 0; i < n; i++ {
		out[i] = [3]float32{xs[i*3], xs[i*3+1], xs[i*3+2]}
	}
	return out
}
func group4(xs []float32) [][4]float32 {
	n := len(xs) / 4
	out := make([][4]float32, n)
	for i := 0; i < n; i++ {
		out[i] = [4]float32{xs[i*4], xs[i*4+1], xs[i*4+2], xs[i*4+3]}
	}
	return out
}
