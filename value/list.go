package value

// listData is the shared payload behind every *List variant. Exactly one of
// the typed slices is populated, selected by the owning Value's Type.
//
// Copying a Value that holds a listData copies only the pointer (O(1)); any
// method that logically mutates the list (WithSet) allocates a new
// listData with a freshly copied backing slice and returns a new Value, so
// existing Values sharing the old listData are never affected.
type listData struct {
	floats  []float32
	ints    []int32
	bools   []bool
	vec2s   [][2]float32
	vec3s   [][3]float32
	vec4s   [][4]float32
	colors  []ColorValue
	strings []string
}

func emptyList(t Type) Value {
	return Value{typ: t, list: &listData{}}
}

func NewFloatList(xs []float32) Value {
	cp := append([]float32(nil), xs...)
	return Value{typ: FloatList, list: &listData{floats: cp}}
}
func NewIntList(xs []int32) Value {
	cp := append([]int32(nil), xs...)
	return Value{typ: IntList, list: &listData{ints: cp}}
}
func NewBoolList(xs []bool) Value {
	cp := append([]bool(nil), xs...)
	return Value{typ: BoolList, list: &listData{bools: cp}}
}
func NewVec2List(xs [][2]float32) Value {
	cp := append([][2]float32(nil), xs...)
	return Value{typ: Vec2List, list: &listData{vec2s: cp}}
}
func NewVec3List(xs [][3]float32) Value {
	cp := append([][3]float32(nil), xs...)
	return Value{typ: Vec3List, list: &listData{vec3s: cp}}
}
func NewVec4List(xs [][4]float32) Value {
	cp := append([][4]float32(nil), xs...)
	return Value{typ: Vec4List, list: &listData{vec4s: cp}}
}
func NewColorList(xs []ColorValue) Value {
	cp := append([]ColorValue(nil), xs...)
	return Value{typ: ColorList, list: &listData{colors: cp}}
}
func NewStringList(xs []string) Value {
	cp := append([]string(nil), xs...)
	return Value{typ: StringList, list: &listData{strings: cp}}
}

// Len returns the element count of a list-typed Value, or 0 for any other
// Type.
func (v Value) Len() int {
	if v.list == nil {
		return 0
	}
	switch v.typ {
	case FloatList:
		return len(v.list.floats)
	case IntList:
		return len(v.list.ints)
	case BoolList:
		return len(v.list.bools)
	case Vec2List:
		return len(v.list.vec2s)
	case Vec3List:
		return len(v.list.vec3s)
	case Vec4List:
		return len(v.list.vec4s)
	case ColorList:
		return len(v.list.colors)
	case StringList:
		return len(v.list.strings)
	default:
		return 0
	}
}

// ElementType returns the scalar Type contained in a list-typed Value.
func (t Type) ElementType() Type {
	switch t {
	case FloatList:
		return Float
	case IntList:
		return Int
	case BoolList:
		return Bool
	case Vec2List:
		return Vec2
	case Vec3List:
		return Vec3
	case Vec4List:
		return Vec4
	case ColorList:
		return Color
	case StringList:
		return String
	default:
		return t
	}
}

// At returns the element at index idx as a scalar Value.
//
// A negative index counts from the end (idx == -1 is the last element, per
// §8 boundary behavior for ListGet). An out-of-range index — including any
// index into an empty list — yields the element type's default rather than
// an error, consistent with the engine's never-abort philosophy (§4.1).
func (v Value) At(idx int) Value {
	elemType := v.typ.ElementType()
	n := v.Len()
	if n == 0 {
		return Default(elemType)
	}
	if idx < 0 {
		idx = n + idx
	}
	if idx < 0 || idx >= n {
		return Default(elemType)
	}
	switch v.typ {
	case FloatList:
		return NewFloat(v.list.floats[idx])
	case IntList:
		return NewInt(v.list.ints[idx])
	case BoolList:
		return NewBool(v.list.bools[idx])
	case Vec2List:
		c := v.list.vec2s[idx]
		return NewVec2(c[0], c[1])
	case Vec3List:
		c := v.list.vec3s[idx]
		return NewVec3(c[0], c[1], c[2])
	case Vec4List:
		c := v.list.vec4s[idx]
		return NewVec4(c[0], c[1], c[2], c[3])
	case ColorList:
		c := v.list.colors[idx]
		return NewColor(c.R, c.G, c.B, c.A)
	case StringList:
		return NewString(v.list.strings[idx])
	default:
		return Default(elemType)
	}
}

// WithSet returns a new list Value equal to v but with index idx replaced by
// elem, performing the copy-on-write structural copy of the backing slice.
// Out-of-range idx is a no-op that returns v unchanged. Only FloatList,
// IntList, BoolList and StringList are handled; for Vec2List, Vec3List,
// Vec4List and ColorList (and non-list values) v is returned unchanged.
func (v Value) WithSet(idx int, elem Value) Value {
	n := v.Len()
	if idx < 0 || idx >= n {
		return v
	}
	switch v.typ {
	case FloatList:
		cp := append([]float32(nil), v.list.floats...)
		cp[idx] = coerceToFloat(elem)
		return Value{typ: v.typ, list: &listData{floats: cp}}
	case IntList:
		cp := append([]int32(nil), v.list.ints...)
		cp[idx] = coerceToInt(elem)
		return Value{typ: v.typ, list: &listData{ints: cp}}
	case BoolList:
		cp := append([]bool(nil), v.list.bools...)
		cp[idx] = coerceToBool(elem)
		return Value{typ: v.typ, list: &listData{bools: cp}}
	case StringList:
		cp := append([]string(nil), v.list.strings...)
		cp[idx] = elem.str
		return Value{typ: v.typ, list: &listData{strings: cp}}
	default:
		return v
	}
}
