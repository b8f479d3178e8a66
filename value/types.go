// Package value implements Flux's tagged value model: the Value variants a
// graph connection carries, their well-defined defaults, coercion between
// variants, and the arithmetic broadcasting rules operators rely on.
//
// Values are immutable by convention. List-typed values are shared-ownership:
// copying a Value is a pointer copy (O(1)); any operation that would mutate a
// list instead allocates a fresh backing slice for just that list, leaving
// every other Value sharing the old slice untouched.
package value

import "fmt"

// Type tags a Value variant without carrying any payload. It mirrors Value
// one-for-one and is used to describe port type constraints.
type Type uint8

// The complete set of Value variants.
const (
	Float Type = iota
	Int
	Bool
	Vec2
	Vec3
	Vec4
	String
	Color
	Gradient
	Matrix4
	FloatList
	IntList
	BoolList
	Vec2List
	Vec3List
	Vec4List
	ColorList
	StringList

	numTypes int = iota
)

var typeNames = [...]string{
	Float: "Float", Int: "Int", Bool: "Bool",
	Vec2: "Vec2", Vec3: "Vec3", Vec4: "Vec4",
	String: "String", Color: "Color", Gradient: "Gradient", Matrix4: "Matrix4",
	FloatList: "FloatList", IntList: "IntList", BoolList: "BoolList",
	Vec2List: "Vec2List", Vec3List: "Vec3List", Vec4List: "Vec4List",
	ColorList: "ColorList", StringList: "StringList",
}

// String renders the type tag for logs and error messages.
func (t Type) String() string {
	if int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}

// IsList reports whether t is one of the eight list variants.
func (t Type) IsList() bool {
	return t >= FloatList && t <= StringList
}

// ColorValue is an RGBA color with components nominally in [0,1].
type ColorValue struct {
	R, G, B, A float32
}

// GradientStop is one (position, color) control point of a Gradient.
type GradientStop struct {
	T     float32
	Color ColorValue
}

// GradientData is the payload of a Gradient Value.
type GradientData struct {
	Stops []GradientStop
}

// Matrix4Data is a row-major 4x4 float matrix.
type Matrix4Data struct {
	M [16]float32
}

// Value is a tagged union over every Flux variant (§3 Value).
//
// Only the field(s) relevant to typ are meaningful; all others are zero.
// Scalars and small fixed-size vectors are stored inline (num); the
// variable-size / reference-like variants (String, Gradient, Matrix4, and
// every list) are stored behind a pointer so that copying a Value is O(1).
type Value struct {
	typ  Type
	num  [4]float32 // Float uses num[0]; Vec2 num[0:2]; Vec3 num[0:3]; Vec4/Color num[0:4]
	i    int32       // Int
	b    bool        // Bool
	str  string
	grad *GradientData
	mat  *Matrix4Data
	list *listData
}

// Type reports the Value's variant tag.
func (v Value) Type() Type { return v.typ }

// ---- constructors ----

func NewFloat(f float32) Value { return Value{typ: Float, num: [4]float32{f}} }
func NewInt(i int32) Value    { return Value{typ: Int, i: i} }
func NewBool(b bool) Value    { return Value{typ: Bool, b: b} }
func NewVec2(x, y float32) Value {
	return Value{typ: Vec2, num: [4]float32{x, y}}
}
func NewVec3(x, y, z float32) Value {
	return Value{typ: Vec3, num: [4]float32{x, y, z}}
}
func NewVec4(x, y, z, w float32) Value {
	return Value{typ: Vec4, num: [4]float32{x, y, z, w}}
}
func NewString(s string) Value { return Value{typ: String, str: s} }
func NewColor(r, g, b, a float32) Value {
	return Value{typ: Color, num: [4]float32{r, g, b, a}}
}
func NewGradient(stops []GradientStop) Value {
	cp := make([]GradientStop, len(stops))
	copy(cp, stops)
	return Value{typ: Gradient, grad: &GradientData{Stops: cp}}
}
func NewMatrix4(m [16]float32) Value {
	return Value{typ: Matrix4, mat: &Matrix4Data{M: m}}
}

// ---- scalar/vector accessors (read the raw payload without checking typ:
// on a mismatch they return whatever that field holds, e.g. Float() on a
// Vec3 is its x component) ----

func (v Value) Float() float32 { return v.num[0] }
func (v Value) Int() int32     { return v.i }
func (v Value) Bool() bool     { return v.b }
func (v Value) String2() string {
	return v.str
}
func (v Value) Vec2Components() (x, y float32)         { return v.num[0], v.num[1] }
func (v Value) Vec3Components() (x, y, z float32)      { return v.num[0], v.num[1], v.num[2] }
func (v Value) Vec4Components() (x, y, z, w float32)    { return v.num[0], v.num[1], v.num[2], v.num[3] }
func (v Value) ColorComponents() (r, g, b, a float32)   { return v.num[0], v.num[1], v.num[2], v.num[3] }
func (v Value) GradientData() GradientData {
	if v.grad == nil {
		return GradientData{}
	}
	return *v.grad
}
func (v Value) Matrix4Data() Matrix4Data {
	if v.mat == nil {
		return Matrix4Data{}
	}
	return *v.mat
}

func componentCount(t Type) int {
	switch t {
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4, Color:
		return 4
	default:
		return 0
	}
}
