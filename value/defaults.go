package value

// Default returns the well-defined zero value for t (§6.2 Value Defaults).
// An unrecognized Type yields Default(Float) rather than panicking, since
// the core never aborts evaluation on a type-system inconsistency (§4.1).
func Default(t Type) Value {
	switch t {
	case Float:
		return NewFloat(0)
	case Int:
		return NewInt(0)
	case Bool:
		return NewBool(false)
	case Vec2:
		return NewVec2(0, 0)
	case Vec3:
		return NewVec3(0, 0, 0)
	case Vec4:
		return NewVec4(0, 0, 0, 0)
	case String:
		return NewString("")
	case Color:
		return NewColor(1, 1, 1, 1)
	case Gradient:
		return NewGradient([]GradientStop{
			{T: 0, Color: ColorValue{0, 0, 0, 1}},
			{T: 1, Color: ColorValue{1, 1, 1, 1}},
		})
	case Matrix4:
		return NewMatrix4(identityMatrix())
	case FloatList, IntList, BoolList, Vec2List, Vec3List, Vec4List, ColorList, StringList:
		return emptyList(t)
	default:
		return NewFloat(0)
	}
}

func identityMatrix() [16]float32 {
	var m [16]float32
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}
