package value

// Category is a named set of Type values, used to describe port
// constraints and coercion/broadcast eligibility without enumerating
// every Type by hand (§3 TypeCategory).
type Category uint8

const (
	Numeric Category = iota
	Vector
	ColorLike
	List
	Arithmetic
	Any
)

var categoryMembers = map[Category]map[Type]struct{}{
	Numeric:    setOf(Float, Int),
	Vector:     setOf(Vec2, Vec3, Vec4),
	ColorLike:  setOf(Color, Vec3, Vec4),
	List:       setOf(FloatList, IntList, BoolList, Vec2List, Vec3List, Vec4List, ColorList, StringList),
	Arithmetic: setOf(Float, Int, Vec2, Vec3, Vec4, Color),
	Any:        allTypes(),
}

func setOf(types ...Type) map[Type]struct{} {
	m := make(map[Type]struct{}, len(types))
	for _, t := range types {
		m[t] = struct{}{}
	}
	return m
}

func allTypes() map[Type]struct{} {
	m := make(map[Type]struct{}, numTypes)
	for t := Float; int(t) < numTypes; t++ {
		m[t] = struct{}{}
	}
	return m
}

// In reports whether t belongs to category c. A Type may belong to several
// categories (e.g. Color is both ColorLike and Arithmetic).
func (c Category) In(t Type) bool {
	members, ok := categoryMembers[c]
	if !ok {
		return false
	}
	_, present := members[t]
	return present
}

// Members returns every Type belonging to c, in Type order. The result is a
// fresh slice; callers may mutate it freely.
func (c Category) Members() []Type {
	members := categoryMembers[c]
	out := make([]Type, 0, len(members))
	for t := Float; int(t) < numTypes; t++ {
		if _, ok := members[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
