package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cases := []struct {
		typ  Type
		want Value
	}{
		{Float, NewFloat(0)},
		{Int, NewInt(0)},
		{Bool, NewBool(false)},
		{Vec3, NewVec3(0, 0, 0)},
		{String, NewString("")},
		{Color, NewColor(1, 1, 1, 1)},
		{Matrix4, NewMatrix4(identityMatrix())},
	}
	for _, c := range cases {
		t.Run(c.typ.String(), func(t *testing.T) {
			got := Default(c.typ)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestCategoryMembership(t *testing.T) {
	require.True(t, Arithmetic.In(Color))
	require.True(t, ColorLike.In(Color))
	require.True(t, ColorLike.In(Vec3))
	require.False(t, ColorLike.In(Vec2))
	require.True(t, List.In(FloatList))
	require.False(t, List.In(Float))
	require.True(t, Any.In(Gradient))
}

func TestCoerceStringToFloatBroadcastsToVec3Default(t *testing.T) {
	// Grounds S5: Constant("hello"):String coerces to Float default 0.0,
	// then broadcasts to Vec3(0,0,0).
	s := NewString("hello")
	f := Coerce(s, Float)
	assert.Equal(t, Default(Float), f)

	vec := Coerce(f, Vec3)
	x, y, z := vec.Vec3Components()
	assert.Equal(t, [3]float32{0, 0, 0}, [3]float32{x, y, z})
}

func TestCoerceIntFloatTruncatesTowardZero(t *testing.T) {
	assert.Equal(t, int32(0), coerceToInt(NewFloat(-0.9)))
	assert.Equal(t, int32(1), coerceToInt(NewFloat(1.9)))
	assert.Equal(t, int32(-1), coerceToInt(NewFloat(-1.9)))
}

func TestArithIntAddIsInt(t *testing.T) {
	r := Arith(OpAdd, NewInt(2), NewInt(3))
	assert.Equal(t, Int, r.Type())
	assert.Equal(t, int32(5), r.Int())
}

func TestArithIntDivByZeroIsZero(t *testing.T) {
	r := Arith(OpDiv, NewInt(5), NewInt(0))
	assert.Equal(t, int32(0), r.Int())
}

func TestArithFloatDivByZeroIsInf(t *testing.T) {
	r := Arith(OpDiv, NewFloat(1), NewFloat(0))
	assert.True(t, r.Float() > 1e30 || r.Float() != r.Float()+1) // +Inf sentinel check w/o importing math
}

func TestArithFloatPlusVec3(t *testing.T) {
	r := Arith(OpAdd, NewFloat(1), NewVec3(1, 2, 3))
	require.Equal(t, Vec3, r.Type())
	x, y, z := r.Vec3Components()
	assert.Equal(t, [3]float32{2, 3, 4}, [3]float32{x, y, z})
}

func TestArithScalarColorPreservesAlphaOnAdd(t *testing.T) {
	c := NewColor(0, 0, 0, 0.5)
	r := Arith(OpAdd, c, NewFloat(0.25))
	_, _, _, a := r.ColorComponents()
	assert.Equal(t, float32(0.5), a)
}

func TestArithScalarColorScalesAlphaOnMul(t *testing.T) {
	c := NewColor(1, 1, 1, 1)
	r := Arith(OpMul, c, NewFloat(0.5))
	rr, gg, bb, aa := r.ColorComponents()
	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 0.5}, [4]float32{rr, gg, bb, aa})
}

func TestListGetNegativeOneIsLast(t *testing.T) {
	l := NewFloatList([]float32{1, 2, 3})
	assert.Equal(t, NewFloat(3), l.At(-1))
}

func TestListGetOutOfRangeIsDefault(t *testing.T) {
	l := NewFloatList([]float32{1, 2, 3})
	assert.Equal(t, Default(Float), l.At(99))

	empty := emptyList(IntList)
	assert.Equal(t, Default(Int), empty.At(0))
}

func TestListCopyOnWriteDoesNotMutateOriginal(t *testing.T) {
	orig := NewFloatList([]float32{1, 2, 3})
	dup := orig // O(1) copy of the Value, shares listData
	mutated := dup.WithSet(1, NewFloat(99))

	assert.Equal(t, NewFloat(2), orig.At(1), "original must be unaffected by WithSet")
	assert.Equal(t, NewFloat(99), mutated.At(1))
}

func TestArithListZipsToShorter(t *testing.T) {
	a := NewFloatList([]float32{1, 2, 3})
	b := NewFloatList([]float32{10, 20})
	r := ArithList(OpAdd, a, b)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, NewFloat(11), r.At(0))
	assert.Equal(t, NewFloat(22), r.At(1))
}

func TestArithListDivByZeroIsZero(t *testing.T) {
	a := NewFloatList([]float32{1, 2})
	b := NewFloatList([]float32{0, 2})
	r := ArithList(OpDiv, a, b)
	assert.Equal(t, NewFloat(0), r.At(0))
	assert.Equal(t, NewFloat(1), r.At(1))
}

func TestListConversionIntFloat(t *testing.T) {
	ints := NewIntList([]int32{1, 2, 3})
	floats := Coerce(ints, FloatList)
	assert.Equal(t, NewFloat(2), floats.At(1))

	back := Coerce(floats, IntList)
	assert.Equal(t, NewInt(2), back.At(1))
}

func TestListConversionVecFlattenAndGroup(t *testing.T) {
	vecs := NewVec3List([][3]float32{{1, 2, 3}, {4, 5, 6}})
	flat := Coerce(vecs, FloatList)
	assert.Equal(t, 6, flat.Len())

	grouped := Coerce(flat, Vec3List)
	assert.Equal(t, 2, grouped.Len())
	x, y, z := grouped.At(0).Vec3Components()
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{x, y, z})
}
