package value

// ArithList applies op elementwise to two FloatList-coercible values,
// zipping to the length of the shorter operand (§8 boundary behavior) and
// returning 0.0 for any per-element division by zero rather than infinity —
// list arithmetic favors a finite, renderable result over IEEE semantics.
func ArithList(op Op, a, b Value) Value {
	af := Coerce(a, FloatList)
	bf := Coerce(b, FloatList)

	n := af.Len()
	if bf.Len() < n {
		n = bf.Len()
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		x := af.list.floats[i]
		y := bf.list.floats[i]
		if op == OpDiv && y == 0 {
			out[i] = 0
			continue
		}
		out[i] = floatOp(op, x, y)
	}
	return NewFloatList(out)
}
