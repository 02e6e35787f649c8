package core

import "math"

// ONB is an orthonormal basis whose W axis is aligned with a chosen direction
type ONB struct {
	U, V, W Vec3
}

// NewONBFromW builds a basis around n (normalized internally)
func NewONBFromW(n Vec3) ONB {
	w := n.Normalize()

	var a Vec3
	if math.Abs(w.X) > 0.9 {
		a = NewVec3(0, 1, 0)
	} else {
		a = NewVec3(1, 0, 0)
	}

	v := w.Cross(a).Normalize()
	u := w.Cross(v)

	return ONB{U: u, V: v, W: w}
}

// Local maps coordinates expressed in this basis to world space
func (o ONB) Local(a Vec3) Vec3 {
	return o.U.Multiply(a.X).Add(o.V.Multiply(a.Y)).Add(o.W.Multiply(a.Z))
}
