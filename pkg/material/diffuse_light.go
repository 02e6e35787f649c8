package material

import (
	"github.com/jayden-chan/rtiow/pkg/core"
)

// DiffuseLight is a one-sided area emitter that never scatters
type DiffuseLight struct {
	Emit Texture
}

// NewDiffuseLight creates a light emitting a constant color
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emit: NewConstantTexture(emission)}
}

// Scatter absorbs every incoming ray
func (l *DiffuseLight) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{}, false
}

// ScatteringPDF is zero since lights never scatter
func (l *DiffuseLight) ScatteringPDF(rayIn core.Ray, hit HitRecord, scattered core.Ray) float64 {
	return 0
}

// Emitted returns the texture color on the side the outward normal faces, black on the back
func (l *DiffuseLight) Emitted(rayIn core.Ray, hit HitRecord) core.Vec3 {
	if hit.Normal.Dot(rayIn.Direction) < 0 {
		return l.Emit.Value(hit.U, hit.V, hit.Point)
	}
	return core.Vec3{}
}
