package pose

import (
	"github.com/go-gl/mathgl/mgl32"

	"md3-renderer/internal/md3"
)

// Orientation places a model in world space: an origin and three axis
// vectors (forward, left, up in the parent's frame).
type Orientation struct {
	Origin mgl32.Vec3
	Axis   [3]mgl32.Vec3
}

// Identity is the world frame.
func Identity() Orientation {
	return Orientation{Axis: [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// FromTag converts a tag to an orientation relative to its model.
func FromTag(t md3.Tag) Orientation {
	return Orientation{
		Origin: mgl32.Vec3(t.Position),
		Axis:   [3]mgl32.Vec3{t.Axis[0], t.Axis[1], t.Axis[2]},
	}
}

// Attach returns the world orientation of a child model hung on tag,
// where tag was read from the model placed at o.
func (o Orientation) Attach(tag md3.Tag) Orientation {
	child := Orientation{Origin: o.Origin}
	for i := 0; i < 3; i++ {
		child.Origin = child.Origin.Add(o.Axis[i].Mul(tag.Position[i]))
	}
	for i := 0; i < 3; i++ {
		var a mgl32.Vec3
		for k := 0; k < 3; k++ {
			a = a.Add(o.Axis[k].Mul(tag.Axis[i][k]))
		}
		child.Axis[i] = a
	}
	return child
}

// Transform maps a point from model space to world space.
func (o Orientation) Transform(v mgl32.Vec3) mgl32.Vec3 {
	p := o.Origin
	for i := 0; i < 3; i++ {
		p = p.Add(o.Axis[i].Mul(v[i]))
	}
	return p
}

// Rotate maps a direction from model space to world space.
func (o Orientation) Rotate(v mgl32.Vec3) mgl32.Vec3 {
	return o.Axis[0].Mul(v[0]).Add(o.Axis[1].Mul(v[1])).Add(o.Axis[2].Mul(v[2]))
}

// RotateLocal applies rot in the orientation's own frame, like the torso
// twist or head pitch of an aiming player.
func (o Orientation) RotateLocal(rot mgl32.Mat3) Orientation {
	m := mgl32.Mat3FromCols(o.Axis[0], o.Axis[1], o.Axis[2]).Mul3(rot)
	o.Axis = [3]mgl32.Vec3{m.Col(0), m.Col(1), m.Col(2)}
	return o
}
