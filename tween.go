package tetraquery

import (
	"github.com/solarlune/tetraquery/scene"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation drives a property of every node of a Result from its current
// value to a target. There is no global animation manager: call Update
// every frame until Done.
type Animation struct {
	tween *gween.Tween
	apply []func(percent float64)
	Done  bool
}

func newAnimation(duration float32, fn ease.TweenFunc) *Animation {
	if fn == nil {
		fn = ease.Linear
	}
	return &Animation{tween: gween.New(0, 1, duration, fn)}
}

// Update advances the animation by dt seconds and applies the new values.
func (anim *Animation) Update(dt float32) {
	if anim.Done {
		return
	}

	p, finished := anim.tween.Update(dt)
	for _, apply := range anim.apply {
		apply(float64(p))
	}
	anim.Done = finished
}

// TweenPosition animates the local position of every node to the target.
func (r *Result) TweenPosition(to scene.Vector, duration float32, fn ease.TweenFunc) *Animation {
	anim := newAnimation(duration, fn)
	for _, n := range r.nodes {
		from := n.LocalPosition()
		anim.apply = append(anim.apply, func(p float64) {
			n.SetLocalPositionVec(from.Lerp(to, p))
		})
	}
	return anim
}

// TweenScale animates the local scale of every node to the target.
func (r *Result) TweenScale(to scene.Vector, duration float32, fn ease.TweenFunc) *Animation {
	anim := newAnimation(duration, fn)
	for _, n := range r.nodes {
		from := n.LocalScale()
		anim.apply = append(anim.apply, func(p float64) {
			n.SetLocalScaleVec(from.Lerp(to, p))
		})
	}
	return anim
}

// TweenQuaternion rotates every node to the target orientation along the
// shortest arc.
func (r *Result) TweenQuaternion(to scene.Quaternion, duration float32, fn ease.TweenFunc) *Animation {
	anim := newAnimation(duration, fn)
	for _, n := range r.nodes {
		from := n.LocalRotation()
		anim.apply = append(anim.apply, func(p float64) {
			n.SetLocalRotation(from.Slerp(to, p))
		})
	}
	return anim
}

// TweenRotation rotates every node to the target Euler angles. The
// rotation is interpolated as a quaternion, not per angle.
func (r *Result) TweenRotation(x, y, z float64, duration float32, fn ease.TweenFunc) *Animation {
	return r.TweenQuaternion(scene.NewQuaternionFromEuler(scene.NewEuler(x, y, z)), duration, fn)
}

// TweenOpacity animates the opacity of the first material of every node.
// Nodes without materials are skipped.
func (r *Result) TweenOpacity(to float32, duration float32, fn ease.TweenFunc) *Animation {
	anim := newAnimation(duration, fn)
	for _, n := range r.nodes {
		mat := n.Material()
		if mat == nil {
			continue
		}
		from := mat.Opacity
		anim.apply = append(anim.apply, func(p float64) {
			mat.Opacity = from + (to-from)*float32(p)
		})
	}
	return anim
}
