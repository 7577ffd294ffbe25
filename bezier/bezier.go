// Package bezier evaluates Bézier curves on manifolds by the de Casteljau
// corner-cutting recursion with shortest geodesics in place of straight
// lines. A composite curve concatenates segments over the global parameter
// domain [0, m] for m segments.
package bezier

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/manifoldopt/manifold"
)

// ErrDomain is returned when a composite curve is evaluated outside its
// parameter domain.
var ErrDomain = errors.New("parameter outside the curve domain")

// Segment is the ordered control-point list b_0..b_n of one Bézier segment
// of degree n.
type Segment [][]float64

// Evaluate computes the point of the segment at parameter t in [0,1]. A
// two-point segment is the geodesic from b_0 to b_1; higher degrees
// recursively evaluate the two sub-curves on b_0..b_{n-1} and b_1..b_n and
// connect the results by a geodesic at the same parameter.
func Evaluate(m manifold.Manifold, seg Segment, t float64) []float64 {
	switch len(seg) {
	case 0:
		return nil
	case 1:
		return append([]float64(nil), seg[0]...)
	case 2:
		return m.Geodesic(seg[0], seg[1], t)
	}
	a := Evaluate(m, seg[:len(seg)-1], t)
	b := Evaluate(m, seg[1:], t)
	return m.Geodesic(a, b, t)
}

// EvaluateComposite computes the point of the composite curve at the global
// parameter u in [0, m]. Parameter u selects segment ceil(u) (at least 1)
// and is remapped to that segment's local parameter in [0,1].
func EvaluateComposite(m manifold.Manifold, segs []Segment, u float64) ([]float64, error) {
	n := len(segs)
	if n == 0 {
		return nil, fmt.Errorf("%w: curve has no segments", ErrDomain)
	}
	if math.IsNaN(u) || u < 0 || u > float64(n) {
		return nil, fmt.Errorf("%w: %g not in [0, %d]", ErrDomain, u, n)
	}
	i := int(math.Ceil(u))
	if i < 1 {
		i = 1
	}
	return Evaluate(m, segs[i-1], u-float64(i-1)), nil
}

// JunctionPoints returns the first control point of every segment plus the
// final point of the last segment, m+1 points for m segments.
func JunctionPoints(segs []Segment) [][]float64 {
	out := make([][]float64, 0, len(segs)+1)
	for _, s := range segs {
		out = append(out, s[0])
	}
	if n := len(segs); n > 0 {
		last := segs[n-1]
		out = append(out, last[len(last)-1])
	}
	return out
}

// InnerPoints returns the control points strictly between each segment's
// endpoints, concatenated in segment order. A degree-n segment contributes
// n-1 points.
func InnerPoints(segs []Segment) [][]float64 {
	var out [][]float64
	for _, s := range segs {
		if len(s) > 2 {
			out = append(out, s[1:len(s)-1]...)
		}
	}
	return out
}

// ControlPoints returns the flattened control-point list of the composite
// curve with the shared junction points merged: the full first segment
// followed by every later segment without its first point.
func ControlPoints(segs []Segment) [][]float64 {
	var out [][]float64
	for i, s := range segs {
		if i == 0 {
			out = append(out, s...)
			continue
		}
		out = append(out, s[1:]...)
	}
	return out
}

// JunctionTangents returns, per segment, the log-map vectors from the
// segment's start toward its second control point and from its end toward
// its second-to-last, 2m vectors for m segments. Comparing the incoming and
// outgoing vectors at a shared junction checks geometric continuity across
// segments.
func JunctionTangents(m manifold.Manifold, segs []Segment) [][]float64 {
	out := make([][]float64, 0, 2*len(segs))
	for _, s := range segs {
		out = append(out, m.Log(s[0], s[1]))
		out = append(out, m.Log(s[len(s)-1], s[len(s)-2]))
	}
	return out
}
