package pose

import "math"

// Angle computes the angle in degrees at vertex b between the vectors
// b→a and b→c. ok is false when either vector has zero length. The
// cosine is clamped to [-1, 1] before arccos to guard against
// floating-point overshoot on near-collinear points.
func Angle(a, b, c Point) (deg float64, ok bool) {
	v1x, v1y, v1z := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	v2x, v2y, v2z := c.X-b.X, c.Y-b.Y, c.Z-b.Z

	n1 := math.Sqrt(v1x*v1x + v1y*v1y + v1z*v1z)
	n2 := math.Sqrt(v2x*v2x + v2y*v2y + v2z*v2z)
	if n1 == 0 || n2 == 0 {
		return 0, false
	}

	cos := (v1x*v2x + v1y*v2y + v1z*v2z) / (n1 * n2)
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180 / math.Pi, true
}

// ExtractAngles measures every joint whose three landmarks are present
// in the frame. Joints with missing landmarks or degenerate geometry
// are omitted rather than reported as errors; a partial result is the
// expected outcome when the estimator returns an incomplete frame.
func ExtractAngles(frame Frame) map[string]float64 {
	angles := make(map[string]float64, len(Joints))
	for _, j := range Joints {
		a, ok := frame.Point(j.Proximal)
		if !ok {
			continue
		}
		b, ok := frame.Point(j.Vertex)
		if !ok {
			continue
		}
		c, ok := frame.Point(j.Distal)
		if !ok {
			continue
		}
		if deg, ok := Angle(a, b, c); ok {
			angles[j.Name] = deg
		}
	}
	return angles
}
