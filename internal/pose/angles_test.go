package pose

import (
	"math"
	"testing"
)

func TestAngleRightAngle(t *testing.T) {
	a := Point{X: 1, Y: 0, Z: 0}
	b := Point{X: 0, Y: 0, Z: 0}
	c := Point{X: 0, Y: 1, Z: 0}

	deg, ok := Angle(a, b, c)
	if !ok {
		t.Fatal("Angle returned ok=false for valid points")
	}
	if math.Abs(deg-90) > 1e-9 {
		t.Errorf("Expected 90 degrees, got %f", deg)
	}
}

func TestAngleCollinear(t *testing.T) {
	// Opposite directions from the vertex: a straight line.
	a := Point{X: -1, Y: 0, Z: 0}
	b := Point{X: 0, Y: 0, Z: 0}
	c := Point{X: 1, Y: 0, Z: 0}

	deg, ok := Angle(a, b, c)
	if !ok {
		t.Fatal("Angle returned ok=false for valid points")
	}
	if math.Abs(deg-180) > 1e-9 {
		t.Errorf("Expected 180 degrees, got %f", deg)
	}
}

func TestAngleSameDirection(t *testing.T) {
	a := Point{X: 1, Y: 1, Z: 1}
	b := Point{X: 0, Y: 0, Z: 0}
	c := Point{X: 2, Y: 2, Z: 2}

	deg, ok := Angle(a, b, c)
	if !ok {
		t.Fatal("Angle returned ok=false for valid points")
	}
	// Parallel vectors can push the cosine slightly above 1; the clamp
	// must keep the result a real 0 instead of NaN.
	if math.IsNaN(deg) {
		t.Fatal("Angle returned NaN for parallel vectors")
	}
	if math.Abs(deg) > 1e-6 {
		t.Errorf("Expected 0 degrees, got %f", deg)
	}
}

func TestAngleAlwaysInRange(t *testing.T) {
	points := []Point{
		{X: 0.1, Y: 0.9, Z: -0.3},
		{X: 0.5, Y: 0.5, Z: 0.0},
		{X: 0.7, Y: 0.2, Z: 0.4},
		{X: -1.0, Y: 2.0, Z: 3.0},
		{X: 0.33, Y: 0.66, Z: 0.99},
	}
	for i, a := range points {
		for j, b := range points {
			for k, c := range points {
				if i == j || j == k {
					continue
				}
				deg, ok := Angle(a, b, c)
				if !ok {
					continue
				}
				if deg < 0 || deg > 180 || math.IsNaN(deg) {
					t.Errorf("Angle(%v, %v, %v) = %f, outside [0, 180]", a, b, c, deg)
				}
			}
		}
	}
}

func TestAngleDegenerateVector(t *testing.T) {
	b := Point{X: 0.5, Y: 0.5, Z: 0}
	c := Point{X: 1, Y: 1, Z: 0}

	if _, ok := Angle(b, b, c); ok {
		t.Error("Expected ok=false when proximal coincides with vertex")
	}
	if _, ok := Angle(c, b, b); ok {
		t.Error("Expected ok=false when distal coincides with vertex")
	}
}

func TestExtractAnglesPartialFrame(t *testing.T) {
	// Only the left knee triplet is present; every other joint must be
	// silently omitted.
	frame := Frame{
		"LEFT_HIP":   {X: 0, Y: 1, Z: 0},
		"LEFT_KNEE":  {X: 0, Y: 0, Z: 0},
		"LEFT_ANKLE": {X: 1, Y: 0, Z: 0},
	}

	angles := ExtractAngles(frame)
	if len(angles) != 1 {
		t.Fatalf("Expected 1 angle, got %d: %v", len(angles), angles)
	}
	deg, ok := angles["left_knee"]
	if !ok {
		t.Fatal("Expected left_knee in angle map")
	}
	if math.Abs(deg-90) > 1e-9 {
		t.Errorf("Expected 90 degrees at left knee, got %f", deg)
	}
}

func TestExtractAnglesMissingLandmark(t *testing.T) {
	frame := Frame{
		"LEFT_HIP":  {X: 0, Y: 1, Z: 0},
		"LEFT_KNEE": {X: 0, Y: 0, Z: 0},
		// LEFT_ANKLE missing
	}

	angles := ExtractAngles(frame)
	if len(angles) != 0 {
		t.Errorf("Expected no angles for incomplete triplet, got %v", angles)
	}
}

func TestExtractAnglesDegenerateGeometry(t *testing.T) {
	// Hip coincides with knee: zero-length vector, joint omitted.
	frame := Frame{
		"LEFT_HIP":   {X: 0, Y: 0, Z: 0},
		"LEFT_KNEE":  {X: 0, Y: 0, Z: 0},
		"LEFT_ANKLE": {X: 1, Y: 0, Z: 0},
	}

	angles := ExtractAngles(frame)
	if _, ok := angles["left_knee"]; ok {
		t.Error("Expected degenerate joint to be omitted")
	}
}

func TestJointsResolveAgainstLandmarkNames(t *testing.T) {
	for _, j := range Joints {
		for _, lm := range []string{j.Proximal, j.Vertex, j.Distal} {
			if !IsLandmark(lm) {
				t.Errorf("Joint %s references unknown landmark %s", j.Name, lm)
			}
		}
	}
}
