package ollama

import (
	"errors"
	"testing"

	"github.com/poselab/posecoach/internal/estimator"
)

func TestParseLandmarks(t *testing.T) {
	raw := `{"detected": true, "landmarks": {"NOSE": {"x": 0.5, "y": 0.2, "z": -0.1}}}`

	frame, err := parseLandmarks(raw)
	if err != nil {
		t.Fatalf("parseLandmarks failed: %v", err)
	}
	nose, ok := frame.Point("NOSE")
	if !ok {
		t.Fatal("Expected NOSE in frame")
	}
	if nose.X != 0.5 || nose.Y != 0.2 || nose.Z != -0.1 {
		t.Errorf("Unexpected NOSE coordinates: %+v", nose)
	}
}

func TestParseLandmarksCodeFence(t *testing.T) {
	raw := "```json\n{\"detected\": true, \"landmarks\": {\"LEFT_KNEE\": {\"x\": 0.4, \"y\": 0.7, \"z\": 0.0}}}\n```"

	frame, err := parseLandmarks(raw)
	if err != nil {
		t.Fatalf("parseLandmarks failed on fenced reply: %v", err)
	}
	if _, ok := frame.Point("LEFT_KNEE"); !ok {
		t.Errorf("Expected LEFT_KNEE in frame, got %v", frame)
	}
}

func TestParseLandmarksSurroundingProse(t *testing.T) {
	raw := `Here are the landmarks I detected:
{"detected": true, "landmarks": {"NOSE": {"x": 0.5, "y": 0.2, "z": 0.0}}}
Let me know if you need anything else.`

	frame, err := parseLandmarks(raw)
	if err != nil {
		t.Fatalf("parseLandmarks failed on prose-wrapped reply: %v", err)
	}
	if _, ok := frame.Point("NOSE"); !ok {
		t.Errorf("Expected NOSE in frame, got %v", frame)
	}
}

func TestParseLandmarksNotDetected(t *testing.T) {
	_, err := parseLandmarks(`{"detected": false, "landmarks": {}}`)
	if !errors.Is(err, estimator.ErrNoPose) {
		t.Errorf("Expected ErrNoPose, got %v", err)
	}
}

func TestParseLandmarksFiltersUnknownNames(t *testing.T) {
	raw := `{"detected": true, "landmarks": {"NOSE": {"x": 0.5, "y": 0.2, "z": 0.0}, "THIRD_ARM": {"x": 0.1, "y": 0.1, "z": 0.1}}}`

	frame, err := parseLandmarks(raw)
	if err != nil {
		t.Fatalf("parseLandmarks failed: %v", err)
	}
	if len(frame) != 1 {
		t.Errorf("Expected hallucinated landmark filtered, got %v", frame)
	}
}

func TestParseLandmarksOnlyUnknownNames(t *testing.T) {
	raw := `{"detected": true, "landmarks": {"THIRD_ARM": {"x": 0.1, "y": 0.1, "z": 0.1}}}`

	_, err := parseLandmarks(raw)
	if !errors.Is(err, estimator.ErrNoPose) {
		t.Errorf("Expected ErrNoPose when nothing recognizable remains, got %v", err)
	}
}

func TestParseLandmarksGarbage(t *testing.T) {
	_, err := parseLandmarks("I cannot see any image.")
	if err == nil {
		t.Fatal("Expected error for non-JSON reply")
	}
	if errors.Is(err, estimator.ErrNoPose) {
		t.Error("Unparseable reply must not be reported as a missing pose")
	}
}

func TestSanitizeModelJSON(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{
			name:     "bare object",
			in:       `{"detected": true}`,
			expected: `{"detected": true}`,
		},
		{
			name:     "fenced with language tag",
			in:       "```json\n{\"detected\": true}\n```",
			expected: `{"detected": true}`,
		},
		{
			name:     "leading and trailing prose",
			in:       "Sure! {\"detected\": true} Hope that helps.",
			expected: `{"detected": true}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeModelJSON(tt.in); got != tt.expected {
				t.Errorf("sanitizeModelJSON(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}
