package analysis

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/poselab/posecoach/internal/estimator"
	"github.com/poselab/posecoach/internal/pose"
)

type stubEstimator struct {
	frame  pose.Frame
	err    error
	closed bool
}

func (s *stubEstimator) Detect(ctx context.Context, img image.Image) (pose.Frame, error) {
	return s.frame, s.err
}

func (s *stubEstimator) Close() error {
	s.closed = true
	return nil
}

// straightLegFrame yields a single measurable joint: a fully extended
// left knee (180 degrees).
func straightLegFrame() pose.Frame {
	return pose.Frame{
		"LEFT_HIP":   {X: 0, Y: 1, Z: 0},
		"LEFT_KNEE":  {X: 0, Y: 0.5, Z: 0},
		"LEFT_ANKLE": {X: 0, Y: 0, Z: 0},
	}
}

func testCatalog(t *testing.T) *pose.Catalog {
	t.Helper()
	catalog, err := pose.NewCatalog([]pose.Entry{
		{Name: "straight", Joints: map[string]pose.Range{
			"left_knee": {Min: 160, Max: 180},
		}},
		{Name: "bent", Joints: map[string]pose.Range{
			"left_knee": {Min: 80, Max: 100},
		}},
	})
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return catalog
}

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 100, 100))
}

func TestAnalyzeAutoDetect(t *testing.T) {
	stub := &stubEstimator{frame: straightLegFrame()}
	service := NewServiceWithFactory(testCatalog(t), func() (estimator.Estimator, error) {
		return stub, nil
	})

	result, err := service.Analyze(context.Background(), testImage(), "")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.PoseName != "straight" {
		t.Errorf("Expected auto-detected pose straight, got %s", result.PoseName)
	}
	if result.Score != 0 {
		t.Errorf("Expected score 0, got %f", result.Score)
	}
	if result.Hints == nil || len(result.Hints) != 0 {
		t.Errorf("Expected empty non-nil hints, got %v", result.Hints)
	}
	if _, ok := result.Angles["left_knee"]; !ok {
		t.Errorf("Expected left_knee in angles, got %v", result.Angles)
	}
	if !stub.closed {
		t.Error("Estimator was not closed after analysis")
	}
}

func TestAnalyzeManualPose(t *testing.T) {
	service := NewServiceWithFactory(testCatalog(t), func() (estimator.Estimator, error) {
		return &stubEstimator{frame: straightLegFrame()}, nil
	})

	result, err := service.Analyze(context.Background(), testImage(), "bent")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.PoseName != "bent" {
		t.Errorf("Expected bent, got %s", result.PoseName)
	}
	// Straight leg (180) against the 80..100 range: 80 over the max.
	if result.Score != 80 {
		t.Errorf("Expected score 80, got %f", result.Score)
	}
	if len(result.Hints) != 1 || result.Hints[0] != "Left Knee: decrease by 80.0" {
		t.Errorf("Unexpected hints: %v", result.Hints)
	}
}

func TestAnalyzeUnknownManualPose(t *testing.T) {
	service := NewServiceWithFactory(testCatalog(t), func() (estimator.Estimator, error) {
		t.Fatal("Estimator should not be constructed for an unknown pose")
		return nil, nil
	})

	_, err := service.Analyze(context.Background(), testImage(), "no_such_pose")
	if !errors.Is(err, ErrUnknownPose) {
		t.Errorf("Expected ErrUnknownPose, got %v", err)
	}
}

func TestAnalyzeNoPoseDetected(t *testing.T) {
	stub := &stubEstimator{err: estimator.ErrNoPose}
	service := NewServiceWithFactory(testCatalog(t), func() (estimator.Estimator, error) {
		return stub, nil
	})

	_, err := service.Analyze(context.Background(), testImage(), "")
	if !errors.Is(err, estimator.ErrNoPose) {
		t.Errorf("Expected ErrNoPose, got %v", err)
	}
	if !stub.closed {
		t.Error("Estimator was not closed after a failed detection")
	}
}

func TestAnalyzeNoMeasurableJoints(t *testing.T) {
	// A frame with only face landmarks produces no joint angles, so
	// auto-detection has nothing to match.
	stub := &stubEstimator{frame: pose.Frame{
		"NOSE": {X: 0.5, Y: 0.2, Z: 0},
	}}
	service := NewServiceWithFactory(testCatalog(t), func() (estimator.Estimator, error) {
		return stub, nil
	})

	_, err := service.Analyze(context.Background(), testImage(), "")
	if !errors.Is(err, estimator.ErrNoPose) {
		t.Errorf("Expected ErrNoPose for unmeasurable frame, got %v", err)
	}
}

func TestNewServiceRejectsUnknownProvider(t *testing.T) {
	if _, err := NewService(testCatalog(t), "sorcery"); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
