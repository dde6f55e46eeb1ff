// Package estimator defines the interface to the external
// pose-estimation model. A provider instance is constructed per request
// and closed when the request finishes, so no model state is shared
// across requests.
package estimator

import (
	"context"
	"errors"
	"image"

	"github.com/poselab/posecoach/internal/pose"
)

// ErrNoPose is returned when the model finds no human body in the image.
// Callers surface it as a client error, not a server fault.
var ErrNoPose = errors.New("no pose detected")

// Config carries the model settings shared by all providers.
type Config struct {
	Model               string
	DetectionConfidence float64
	TrackingConfidence  float64
}

// DefaultConfig returns the fixed single-image thresholds used by the
// analysis pipeline.
func DefaultConfig() Config {
	return Config{
		DetectionConfidence: 0.5,
		TrackingConfidence:  0.5,
	}
}

// Estimator detects body landmarks in a single image.
type Estimator interface {
	// Detect returns the named landmarks found in the image, or
	// ErrNoPose when no body is visible. Partial frames are valid.
	Detect(ctx context.Context, img image.Image) (pose.Frame, error)
	// Close releases the underlying model handle.
	Close() error
}

// Factory builds a fresh Estimator for one request.
type Factory func() (Estimator, error)
