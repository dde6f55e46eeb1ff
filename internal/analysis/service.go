// Package analysis runs the end-to-end pipeline for one image: detect
// landmarks, measure joint angles, resolve the target pose, and score
// the attempt against the reference catalog.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"

	"github.com/poselab/posecoach/internal/estimator"
	"github.com/poselab/posecoach/internal/estimator/gemini"
	"github.com/poselab/posecoach/internal/estimator/mediapipe"
	ollamaest "github.com/poselab/posecoach/internal/estimator/ollama"
	"github.com/poselab/posecoach/internal/models"
	"github.com/poselab/posecoach/internal/pose"
)

// ErrUnknownPose is returned when a manually requested pose is not in
// the reference catalog.
var ErrUnknownPose = errors.New("unknown pose")

// maxModelSide caps the long side of the frame sent to the estimator;
// larger uploads are downscaled first.
const maxModelSide = 1280

// Service orchestrates the analysis pipeline. A fresh estimator is
// constructed per call and released when the call finishes, so the
// service itself holds no model state and is safe for concurrent use.
type Service struct {
	catalog      *pose.Catalog
	newEstimator estimator.Factory
}

// NewService builds a service using the named estimator provider
// ("mediapipe", "gemini", or "ollama"). An empty provider falls back to
// POSE_PROVIDER, then to the mediapipe sidecar.
func NewService(catalog *pose.Catalog, provider string) (*Service, error) {
	if provider == "" {
		provider = os.Getenv("POSE_PROVIDER")
	}
	if provider == "" {
		provider = "mediapipe"
	}

	cfg := estimator.DefaultConfig()

	var factory estimator.Factory
	switch provider {
	case "mediapipe":
		factory = func() (estimator.Estimator, error) { return mediapipe.New(cfg) }
	case "gemini":
		factory = func() (estimator.Estimator, error) { return gemini.New(cfg) }
	case "ollama":
		factory = func() (estimator.Estimator, error) { return ollamaest.New(cfg) }
	default:
		return nil, fmt.Errorf("unsupported estimator provider: %s", provider)
	}

	slog.Info("Analysis service configured", "provider", provider)
	return &Service{catalog: catalog, newEstimator: factory}, nil
}

// NewServiceWithFactory builds a service around an explicit estimator
// factory.
func NewServiceWithFactory(catalog *pose.Catalog, factory estimator.Factory) *Service {
	return &Service{catalog: catalog, newEstimator: factory}
}

// Catalog returns the reference catalog the service scores against.
func (s *Service) Catalog() *pose.Catalog {
	return s.catalog
}

// Analyze runs the pipeline on a decoded image. When poseName is empty
// the best-matching catalog pose is auto-detected; otherwise the named
// pose is scored (ErrUnknownPose if it is not in the catalog). Hints are
// always computed against the resolved pose.
func (s *Service) Analyze(ctx context.Context, img image.Image, poseName string) (*models.AnalysisResult, error) {
	if poseName != "" && !s.catalog.Has(poseName) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPose, poseName)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxModelSide || bounds.Dy() > maxModelSide {
		img = imaging.Fit(img, maxModelSide, maxModelSide, imaging.Lanczos)
	}

	est, err := s.newEstimator()
	if err != nil {
		return nil, fmt.Errorf("failed to create estimator: %w", err)
	}
	defer est.Close()

	frame, err := est.Detect(ctx, img)
	if err != nil {
		return nil, err
	}

	angles := pose.ExtractAngles(frame)

	var score float64
	if poseName == "" {
		poseName, score = s.catalog.AutoDetect(angles)
		if poseName == "" {
			// Every pose scored the sentinel: the frame had no
			// measurable joints.
			return nil, fmt.Errorf("%w: no measurable joints", estimator.ErrNoPose)
		}
	} else {
		score, _ = s.catalog.Compare(angles, poseName)
	}

	_, hints := s.catalog.Compare(angles, poseName)
	if hints == nil {
		hints = []string{}
	}

	slog.Info("Image analyzed", "pose", poseName, "score", score, "joints", len(angles), "hints", len(hints))

	return &models.AnalysisResult{
		PoseName: poseName,
		Score:    score,
		Hints:    hints,
		Angles:   angles,
	}, nil
}
