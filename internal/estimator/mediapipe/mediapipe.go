// Package mediapipe talks to a MediaPipe landmarker sidecar over HTTP.
// The sidecar wraps the native pose model and returns named landmarks
// for a single image.
package mediapipe

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/poselab/posecoach/internal/estimator"
	"github.com/poselab/posecoach/internal/pose"
)

// Client is an estimator backed by the landmarker sidecar.
type Client struct {
	baseURL string
	cfg     estimator.Config
	http    *http.Client
}

// New returns a sidecar-backed estimator. The sidecar address comes
// from LANDMARKER_URL, defaulting to the local development port.
func New(cfg estimator.Config) (*Client, error) {
	baseURL := os.Getenv("LANDMARKER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9090"
	}
	return &Client{
		baseURL: baseURL,
		cfg:     cfg,
		http:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type landmarkRequest struct {
	Image               string  `json:"image"`
	StaticImageMode     bool    `json:"static_image_mode"`
	DetectionConfidence float64 `json:"min_detection_confidence"`
	TrackingConfidence  float64 `json:"min_tracking_confidence"`
}

type landmarkResponse struct {
	Detected  bool                  `json:"detected"`
	Landmarks map[string]pose.Point `json:"landmarks"`
}

// Detect sends the image to the sidecar and maps its response onto a
// landmark frame.
func (c *Client) Detect(ctx context.Context, img image.Image) (pose.Frame, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	requestBody, err := json.Marshal(landmarkRequest{
		Image:               base64.StdEncoding.EncodeToString(buf.Bytes()),
		StaticImageMode:     true,
		DetectionConfidence: c.cfg.DetectionConfidence,
		TrackingConfidence:  c.cfg.TrackingConfidence,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/landmarks", bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call landmarker: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("landmarker returned status %d: %s", resp.StatusCode, string(body))
	}

	var response landmarkResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode landmarker response: %w", err)
	}

	if !response.Detected || len(response.Landmarks) == 0 {
		return nil, estimator.ErrNoPose
	}

	frame := make(pose.Frame, len(response.Landmarks))
	for name, p := range response.Landmarks {
		if pose.IsLandmark(name) {
			frame[name] = p
		}
	}
	if len(frame) == 0 {
		return nil, estimator.ErrNoPose
	}
	return frame, nil
}

// Close is a no-op; the sidecar owns the model lifetime.
func (c *Client) Close() error {
	return nil
}
