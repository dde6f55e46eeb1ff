// Package ollama implements the pose estimator on top of a local Ollama
// vision model.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/poselab/posecoach/internal/estimator"
	"github.com/poselab/posecoach/internal/pose"
)

// Client is an Ollama-backed estimator.
type Client struct {
	client *api.Client
	model  string
	cfg    estimator.Config
}

// New creates an Ollama estimator. The server address comes from
// OLLAMA_URL (default http://localhost:11434); the model defaults to a
// vision-capable one and can be overridden with OLLAMA_MODEL or the
// estimator config.
func New(cfg estimator.Config) (*Client, error) {
	rawURL := os.Getenv("OLLAMA_URL")
	if rawURL == "" {
		rawURL = "http://localhost:11434"
	}
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid OLLAMA_URL: %w", err)
	}
	baseURL := &url.URL{Scheme: parsedURL.Scheme, Host: parsedURL.Host}

	model := cfg.Model
	if model == "" {
		model = os.Getenv("OLLAMA_MODEL")
	}
	if model == "" {
		model = "llama3.2-vision"
	}

	return &Client{
		client: api.NewClient(baseURL, http.DefaultClient),
		model:  model,
		cfg:    cfg,
	}, nil
}

const landmarkPrompt = `You are a human pose estimation system. Locate the single most prominent person in the image and report the 3D position of each visible body landmark.

Respond with ONLY a JSON object of the form:

{"detected": true, "landmarks": {"NOSE": {"x": 0.5, "y": 0.2, "z": -0.1}, ...}}

x and y are normalized to the image (0.0 = left/top, 1.0 = right/bottom); z is relative depth with 0.0 at the hips, negative toward the camera. Include only landmarks you can locate with confidence of at least %.2f. If no person is visible, respond {"detected": false, "landmarks": {}}.

Valid landmark names: %s`

// Detect sends the image to the vision model and parses the JSON
// landmark map from its reply.
func (c *Client) Detect(ctx context.Context, img image.Image) (pose.Frame, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	prompt := fmt.Sprintf(landmarkPrompt, c.cfg.DetectionConfidence, strings.Join(pose.LandmarkNames, ", "))
	streamFalse := false
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: prompt,
				Images:  []api.ImageData{api.ImageData(buf.Bytes())},
			},
		},
		Stream: &streamFalse,
		Options: map[string]any{
			"temperature": 0.0,
		},
	}

	var responseContent string
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		responseContent = resp.Message.Content
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama chat error: %w", err)
	}
	if responseContent == "" {
		return nil, fmt.Errorf("empty response from ollama")
	}

	return parseLandmarks(responseContent)
}

// Close is a no-op; the Ollama server owns the model lifetime.
func (c *Client) Close() error {
	return nil
}

// parseLandmarks extracts the landmark frame from a model reply,
// tolerating code fences and leading prose around the JSON object.
func parseLandmarks(raw string) (pose.Frame, error) {
	raw = sanitizeModelJSON(raw)

	var result struct {
		Detected  bool                  `json:"detected"`
		Landmarks map[string]pose.Point `json:"landmarks"`
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("failed to parse landmark response: %w", err)
	}

	if !result.Detected || len(result.Landmarks) == 0 {
		return nil, estimator.ErrNoPose
	}

	frame := make(pose.Frame, len(result.Landmarks))
	for name, p := range result.Landmarks {
		if pose.IsLandmark(name) {
			frame[name] = p
		}
	}
	if len(frame) == 0 {
		return nil, estimator.ErrNoPose
	}
	return frame, nil
}

// sanitizeModelJSON strips code fences and keeps only the outermost
// JSON object in the reply.
func sanitizeModelJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		if j := strings.LastIndex(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	raw = strings.TrimSpace(raw)

	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	return strings.TrimSpace(raw)
}
