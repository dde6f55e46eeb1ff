// Package gemini implements the pose estimator on top of Google Gemini
// vision models, constraining the response to a landmark schema.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/poselab/posecoach/internal/estimator"
	"github.com/poselab/posecoach/internal/pose"
)

// Client is a Gemini-backed estimator.
type Client struct {
	client *genai.Client
	model  string
	cfg    estimator.Config
}

// New creates a Gemini estimator. GEMINI_API_KEY must be set; the model
// defaults to a vision-capable flash model and can be overridden with
// GEMINI_MODEL or the estimator config.
func New(cfg estimator.Config) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	model := cfg.Model
	if model == "" {
		model = os.Getenv("GEMINI_MODEL")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create new gemini client: %w", err)
	}

	return &Client{client: client, model: model, cfg: cfg}, nil
}

const landmarkPrompt = `You are a human pose estimation system. Locate the single most prominent person in the image and report the 3D position of each visible body landmark.

Coordinates: x and y are normalized to the image (0.0 = left/top, 1.0 = right/bottom); z is relative depth with 0.0 at the hips, negative toward the camera.

Report only landmarks you can actually locate with confidence of at least %.2f. If no person is visible, set "detected" to false and return an empty landmark list.

Valid landmark names: %s`

// Detect asks the model for landmark positions and maps the structured
// response onto a frame.
func (c *Client) Detect(ctx context.Context, img image.Image) (pose.Frame, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.0)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = landmarkSchema()

	prompt := fmt.Sprintf(landmarkPrompt, c.cfg.DetectionConfidence, strings.Join(pose.LandmarkNames, ", "))
	resp, err := model.GenerateContent(ctx,
		genai.Text(prompt),
		genai.ImageData("jpeg", buf.Bytes()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned from Gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("empty content returned from Gemini")
	}

	txt, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response format from Gemini")
	}

	var result struct {
		Detected  bool `json:"detected"`
		Landmarks []struct {
			Name string  `json:"name"`
			X    float64 `json:"x"`
			Y    float64 `json:"y"`
			Z    float64 `json:"z"`
		} `json:"landmarks"`
	}
	if err := json.Unmarshal([]byte(txt), &result); err != nil {
		return nil, fmt.Errorf("failed to parse landmark response: %w", err)
	}

	if !result.Detected || len(result.Landmarks) == 0 {
		return nil, estimator.ErrNoPose
	}

	frame := make(pose.Frame, len(result.Landmarks))
	for _, lm := range result.Landmarks {
		if pose.IsLandmark(lm.Name) {
			frame[lm.Name] = pose.Point{X: lm.X, Y: lm.Y, Z: lm.Z}
		}
	}
	if len(frame) == 0 {
		return nil, estimator.ErrNoPose
	}
	return frame, nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	return c.client.Close()
}

func landmarkSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"detected": {Type: genai.TypeBoolean},
			"landmarks": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name": {Type: genai.TypeString, Enum: pose.LandmarkNames},
						"x":    {Type: genai.TypeNumber},
						"y":    {Type: genai.TypeNumber},
						"z":    {Type: genai.TypeNumber},
					},
					Required: []string{"name", "x", "y", "z"},
				},
			},
		},
		Required: []string{"detected", "landmarks"},
	}
}
