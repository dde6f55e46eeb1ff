package models

// AnalysisResult is the response body for a single analyzed image.
type AnalysisResult struct {
	PoseName string             `json:"pose_name"`
	Score    float64            `json:"score"`
	Hints    []string           `json:"hints"`
	Angles   map[string]float64 `json:"angles"`
}

// AttemptRecord is one persisted analysis attempt as returned by the
// history endpoint. Hints are stored pipe-joined.
type AttemptRecord struct {
	ID       int64   `json:"id"`
	PoseName string  `json:"pose_name"`
	Score    float64 `json:"score"`
	Success  bool    `json:"success"`
	Hints    string  `json:"hints"`
	// CreatedAt is server-assigned (RFC 3339). Not part of the history
	// response shape; carried for the export command.
	CreatedAt string `json:"-"`
}
