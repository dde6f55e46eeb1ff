package pose

// Point is a 3D body-landmark coordinate as reported by the estimator.
// Coordinates are normalized to the image frame; Z is relative depth.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Frame holds one detected set of named landmarks for a single image.
type Frame map[string]Point

// Point returns the landmark with the given name, if the estimator
// reported it. Estimators are allowed to return partial frames.
func (f Frame) Point(name string) (Point, bool) {
	p, ok := f[name]
	return p, ok
}

// LandmarkNames lists the 33 standard body landmarks, in the order the
// estimation model indexes them. Every estimator provider maps its raw
// output onto these names.
var LandmarkNames = []string{
	"NOSE",
	"LEFT_EYE_INNER",
	"LEFT_EYE",
	"LEFT_EYE_OUTER",
	"RIGHT_EYE_INNER",
	"RIGHT_EYE",
	"RIGHT_EYE_OUTER",
	"LEFT_EAR",
	"RIGHT_EAR",
	"MOUTH_LEFT",
	"MOUTH_RIGHT",
	"LEFT_SHOULDER",
	"RIGHT_SHOULDER",
	"LEFT_ELBOW",
	"RIGHT_ELBOW",
	"LEFT_WRIST",
	"RIGHT_WRIST",
	"LEFT_PINKY",
	"RIGHT_PINKY",
	"LEFT_INDEX",
	"RIGHT_INDEX",
	"LEFT_THUMB",
	"RIGHT_THUMB",
	"LEFT_HIP",
	"RIGHT_HIP",
	"LEFT_KNEE",
	"RIGHT_KNEE",
	"LEFT_ANKLE",
	"RIGHT_ANKLE",
	"LEFT_HEEL",
	"RIGHT_HEEL",
	"LEFT_FOOT_INDEX",
	"RIGHT_FOOT_INDEX",
}

// IsLandmark reports whether name is one of the standard landmark names.
func IsLandmark(name string) bool {
	for _, n := range LandmarkNames {
		if n == name {
			return true
		}
	}
	return false
}
