package pose

// Joint names one measured body angle and the three landmarks that
// define it: the angle at Vertex between the Vertex→Proximal and
// Vertex→Distal vectors.
type Joint struct {
	Name     string
	Proximal string
	Vertex   string
	Distal   string
}

// Joints is the fixed set of angles measured per image. Reference
// ranges in the catalog are keyed by these joint names.
var Joints = []Joint{
	{"left_knee", "LEFT_HIP", "LEFT_KNEE", "LEFT_ANKLE"},
	{"right_knee", "RIGHT_HIP", "RIGHT_KNEE", "RIGHT_ANKLE"},
	{"left_elbow", "LEFT_SHOULDER", "LEFT_ELBOW", "LEFT_WRIST"},
	{"right_elbow", "RIGHT_SHOULDER", "RIGHT_ELBOW", "RIGHT_WRIST"},
	{"left_shoulder", "LEFT_ELBOW", "LEFT_SHOULDER", "LEFT_HIP"},
	{"right_shoulder", "RIGHT_ELBOW", "RIGHT_SHOULDER", "RIGHT_HIP"},
	{"left_hip", "RIGHT_HIP", "LEFT_HIP", "LEFT_KNEE"},
	{"right_hip", "LEFT_HIP", "RIGHT_HIP", "RIGHT_KNEE"},
	{"neck", "LEFT_SHOULDER", "NOSE", "RIGHT_SHOULDER"},
	{"spine", "LEFT_HIP", "RIGHT_HIP", "NOSE"},
}
