package pose

import (
	"fmt"
	"strings"
)

// NoMatchScore is the sentinel score reported when a measurement shares
// no joints with a pose's reference data. It is deliberately far above
// any achievable mean deviation so auto-detection never picks such a
// pose over a real match.
const NoMatchScore = 999.0

// Compare scores a set of measured joint angles against one catalog
// pose. The score is the arithmetic mean of per-joint deviations from
// the reference range (zero when inside the range) over every joint
// present in both the measurement and the reference; joints the
// reference does not constrain are ignored. Hints describe how to move
// each out-of-range joint back into range.
func (c *Catalog) Compare(angles map[string]float64, poseName string) (float64, []string) {
	ranges := c.Ranges(poseName)

	var deviations []float64
	var hints []string
	for _, j := range Joints {
		measured, ok := angles[j.Name]
		if !ok {
			continue
		}
		r, ok := ranges[j.Name]
		if !ok {
			continue
		}
		switch {
		case measured < r.Min:
			diff := r.Min - measured
			deviations = append(deviations, diff)
			hints = append(hints, fmt.Sprintf("%s: increase by %.1f", jointTitle(j.Name), diff))
		case measured > r.Max:
			diff := measured - r.Max
			deviations = append(deviations, diff)
			hints = append(hints, fmt.Sprintf("%s: decrease by %.1f", jointTitle(j.Name), diff))
		default:
			deviations = append(deviations, 0)
		}
	}

	if len(deviations) == 0 {
		return NoMatchScore, hints
	}
	var sum float64
	for _, d := range deviations {
		sum += d
	}
	return sum / float64(len(deviations)), hints
}

// AutoDetect scores the measurement against every pose in catalog order
// and returns the best (strictly lowest) match. Ties keep the pose seen
// earlier. Hints are not returned; callers recompute them against the
// winning pose.
func (c *Catalog) AutoDetect(angles map[string]float64) (string, float64) {
	bestPose := ""
	bestScore := NoMatchScore
	for _, name := range c.names {
		score, _ := c.Compare(angles, name)
		if score < bestScore {
			bestScore = score
			bestPose = name
		}
	}
	return bestPose, bestScore
}

// jointTitle renders a joint name for hints: underscores become spaces
// and each word is capitalized ("left_knee" -> "Left Knee").
func jointTitle(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
