package pose

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed poses.yaml
var posesYAML []byte

// Range is the acceptable [Min, Max] angle in degrees for one joint in
// one pose.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Entry is one pose's reference data.
type Entry struct {
	Name   string           `yaml:"name"`
	Joints map[string]Range `yaml:"joints"`
}

// Catalog holds the reference angle ranges for every known pose. It is
// built once at startup and read-only afterwards, so it is safe to
// share across requests.
type Catalog struct {
	names  []string
	ranges map[string]map[string]Range
}

// LoadCatalog parses the bundled reference table.
func LoadCatalog() (*Catalog, error) {
	var file struct {
		Poses []Entry `yaml:"poses"`
	}
	if err := yaml.Unmarshal(posesYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse pose catalog: %w", err)
	}
	return NewCatalog(file.Poses)
}

// NewCatalog builds a catalog from entries, preserving their order, and
// validates the invariants: unique pose names, known joint names, and
// min <= max for every range.
func NewCatalog(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("pose catalog is empty")
	}

	jointNames := make(map[string]bool, len(Joints))
	for _, j := range Joints {
		jointNames[j.Name] = true
	}

	c := &Catalog{
		names:  make([]string, 0, len(entries)),
		ranges: make(map[string]map[string]Range, len(entries)),
	}
	for _, p := range entries {
		if _, dup := c.ranges[p.Name]; dup {
			return nil, fmt.Errorf("duplicate pose %q in catalog", p.Name)
		}
		if len(p.Joints) == 0 {
			return nil, fmt.Errorf("pose %q has no joint ranges", p.Name)
		}
		for joint, r := range p.Joints {
			if !jointNames[joint] {
				return nil, fmt.Errorf("pose %q references unknown joint %q", p.Name, joint)
			}
			if r.Min > r.Max {
				return nil, fmt.Errorf("pose %q joint %q: min %.1f exceeds max %.1f", p.Name, joint, r.Min, r.Max)
			}
		}
		c.names = append(c.names, p.Name)
		c.ranges[p.Name] = p.Joints
	}
	return c, nil
}

// Names returns all pose names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Has reports whether the catalog knows the given pose.
func (c *Catalog) Has(name string) bool {
	_, ok := c.ranges[name]
	return ok
}

// Ranges returns the per-joint reference ranges for a pose. The pose
// must exist in the catalog; asking for an unknown pose is a
// programming error.
func (c *Catalog) Ranges(name string) map[string]Range {
	r, ok := c.ranges[name]
	if !ok {
		panic(fmt.Sprintf("pose: unknown pose %q", name))
	}
	return r
}
