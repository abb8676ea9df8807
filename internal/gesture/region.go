package gesture

// Region is a clickable on-screen control. Name is the action identifier
// the control dispatches ("start", "levels", "2", ...).
type Region struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	// Z orders overlapping regions; higher is on top.
	Z int `json:"z"`
}

// Contains reports whether p lies inside the region.
func (r Region) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Hover returns the region under p. When regions overlap the highest Z
// wins; among equal Z the one listed first wins.
func Hover(regions []Region, p Point) (Region, bool) {
	best := -1
	for i, r := range regions {
		if !r.Contains(p) {
			continue
		}
		if best < 0 || r.Z > regions[best].Z {
			best = i
		}
	}
	if best < 0 {
		return Region{}, false
	}
	return regions[best], true
}
