package flightplan

// Route is the ordered list of taxiway and runway segments an aircraft has
// been cleared along, e.g. ["P3", "P", "B1", "14R"].
type Route struct {
	Segments            []string
	CurrentSegmentIndex int
}

func NewRoute(segments ...string) Route {
	return Route{Segments: append([]string(nil), segments...)}
}

// Current returns the segment the aircraft is on, or "" once the route is
// complete.
func (r Route) Current() string {
	if r.CurrentSegmentIndex < 0 || r.CurrentSegmentIndex >= len(r.Segments) {
		return ""
	}
	return r.Segments[r.CurrentSegmentIndex]
}

func (r Route) Complete() bool {
	return r.CurrentSegmentIndex >= len(r.Segments)
}

// AdvanceTo moves progress forward to the first segment at or after the
// current one named name. Progress never moves backward; it returns false
// if name is not ahead on the route.
func (r *Route) AdvanceTo(name string) bool {
	for i := r.CurrentSegmentIndex; i < len(r.Segments); i++ {
		if r.Segments[i] == name {
			r.CurrentSegmentIndex = i
			return true
		}
	}
	return false
}

// Remaining returns the segments from the current one onward.
func (r Route) Remaining() []string {
	if r.Complete() {
		return nil
	}
	return append([]string(nil), r.Segments[r.CurrentSegmentIndex:]...)
}
