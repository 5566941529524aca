package route

// BuildWindow returns up to size consecutive waypoints of r starting at
// start. It never wraps or pads, and returns an empty window for None. The
// result does not alias r.
func BuildWindow(r Route, start, size int) Route {
	if start < 0 || start >= len(r) || size <= 0 {
		return Route{}
	}
	end := min(start+size, len(r))
	window := make(Route, end-start)
	copy(window, r[start:end])
	return window
}
