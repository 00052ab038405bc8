package pathkit

// ParsePoints parses a flat list of comma or whitespace separated
// coordinates, as used by polyline and polygon points, into points.
// An odd number of coordinates or a non-numeric token yields a
// *MalformedPathError with Command 0.
func ParsePoints(text string) ([]Point, error) {
	s := &pathScanner{b: []byte(text)}
	s.skipSeparators()

	var coords []float64
	for !s.done() {
		v, err := s.number(0)
		if err != nil {
			return nil, err
		}
		coords = append(coords, v)
	}
	if len(coords)%2 != 0 {
		return nil, &MalformedPathError{Pos: len(s.b), Reason: "odd number of coordinates"}
	}

	pts := make([]Point, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		pts = append(pts, Pt(coords[i], coords[i+1]))
	}
	return pts, nil
}
