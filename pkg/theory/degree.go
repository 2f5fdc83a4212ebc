package theory

import "fmt"

// ResolveDegree maps a 1-indexed scale degree to an absolute pitch against
// the chord's scale: the chord's lowest pitch plus the scale offset. A degree
// of zero or below denotes "no tone" and resolves to Rest.
func ResolveDegree(c *Chord, degree int) (Pitch, error) {
	if degree <= 0 {
		return Rest, nil
	}
	if degree > len(c.Scale) {
		return Rest, fmt.Errorf("scale degree %d out of range for %d-note scale", degree, len(c.Scale))
	}
	return c.Pitches[0] + Pitch(c.Scale[degree-1]), nil
}
