// Package geo implements the narrow phase of the two-phase
// intersection query: exact planar predicates that confirm or reject
// the bounding-box candidates produced by the spatial index.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/planar"
)

// Predicate decides whether a route truly intersects a stored
// geometry. It is a separate interface so the exact test can be
// swapped for precision or performance tuning without touching the
// query orchestration.
type Predicate interface {
	Intersects(route orb.LineString, g orb.Geometry) bool
}

// Planar tests intersection in plain lon/lat coordinates, matching the
// planar semantics of the stored SRID 4326 geometries. Routes crossing
// or entering polygon waterways (lakes, wide rivers) count as
// intersections, the same as crossing a line waterway.
type Planar struct{}

func NewPlanar() Planar {
	return Planar{}
}

func (Planar) Intersects(route orb.LineString, g orb.Geometry) bool {
	if len(route) < 2 {
		return false
	}

	switch geom := g.(type) {
	case orb.Point:
		return pointOnLine(geom, route)
	case orb.MultiPoint:
		for _, p := range geom {
			if pointOnLine(p, route) {
				return true
			}
		}
	case orb.LineString:
		return linesIntersect(route, geom)
	case orb.MultiLineString:
		for _, ls := range geom {
			if linesIntersect(route, ls) {
				return true
			}
		}
	case orb.Polygon:
		return lineIntersectsPolygon(route, geom)
	case orb.MultiPolygon:
		for _, poly := range geom {
			if lineIntersectsPolygon(route, poly) {
				return true
			}
		}
	case orb.Collection:
		p := Planar{}
		for _, member := range geom {
			if p.Intersects(route, member) {
				return true
			}
		}
	}

	return false
}

// DecodeWKB decodes a stored geometry column value.
func DecodeWKB(data []byte) (orb.Geometry, error) {
	return wkb.Unmarshal(data)
}

func linesIntersect(a, b orb.LineString) bool {
	for i := 0; i < len(a)-1; i++ {
		for j := 0; j < len(b)-1; j++ {
			if segmentsIntersect(a[i], a[i+1], b[j], b[j+1]) {
				return true
			}
		}
	}
	return false
}

func lineIntersectsPolygon(line orb.LineString, poly orb.Polygon) bool {
	// A route entirely inside the polygon never touches a ring, so
	// vertex containment has to be checked as well as edge crossings.
	for _, pt := range line {
		if planar.PolygonContains(poly, pt) {
			return true
		}
	}
	for _, ring := range poly {
		if linesIntersect(line, orb.LineString(ring)) {
			return true
		}
	}
	return false
}

func pointOnLine(p orb.Point, line orb.LineString) bool {
	for i := 0; i < len(line)-1; i++ {
		if onSegment(line[i], line[i+1], p) {
			return true
		}
	}
	return false
}

// segmentsIntersect reports whether segments p1-p2 and q1-q2 share at
// least one point, including touching endpoints and collinear overlap.
func segmentsIntersect(p1, p2, q1, q2 orb.Point) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear cases
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, p2, q2) {
		return true
	}
	if o3 == 0 && onSegment(q1, q2, p1) {
		return true
	}
	if o4 == 0 && onSegment(q1, q2, p2) {
		return true
	}

	return false
}

// orientation returns the turn direction of the triplet (a, b, c):
// 0 collinear, 1 clockwise, -1 counter-clockwise.
func orientation(a, b, c orb.Point) int {
	cross := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
	switch {
	case cross > 0:
		return -1
	case cross < 0:
		return 1
	default:
		return 0
	}
}

// onSegment reports whether collinear point p lies within the bounding
// box of segment a-b.
func onSegment(a, b, p orb.Point) bool {
	if orientation(a, b, p) != 0 {
		return false
	}
	return min(a[0], b[0]) <= p[0] && p[0] <= max(a[0], b[0]) &&
		min(a[1], b[1]) <= p[1] && p[1] <= max(a[1], b[1])
}
