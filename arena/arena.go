// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arena implements the agent's environment: a set of polygonal
// obstacles the agent's border sensors ray-cast against and that its path
// can be checked against for fence crossings. Grounded on
// original_source/arena.h and arena.cc, whose boost::geometry-backed
// intersection tests are replaced here with a minimal segment-intersection
// implementation — see DESIGN.md for why no third-party geometry library
// from the example pack was available to wire in instead.
package arena

import "math"

// Point is a single (x, y) coordinate, in the same real-world units (cm)
// the rest of the simulation uses for position.
type Point struct {
	X, Y float64
}

// Segment is a directed line segment between two points.
type Segment struct {
	A, B Point
}

// Arena is a set of polygonal obstacles: Polygons holds each obstacle's
// exterior ring (as a closed point sequence, first point repeated at the
// end), and Lines flattens every polygon edge into one list for the
// sensor and fence-crossing queries, mirroring the original Arena's public
// `lines`/`polygons` fields.
type Arena struct {
	Polygons []Polygon
	Lines    []Segment
}

// Polygon is one obstacle's exterior ring.
type Polygon []Point

// NewArena builds an Arena directly from its polygons, flattening each
// ring's consecutive point pairs into Lines.
func NewArena(polygons []Polygon) *Arena {
	a := &Arena{Polygons: polygons}
	for _, polygon := range polygons {
		for i := 1; i < len(polygon); i++ {
			a.Lines = append(a.Lines, Segment{A: polygon[i-1], B: polygon[i]})
		}
	}
	return a
}

// UpdateSensors casts sensorCount rays outward from (x, y), evenly spaced
// around the full circle, each of length sensorRange, and writes an
// exponentially decaying activation into sensors for every ray that hits
// an obstacle edge before running out of range, matching
// BoostGeometryArena::update_sensors.
func (a *Arena) UpdateSensors(x, y, sensorRange float64, sensors []float32) {
	sensorCount := len(sensors)
	for sensor := 0; sensor < sensorCount; sensor++ {
		direction := float64(sensor) * (2 * math.Pi / float64(sensorCount))
		rayEnd := Point{
			X: x + sensorRange*math.Cos(direction),
			Y: y + sensorRange*math.Sin(direction),
		}
		ray := Segment{A: Point{X: x, Y: y}, B: rayEnd}

		gotHit := false
		closestDistance := math.Inf(1)
		for _, wall := range a.Lines {
			if hit, point := segmentIntersection(ray, wall); hit {
				d := distance(ray.A, point)
				if !gotHit || d < closestDistance {
					gotHit = true
					closestDistance = d
				}
			}
		}

		sensors[sensor] = 0
		if gotHit {
			sensors[sensor] = float32(2.0 * math.Exp(-5.0*(closestDistance/sensorRange)))
		}
	}
}

// LineIntersects reports whether the segment from (ax, ay) to (bx, by)
// crosses any obstacle edge, matching
// BoostGeometryArena::line_intersects. Used to detect the agent crossing a
// fence it isn't allowed to cross.
func (a *Arena) LineIntersects(ax, ay, bx, by float64) bool {
	segment := Segment{A: Point{X: ax, Y: ay}, B: Point{X: bx, Y: by}}
	for _, wall := range a.Lines {
		if hit, _ := segmentIntersection(segment, wall); hit {
			return true
		}
	}
	return false
}

func distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// cross returns the z-component of the cross product (p1-p0) x (p2-p0).
func cross(p0, p1, p2 Point) float64 {
	return (p1.X-p0.X)*(p2.Y-p0.Y) - (p1.Y-p0.Y)*(p2.X-p0.X)
}

// segmentIntersection tests two line segments for intersection using the
// standard orientation test, and if they intersect returns the point of
// intersection (computed via the parametric line equation; undefined, but
// unused, when the segments are collinear and merely overlapping).
func segmentIntersection(s1, s2 Segment) (bool, Point) {
	d1 := cross(s2.A, s2.B, s1.A)
	d2 := cross(s2.A, s2.B, s1.B)
	d3 := cross(s1.A, s1.B, s2.A)
	d4 := cross(s1.A, s1.B, s2.B)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		// Proper crossing: solve for the intersection parameter along s1.
		denom := (s1.B.X-s1.A.X)*(s2.B.Y-s2.A.Y) - (s1.B.Y-s1.A.Y)*(s2.B.X-s2.A.X)
		t := ((s2.A.X-s1.A.X)*(s2.B.Y-s2.A.Y) - (s2.A.Y-s1.A.Y)*(s2.B.X-s2.A.X)) / denom
		return true, Point{
			X: s1.A.X + t*(s1.B.X-s1.A.X),
			Y: s1.A.Y + t*(s1.B.Y-s1.A.Y),
		}
	}

	// Degenerate cases: an endpoint lies exactly on the other segment.
	if d1 == 0 && onSegment(s2.A, s2.B, s1.A) {
		return true, s1.A
	}
	if d2 == 0 && onSegment(s2.A, s2.B, s1.B) {
		return true, s1.B
	}
	if d3 == 0 && onSegment(s1.A, s1.B, s2.A) {
		return true, s2.A
	}
	if d4 == 0 && onSegment(s1.A, s1.B, s2.B) {
		return true, s2.B
	}
	return false, Point{}
}

func onSegment(a, b, p Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
