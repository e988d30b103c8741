// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena

import (
	"fmt"
	"strconv"
	"strings"
)

// LoadArena parses a WKT MULTIPOLYGON string into an Arena, matching
// Arena::load_arena. Only the exterior ring of each polygon is kept;
// interior rings (holes) are parsed but discarded, since nothing in this
// simulation's scripts carves holes into its arenas.
func LoadArena(wkt string) (*Arena, error) {
	wkt = strings.TrimSpace(wkt)
	upper := strings.ToUpper(wkt)
	if !strings.HasPrefix(upper, "MULTIPOLYGON") {
		return nil, fmt.Errorf("arena: expected MULTIPOLYGON, got %q", firstWord(wkt))
	}
	body := strings.TrimSpace(wkt[len("MULTIPOLYGON"):])
	groups, err := splitParenGroups(body)
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}

	var polygons []Polygon
	for _, group := range groups {
		// group is the polygon's ring list "(ring),(ring)" without the
		// polygon's own outer parens; restore them so splitParenGroups strips
		// exactly that pair and not the first ring's.
		rings, err := splitParenGroups("(" + group + ")")
		if err != nil {
			return nil, fmt.Errorf("arena: %w", err)
		}
		if len(rings) == 0 {
			return nil, fmt.Errorf("arena: polygon with no rings")
		}
		exterior, err := parseRing(rings[0])
		if err != nil {
			return nil, fmt.Errorf("arena: %w", err)
		}
		polygons = append(polygons, exterior)
	}
	return NewArena(polygons), nil
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}

// splitParenGroups splits a string of the form "(a),(b),(c)" (optionally
// with surrounding whitespace, and with an outer pair of parens that is
// stripped first) into ["a", "b", "c"], respecting nested parentheses.
func splitParenGroups(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")

	var groups []string
	depth := 0
	start := -1
	for i, r := range s {
		switch r {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses")
			}
			if depth == 0 {
				groups = append(groups, s[start:i])
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses")
	}
	return groups, nil
}

// parseRing parses a comma-separated list of "x y" coordinate pairs into a
// Polygon.
func parseRing(s string) (Polygon, error) {
	var ring Polygon
	for _, pair := range strings.Split(s, ",") {
		fields := strings.Fields(strings.TrimSpace(pair))
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed coordinate pair %q", pair)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed x coordinate %q: %w", fields[0], err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed y coordinate %q: %w", fields[1], err)
		}
		ring = append(ring, Point{X: x, Y: y})
	}
	return ring, nil
}
