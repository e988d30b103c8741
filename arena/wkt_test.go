// Copyright (c) 2024, The Gridnav Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena

import "testing"

func TestLoadArenaSquare(t *testing.T) {
	a, err := LoadArena("MULTIPOLYGON(((0 0, 10 0, 10 10, 0 10, 0 0)))")
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}
	if len(a.Polygons) != 1 {
		t.Fatalf("got %d polygons, want 1", len(a.Polygons))
	}
	if len(a.Polygons[0]) != 5 {
		t.Fatalf("got %d ring points, want 5", len(a.Polygons[0]))
	}
	if len(a.Lines) != 4 {
		t.Fatalf("got %d edges, want 4", len(a.Lines))
	}
}

func TestLoadArenaEmpty(t *testing.T) {
	a, err := LoadArena("MULTIPOLYGON()")
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}
	if len(a.Polygons) != 0 {
		t.Fatalf("got %d polygons, want 0", len(a.Polygons))
	}
}

func TestLoadArenaRejectsOtherGeometry(t *testing.T) {
	if _, err := LoadArena("POINT(0 0)"); err == nil {
		t.Fatalf("expected an error for a non-MULTIPOLYGON input")
	}
}

func TestLineIntersectsSquare(t *testing.T) {
	a, err := LoadArena("MULTIPOLYGON(((0 0, 10 0, 10 10, 0 10, 0 0)))")
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}
	if !a.LineIntersects(-5, 5, 5, 5) {
		t.Errorf("expected a line crossing the left edge to intersect")
	}
	if a.LineIntersects(-5, -5, -1, -1) {
		t.Errorf("expected a line nowhere near the square not to intersect")
	}
}
