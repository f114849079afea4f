package core

import "testing"

func TestAABBOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     AABB
		expected bool
	}{
		{"overlapping", NewAABB(0, 0, 10, 10), NewAABB(5, 5, 10, 10), true},
		{"apart horizontally", NewAABB(0, 0, 10, 10), NewAABB(15, 0, 10, 10), false},
		{"apart vertically", NewAABB(0, 0, 10, 10), NewAABB(0, 15, 10, 10), false},
		{"touching right edge", NewAABB(0, 0, 10, 10), NewAABB(10, 0, 10, 10), false},
		{"touching bottom edge", NewAABB(0, 0, 10, 10), NewAABB(0, 10, 10, 10), false},
		{"contained", NewAABB(0, 0, 20, 20), NewAABB(5, 5, 5, 5), true},
		{"sliver", NewAABB(0, 0, 10, 10), NewAABB(9.5, 9.5, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestAABBUnionTranslate(t *testing.T) {
	u := NewAABB(0, 0, 10, 10).Union(NewAABB(20, -5, 5, 5))
	if u != NewAABB(0, -5, 25, 15) {
		t.Errorf("Union() = %+v", u)
	}

	m := NewAABB(10, 12, 40, 24).Translate(Vec2{X: 5, Y: -2})
	if m != NewAABB(15, 10, 40, 24) {
		t.Errorf("Translate() = %+v", m)
	}
}

func TestSweepLanding(t *testing.T) {
	surface := NewAABB(0, 100, 200, 20)

	tests := []struct {
		name       string
		prev, next AABB
		expected   bool
	}{
		{"falls through top", NewAABB(10, 40, 20, 50), NewAABB(12, 60, 20, 50), true},
		{"resting exactly", NewAABB(10, 50, 20, 50), NewAABB(14, 50, 20, 50), true},
		{"rising through", NewAABB(10, 60, 20, 50), NewAABB(10, 40, 20, 50), false},
		{"starts below top", NewAABB(10, 60, 20, 50), NewAABB(10, 70, 20, 50), false},
		{"misses horizontally", NewAABB(210, 40, 20, 50), NewAABB(215, 60, 20, 50), false},
		{"still above", NewAABB(10, 10, 20, 50), NewAABB(10, 20, 20, 50), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SweepLanding(tc.prev, tc.next, surface); got != tc.expected {
				t.Errorf("SweepLanding() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
