package engine

import "testing"

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		min  int
		max  int
	}{
		{"skills", "skills", 100, 100},
		{"skills", "skill", 85, 99},
		{"skills", "education", 0, 50},
		// Distinct skill-box banners must stay below the 80 match bar.
		{"other skills", "key skills", 0, 79},
		{"", "", 100, 100},
		{"abc", "", 0, 0},
	}
	for _, tt := range tests {
		got := ratio(tt.a, tt.b)
		if got < tt.min || got > tt.max {
			t.Errorf("ratio(%q, %q) = %d, want in [%d,%d]", tt.a, tt.b, got, tt.min, tt.max)
		}
	}
}

func TestTokenSetRatioIgnoresWordOrder(t *testing.T) {
	a := tokenSetRatio("experience work", "work experience")
	if a != 100 {
		t.Errorf("reordered tokens scored %d, want 100", a)
	}
}

func TestTokenSetRatioSubset(t *testing.T) {
	// A banner with extra decoration should still score high against
	// its synonym.
	got := tokenSetRatio("technical skills", "skills")
	if got < 80 {
		t.Errorf("subset match scored %d, want >= 80", got)
	}
}

func TestTokenSetRatioDisjoint(t *testing.T) {
	got := tokenSetRatio("education", "work experience")
	if got >= 80 {
		t.Errorf("disjoint strings scored %d, want < 80", got)
	}
}
