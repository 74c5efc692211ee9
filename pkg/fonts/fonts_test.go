package fonts

import "testing"

func TestCSSFamily(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", FallbackFontFamily},
		{FontFamily, FallbackFontFamily},
		{"serif", "serif, " + FallbackFontFamily},
		{"DejaVu Sans", "'DejaVu Sans', " + FallbackFontFamily},
	}
	for _, tt := range tests {
		if got := CSSFamily(tt.in); got != tt.want {
			t.Errorf("CSSFamily(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefault(t *testing.T) {
	f := Default()
	if f.Family != FontFamily || f.Size != DefaultSize {
		t.Errorf("Default() = %+v", f)
	}
}
