package recording

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"white", White, false},
		{"Transparent", Transparent, false},
		{"#fff", White, false},
		{"#000F", Black, false},
		{"FF8000", Color{R: 255, G: 128, A: 255}, false},
		{"#FF800080", Color{R: 255, G: 128, A: 128}, false},
		{"#GG0000", Color{}, true},
		{"#12345", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestColorPacking(t *testing.T) {
	c := Color{R: 1, G: 2, B: 3, A: 4}
	if got := c.Packed(); got != 0x04030201 {
		t.Errorf("Packed() = %#x, want 0x04030201", got)
	}
	if got := FromPacked(0x04030201); got != c {
		t.Errorf("FromPacked() = %+v, want %+v", got, c)
	}
}

func TestColorFormatting(t *testing.T) {
	c := Color{R: 255, G: 16, B: 0, A: 51}
	if got := c.Hex(); got != "#FF1000" {
		t.Errorf("Hex() = %q, want #FF1000", got)
	}
	if got := c.Opacity(); got != 0.2 {
		t.Errorf("Opacity() = %v, want 0.2", got)
	}
	if got := c.String(); got != "#FF100033" {
		t.Errorf("String() = %q, want #FF100033", got)
	}
	if !Transparent.IsTransparent() || White.IsTransparent() {
		t.Error("IsTransparent mismatch")
	}
}
