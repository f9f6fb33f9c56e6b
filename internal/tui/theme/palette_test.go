package theme

import "testing"

func TestNewPaletteNilTheme(t *testing.T) {
	p := NewPalette(nil)
	if p == nil {
		t.Fatal("NewPalette(nil) returned nil")
	}
	if p.Bg == "" || p.Bar == "" {
		t.Errorf("nil-theme palette missing colors: %+v", p)
	}
}

func TestBarBackgroundsDiffer(t *testing.T) {
	for _, name := range Available() {
		th, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		p := NewPalette(th)
		if p.BarBg == p.BarBgAlt {
			t.Errorf("%s: BarBg and BarBgAlt are identical (%s)", name, p.BarBg)
		}
		if p.TimedBg == p.TimedBgAlt {
			t.Errorf("%s: TimedBg and TimedBgAlt are identical (%s)", name, p.TimedBg)
		}
	}
}

func TestDarkenColorFloor(t *testing.T) {
	got := darkenColor("#000000")
	if got != "#282828" {
		t.Errorf("darkenColor(#000000) = %s, want brightness floor #282828", got)
	}
}

func TestBlendColorsClampsRatio(t *testing.T) {
	if got := blendColors("#ff0000", "#0000ff", 2); got != "#0000ff" {
		t.Errorf("ratio > 1 should clamp to b, got %s", got)
	}
	if got := blendColors("#ff0000", "#0000ff", -1); got != "#ff0000" {
		t.Errorf("ratio < 0 should clamp to a, got %s", got)
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	// On a near-white background the dark text wins.
	got := chooseTextColor("#eeeeee", "#ffffff", "#111111")
	if got != "#111111" {
		t.Errorf("chooseTextColor on light bg = %s, want #111111", got)
	}
}
