package colors

import (
	"testing"

	"github.com/matzehuels/bigvalue/pkg/errors"
	"github.com/matzehuels/bigvalue/pkg/panel"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#73BF69", "rgb(115, 191, 105)"},
		{"#fff", "rgb(255, 255, 255)"},
		{"rgb(10, 20, 30)", "rgb(10, 20, 30)"},
		{"rgba(255,255,255,0.4)", "rgba(255, 255, 255, 0.4)"},
		{"white", "rgb(255, 255, 255)"},
		{"  White ", "rgb(255, 255, 255)"},
		{"transparent", "rgba(0, 0, 0, 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got := c.RGBString(); got != tt.want {
				t.Errorf("Parse(%q).RGBString() = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexAlpha(t *testing.T) {
	c, err := Parse("#00000080")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if a := c.Alpha(); a < 0.5 || a > 0.51 {
		t.Errorf("Alpha() = %v, want ~0.502", a)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"", "#12", "rgb(1,2)", "rgb(300,0,0)", "chartreuse-ish", "rgba(1,2,3,x)",
		`red" onload="alert(1)`, `#fff" x="1`, "#fffffff", "#ggg",
		"rgb(1,2,3) x=y", `rgbx="1"(1,2,3)`, "rgb(NaN,0,0)", "rgba(1,2,3,NaN)",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			if !errors.Is(err, errors.ErrCodeInvalidColor) {
				t.Errorf("Parse(%q) error = %v, want INVALID_COLOR", in, err)
			}
		})
	}
}

func TestMustParseFallsBack(t *testing.T) {
	if got := MustParse("not-a-color").RGBString(); got != "rgb(0, 0, 0)" {
		t.Errorf("MustParse fallback = %q, want rgb(0, 0, 0)", got)
	}
}

func TestResolve(t *testing.T) {
	dark, light := panel.DarkTheme(), panel.LightTheme()

	tests := []struct {
		name  string
		color string
		theme panel.Theme
		want  string
	}{
		{"palette dark", "green", dark, "#73BF69"},
		{"palette light", "green", light, "#56A64B"},
		{"palette case", "Semi-Dark-Red", dark, "#E02F44"},
		{"hex passthrough", "#abcdef", dark, "#abcdef"},
		{"rgb passthrough", "rgb(1, 2, 3)", light, "rgb(1, 2, 3)"},
		{"unknown passthrough", "white", dark, "white"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.color, tt.theme); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.color, got, tt.want)
			}
		})
	}
}

func lightness(t *testing.T, c Color) float64 {
	t.Helper()
	_, _, l := c.c.Hsl()
	return l
}

func TestDarkenLighten(t *testing.T) {
	base := MustParse("#73BF69")

	if got := base.Darken(0).RGBString(); got != base.RGBString() {
		t.Errorf("Darken(0) = %q, want %q", got, base.RGBString())
	}
	if lightness(t, base.Darken(15)) >= lightness(t, base) {
		t.Error("Darken(15) should reduce lightness")
	}
	if lightness(t, base.Darken(-10.5)) <= lightness(t, base) {
		t.Error("Darken with a negative amount should increase lightness")
	}
	if lightness(t, base.Lighten(10)) <= lightness(t, base) {
		t.Error("Lighten(10) should increase lightness")
	}
	if got := base.Darken(200).RGBString(); got != "rgb(0, 0, 0)" {
		t.Errorf("Darken(200) = %q, want black", got)
	}
	if got := base.Lighten(200).RGBString(); got != "rgb(255, 255, 255)" {
		t.Errorf("Lighten(200) = %q, want white", got)
	}
}

func TestSpin(t *testing.T) {
	base := MustParse("#5794F2")

	if got := base.Spin(360).Hex(); got != base.Hex() {
		t.Errorf("Spin(360) = %s, want %s", got, base.Hex())
	}
	if got := base.Spin(8).Spin(-8).Hex(); got != base.Hex() {
		t.Errorf("Spin(8).Spin(-8) = %s, want %s", got, base.Hex())
	}
	if base.Spin(8).Hex() == base.Hex() {
		t.Error("Spin(8) should change the color")
	}

	h0, _, _ := base.c.Hsl()
	h1, _, _ := base.Spin(-8).c.Hsl()
	if d := h0 - h1; d < 7.5 || d > 8.5 {
		t.Errorf("Spin(-8) moved hue by %v, want ~8", d)
	}
}

func TestSetAlpha(t *testing.T) {
	c := MustParse("#73BF69").SetAlpha(0.2)
	if got := c.RGBString(); got != "rgba(115, 191, 105, 0.2)" {
		t.Errorf("SetAlpha(0.2) = %q", got)
	}
	if c.Alpha() != 0.2 {
		t.Errorf("Alpha() = %v, want 0.2", c.Alpha())
	}
	if got := c.SetAlpha(5).Alpha(); got != 1 {
		t.Errorf("SetAlpha clamps to 1, got %v", got)
	}
}

func TestBrighten(t *testing.T) {
	got := MustParse("#73BF69").Brighten(40).RGBString()
	if got != "rgb(217, 255, 207)" {
		t.Errorf("Brighten(40) = %q, want rgb(217, 255, 207)", got)
	}
	if got := MustParse("#ffffff").Brighten(-100).RGBString(); got != "rgb(0, 0, 0)" {
		t.Errorf("Brighten(-100) = %q, want rgb(0, 0, 0)", got)
	}
}

func TestNRGBA(t *testing.T) {
	n := MustParse("rgba(255, 0, 0, 0.5)").NRGBA()
	if n.R != 255 || n.G != 0 || n.B != 0 || n.A != 128 {
		t.Errorf("NRGBA() = %+v", n)
	}
}

func TestValidate(t *testing.T) {
	dark := panel.DarkTheme()
	for _, name := range []string{"", "green", "semi-dark-blue", "#abc", "rgba(1, 2, 3, 0.5)", "White"} {
		if err := Validate(name, dark); err != nil {
			t.Errorf("Validate(%q) error = %v, want nil", name, err)
		}
	}
	for _, name := range []string{`red" onload="alert(1)`, "chartreuse-ish", "#12"} {
		if err := Validate(name, dark); !errors.Is(err, errors.ErrCodeInvalidColor) {
			t.Errorf("Validate(%q) error = %v, want INVALID_COLOR", name, err)
		}
	}
}
