package textfit

import (
	"math"
	"sync"
	"testing"
)

func TestMeasureText(t *testing.T) {
	if got := MeasureText("", 14); got != 0 {
		t.Errorf("MeasureText(empty) = %v, want 0", got)
	}
	if got := MeasureText("abc", 0); got != 0 {
		t.Errorf("MeasureText(size 0) = %v, want 0", got)
	}

	short := MeasureText("42", 14)
	long := MeasureText("4242", 14)
	if short <= 0 {
		t.Fatalf("MeasureText(42) = %v, want > 0", short)
	}
	if long <= short {
		t.Errorf("longer text should be wider: %v <= %v", long, short)
	}

	double := MeasureText("42", 28)
	if math.Abs(double-2*short) > 1e-9 {
		t.Errorf("width should scale linearly with size: %v vs 2*%v", double, short)
	}
}

func TestCalculateFontSize(t *testing.T) {
	tests := []struct {
		name                 string
		text                 string
		width, height, lineH float64
		check                func(t *testing.T, got float64)
	}{
		{
			name: "height bound",
			text: "1", width: 10000, height: 60, lineH: 1.2,
			check: func(t *testing.T, got float64) {
				if math.Abs(got-50) > 1e-9 {
					t.Errorf("got %v, want 50 (60/1.2)", got)
				}
			},
		},
		{
			name: "width bound",
			text: "a fairly long value text", width: 100, height: 1000, lineH: 1.2,
			check: func(t *testing.T, got float64) {
				if got <= 0 || got >= 1000/1.2 {
					t.Errorf("got %v, want width-limited size", got)
				}
				if w := MeasureText("a fairly long value text", got); w > 100 {
					t.Errorf("text at %v is %v wide, want <= 100", got, w)
				}
			},
		},
		{
			name: "zero width",
			text: "x", width: 0, height: 100, lineH: 1.2,
			check: func(t *testing.T, got float64) {
				if got != 0 {
					t.Errorf("got %v, want 0", got)
				}
			},
		},
		{
			name: "negative height",
			text: "x", width: 100, height: -3, lineH: 1.2,
			check: func(t *testing.T, got float64) {
				if got != 0 {
					t.Errorf("got %v, want 0", got)
				}
			},
		},
		{
			name: "nan width",
			text: "x", width: math.NaN(), height: 100, lineH: 1.2,
			check: func(t *testing.T, got float64) {
				if got != 0 {
					t.Errorf("got %v, want 0", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, CalculateFontSize(tt.text, tt.width, tt.height, tt.lineH))
		})
	}
}

func TestMeasureTextConcurrent(t *testing.T) {
	want := MeasureText("concurrent", 20)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := MeasureText("concurrent", 20); got != want {
				t.Errorf("MeasureText = %v, want %v", got, want)
			}
		}()
	}
	wg.Wait()
}

func TestFace(t *testing.T) {
	f, err := Face(24)
	if err != nil {
		t.Fatalf("Face(24) error: %v", err)
	}
	if f.Metrics().Height <= 0 {
		t.Error("face height should be positive")
	}
	again, _ := Face(24)
	if again != f {
		t.Error("Face should return the cached face")
	}
}

func TestFaceCacheBounded(t *testing.T) {
	for i := 0; i < 500; i++ {
		if _, err := Face(10 + float64(i)*0.01); err != nil {
			t.Fatalf("Face() error: %v", err)
		}
	}
	faceMu.Lock()
	n := len(faces)
	faceMu.Unlock()
	if n > maxFaces {
		t.Errorf("len(faces) = %d, want <= %d", n, maxFaces)
	}
}
