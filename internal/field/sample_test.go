package field

import (
	"math"
	"testing"
)

func TestSampleDiscBounds(t *testing.T) {
	rng := testRand()
	for i := 0; i < 10000; i++ {
		x, y := SampleDisc(rng, 0, 0, 100)
		if math.Hypot(x, y) > 100+1e-9 {
			t.Fatalf("sample %d at (%f, %f) outside radius 100", i, x, y)
		}
	}
}

func TestSampleDiscUniformByArea(t *testing.T) {
	const (
		samples = 10000
		bins    = 5
		radius  = 100.0
	)
	rng := testRand()
	var counts [bins]int
	for i := 0; i < samples; i++ {
		x, y := SampleDisc(rng, 0, 0, radius)
		b := int(math.Hypot(x, y) / (radius / bins))
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}

	for i := 1; i < bins; i++ {
		if counts[i] < counts[i-1] {
			t.Errorf("ring %d has fewer samples than ring %d: %v", i, i-1, counts)
		}
	}

	// Ring i covers (2i+1)/25 of the area.
	for i, c := range counts {
		want := float64(samples) * float64(2*i+1) / (bins * bins)
		if math.Abs(float64(c)-want) > want*0.25+30 {
			t.Errorf("ring %d: expected about %.0f samples, got %d", i, want, c)
		}
	}
}

func TestCloudRadius(t *testing.T) {
	if got := CloudRadius(800, 600); math.Abs(got-600/2.3) > 1e-9 {
		t.Errorf("expected %f, got %f", 600/2.3, got)
	}
	if got := CloudRadius(300, 900); math.Abs(got-300/2.3) > 1e-9 {
		t.Errorf("expected short side to win, got %f", got)
	}
}

func TestModeParse(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"ambient", Ambient},
		{"bordered", Bordered},
		{"", Ambient},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
