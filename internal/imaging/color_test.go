package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestMeanColorHex(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want string
	}{
		{"red", color.RGBA{255, 0, 0, 255}, "#ff0000"},
		{"white", color.White, "#ffffff"},
		{"black", color.Black, "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(10, 10, tt.c)
			if got := MeanColorHex(img, Region{X1: 2, Y1: 2, X2: 8, Y2: 8}); got != tt.want {
				t.Errorf("MeanColorHex: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMeanColorHex_ClippedAndEmpty(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{0, 0, 255, 255})

	if got := MeanColorHex(img, Region{X1: -5, Y1: -5, X2: 3, Y2: 3}); got != "#0000ff" {
		t.Errorf("clipped region: got %s, want #0000ff", got)
	}
	if got := MeanColorHex(img, Region{X1: 20, Y1: 20, X2: 30, Y2: 30}); got != "" {
		t.Errorf("outside region: got %q, want empty", got)
	}
	if got := MeanColorHex(img, Region{}); got != "" {
		t.Errorf("empty region: got %q, want empty", got)
	}
}

func TestMeanColorHex_Transparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4)) // all zero alpha

	if got := MeanColorHex(img, Region{X1: 0, Y1: 0, X2: 4, Y2: 4}); got != "" {
		t.Errorf("transparent region: got %q, want empty", got)
	}
}
