package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

// Fixed hysteresis thresholds for ExtractEdges, in gradient units of the
// 0-255 intensity range. They are not configurable.
const (
	EdgeThresholdLow  = 50
	EdgeThresholdHigh = 150
)

// tan(22.5°) scaled by 2^15, used to bucket gradient directions without
// floating point.
const tan22Fixed = 13573

// Edge states used during non-maximum suppression and hysteresis.
const (
	edgeNone uint8 = iota
	edgeWeak
	edgeStrong
)

// Intensity converts an image to an 8-bit luminance grid.
//
// The conversion uses ITU-R BT.601 weights in 14-bit fixed point:
//
//	Y = (4899*R + 9617*G + 1868*B + 8192) >> 14
//
// which is 0.299*R + 0.587*G + 0.114*B rounded to the nearest integer.
// The returned grid always has its origin at (0,0), regardless of the
// source image bounds.
func Intensity(img image.Image) *image.Gray {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	gray := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < width; x++ {
			// Alpha is ignored, as if the frame were converted to bgr8.
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			row[x] = luminance(c.R, c.G, c.B)
		}
	}
	return gray
}

func luminance(r, g, b uint8) uint8 {
	return uint8((4899*uint32(r) + 9617*uint32(g) + 1868*uint32(b) + 8192) >> 14)
}

// ExtractEdges derives a binary edge mask from an image.
//
// The result has the same dimensions as img, with its origin at (0,0).
// Edge pixels are 255 and all other pixels are 0. A blank or uniform image
// produces an empty mask; the function never fails.
//
// # Algorithm
//
//  1. Luminance conversion via Intensity.
//  2. 3x3 Sobel gradients on the raw 0-255 intensity with replicated
//     borders; magnitude is |Gx| + |Gy|.
//  3. Non-maximum suppression along one of four quantized directions
//     (horizontal, vertical, two diagonals).
//  4. Hysteresis: magnitudes above EdgeThresholdHigh seed strong edges,
//     magnitudes above EdgeThresholdLow survive only when 8-connected to a
//     strong edge, directly or through other surviving pixels.
func ExtractEdges(img image.Image) *image.Gray {
	return canny(Intensity(img), EdgeThresholdLow, EdgeThresholdHigh)
}

func canny(gray *image.Gray, low, high int) *image.Gray {
	width := gray.Rect.Dx()
	height := gray.Rect.Dy()
	mask := image.NewGray(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return mask
	}

	at := func(x, y int) int {
		return int(gray.Pix[clamp(y, 0, height-1)*gray.Stride+clamp(x, 0, width-1)])
	}

	gradX := make([]int, width*height)
	gradY := make([]int, width*height)
	magnitude := make([]int, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gx := (at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x-1, y) + at(x-1, y+1))
			gy := (at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x, y-1) + at(x+1, y-1))
			i := y*width + x
			gradX[i] = gx
			gradY[i] = gy
			magnitude[i] = abs(gx) + abs(gy)
		}
	}

	magAt := func(x, y int) int {
		if x < 0 || x >= width || y < 0 || y >= height {
			return 0
		}
		return magnitude[y*width+x]
	}

	state := make([]uint8, width*height)
	stack := make([]int, 0, 256)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			m := magnitude[i]
			if m <= low {
				continue
			}

			ax := abs(gradX[i])
			ay := abs(gradY[i]) << 15
			tg22 := ax * tan22Fixed

			var isMax bool
			switch {
			case ay < tg22:
				isMax = m > magAt(x-1, y) && m >= magAt(x+1, y)
			case ay > tg22+(ax<<16):
				isMax = m > magAt(x, y-1) && m >= magAt(x, y+1)
			default:
				s := 1
				if (gradX[i] ^ gradY[i]) < 0 {
					s = -1
				}
				isMax = m > magAt(x-s, y-1) && m > magAt(x+s, y+1)
			}
			if !isMax {
				continue
			}

			if m > high {
				state[i] = edgeStrong
				stack = append(stack, i)
			} else {
				state[i] = edgeWeak
			}
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		mask.Pix[(i/width)*mask.Stride+i%width] = 255

		cx, cy := i%width, i/width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := cx+dx, cy+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				j := ny*width + nx
				if state[j] == edgeWeak {
					state[j] = edgeStrong
					stack = append(stack, j)
				}
			}
		}
	}

	return mask
}

// EdgeDetectResult contains an edge mask encoded as base64 PNG.
//
// The image is grayscale with edges marked in white (255) and everything
// else black (0).
type EdgeDetectResult struct {
	// Width of the mask in pixels (same as input).
	Width int `json:"width"`

	// Height of the mask in pixels (same as input).
	Height int `json:"height"`

	// EdgePixels is the number of pixels marked as edges.
	EdgePixels int `json:"edge_pixels"`

	// ThresholdLow and ThresholdHigh report the fixed hysteresis thresholds.
	ThresholdLow  int `json:"threshold_low"`
	ThresholdHigh int `json:"threshold_high"`

	// ImageBase64 is the mask encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// EdgeDetect runs ExtractEdges and packages the mask as a PNG for tool output.
//
// Returns an error only if PNG encoding fails.
func EdgeDetect(img image.Image) (*EdgeDetectResult, error) {
	mask := ExtractEdges(img)

	count := 0
	for _, v := range mask.Pix {
		if v != 0 {
			count++
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, mask); err != nil {
		return nil, fmt.Errorf("failed to encode edge image: %w", err)
	}

	return &EdgeDetectResult{
		Width:         mask.Rect.Dx(),
		Height:        mask.Rect.Dy(),
		EdgePixels:    count,
		ThresholdLow:  EdgeThresholdLow,
		ThresholdHigh: EdgeThresholdHigh,
		ImageBase64:   base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:      "image/png",
	}, nil
}

// clamp constrains an integer value to the range [min, max].
// Used for replicated-border handling in convolution.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
