package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/shape-detector/internal/imaging"
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createSquareImage draws a black filled square on white.
func createSquareImage() *image.RGBA {
	img := createTestImage(100, 100, color.White)
	for y := 25; y < 75; y++ {
		for x := 25; x < 75; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

// createCircleImage draws a black filled disk on white.
func createCircleImage() *image.RGBA {
	img := createTestImage(120, 120, color.White)
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			dx, dy := x-60, y-60
			if dx*dx+dy*dy <= 35*35 {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}

// bgrFrame packs an image as a tightly packed bgr8 frame.
func bgrFrame(img *image.RGBA) imaging.FrameMessage {
	b := img.Bounds()
	data := make([]byte, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			data = append(data, c.B, c.G, c.R)
		}
	}
	return imaging.FrameMessage{
		Width:    b.Dx(),
		Height:   b.Dy(),
		Encoding: imaging.EncodingBGR8,
		Data:     data,
	}
}

// rpcLine builds one JSON-RPC line. A nil id produces a notification.
func rpcLine(t *testing.T, id interface{}, method string, params interface{}) string {
	t.Helper()
	msg := map[string]interface{}{"jsonrpc": "2.0", "method": method}
	if id != nil {
		msg["id"] = id
	}
	if params != nil {
		msg["params"] = params
	}
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	return string(b) + "\n"
}

// outputMessage is any line the server writes.
type outputMessage struct {
	ID     interface{}     `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

func readOutput(t *testing.T, out *bytes.Buffer) []outputMessage {
	t.Helper()
	var msgs []outputMessage
	scanner := bufio.NewScanner(bytes.NewReader(out.Bytes()))
	for scanner.Scan() {
		var m outputMessage
		if err := json.Unmarshal(scanner.Bytes(), &m); err != nil {
			t.Fatalf("Failed to parse output line %q: %v", scanner.Text(), err)
		}
		msgs = append(msgs, m)
	}
	return msgs
}

// notifications reduces output to "method:data" strings.
func notifications(t *testing.T, msgs []outputMessage) []string {
	t.Helper()
	var out []string
	for _, m := range msgs {
		if m.Method == "" {
			continue
		}
		var p struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(m.Params, &p); err != nil {
			t.Fatalf("Failed to parse params: %v", err)
		}
		out = append(out, m.Method+":"+string(p.Data))
	}
	return out
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shape.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return path
}
