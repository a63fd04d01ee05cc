package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Raw pixel encodings accepted in FrameMessage.Encoding.
const (
	EncodingBGR8  = "bgr8"
	EncodingRGB8  = "rgb8"
	EncodingBGRA8 = "bgra8"
	EncodingRGBA8 = "rgba8"
	EncodingMono8 = "mono8"
)

// Compressed encodings accepted in FrameMessage.Encoding. The payload is a
// complete image file and its dimensions come from the file header.
const (
	EncodingPNG  = "png"
	EncodingJPEG = "jpeg"
	EncodingGIF  = "gif"
	EncodingBMP  = "bmp"
	EncodingTIFF = "tiff"
	EncodingWebP = "webp"
)

// ErrUnsupportedEncoding is wrapped by DecodeError when the frame declares an
// encoding this package cannot read.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// MaxFrameSide bounds Width and Height of raw frames so that buffer sizes
// derived from them cannot overflow.
const MaxFrameSide = 1 << 14

var bytesPerPixel = map[string]int{
	EncodingBGR8:  3,
	EncodingRGB8:  3,
	EncodingBGRA8: 4,
	EncodingRGBA8: 4,
	EncodingMono8: 1,
}

var compressed = map[string]bool{
	EncodingPNG:  true,
	EncodingJPEG: true,
	"jpg":        true,
	EncodingGIF:  true,
	EncodingBMP:  true,
	EncodingTIFF: true,
	EncodingWebP: true,
}

// FrameMessage is a camera frame as it arrives on the wire.
//
// Raw encodings carry a row-major pixel buffer of Height rows, each Step
// bytes long. Compressed encodings carry an encoded image file in Data and
// ignore Width, Height and Step.
type FrameMessage struct {
	// Width is the frame width in pixels (raw encodings only).
	Width int `json:"width"`

	// Height is the frame height in pixels (raw encodings only).
	Height int `json:"height"`

	// Encoding names the pixel layout, e.g. "bgr8" or "png".
	Encoding string `json:"encoding"`

	// Step is the row length in bytes. Zero means tightly packed rows.
	Step int `json:"step,omitempty"`

	// Data is the pixel buffer or encoded file. Base64 in JSON.
	Data []byte `json:"data"`
}

// DecodeError reports a frame that could not be turned into a pixel grid.
//
// A DecodeError means the frame must be skipped; it never indicates a
// problem with subsequent frames.
type DecodeError struct {
	// Encoding is the encoding declared by the frame.
	Encoding string

	// Err is the underlying cause.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q frame: %v", e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeFrame converts a wire frame into an image.
//
// Raw color encodings produce *image.NRGBA, mono8 produces *image.Gray, and
// compressed encodings produce whatever the registered decoder returns.
// Every failure is returned as *DecodeError.
//
// # Validation
//
//   - Width and Height must be positive for raw encodings and at most MaxFrameSide
//   - Step, when given, must be at least Width * bytes-per-pixel
//   - Data must hold at least Step * Height bytes
func DecodeFrame(msg FrameMessage) (image.Image, error) {
	if compressed[msg.Encoding] {
		img, _, err := image.Decode(bytes.NewReader(msg.Data))
		if err != nil {
			return nil, &DecodeError{Encoding: msg.Encoding, Err: errors.Wrap(err, "compressed payload")}
		}
		return img, nil
	}

	bpp, ok := bytesPerPixel[msg.Encoding]
	if !ok {
		return nil, &DecodeError{Encoding: msg.Encoding, Err: ErrUnsupportedEncoding}
	}

	img, err := decodeRaw(msg, bpp)
	if err != nil {
		return nil, &DecodeError{Encoding: msg.Encoding, Err: err}
	}
	return img, nil
}

func decodeRaw(msg FrameMessage, bpp int) (image.Image, error) {
	if msg.Width <= 0 || msg.Height <= 0 {
		return nil, errors.Errorf("invalid dimensions %dx%d", msg.Width, msg.Height)
	}
	if msg.Width > MaxFrameSide || msg.Height > MaxFrameSide {
		return nil, errors.Errorf("dimensions %dx%d exceed %d", msg.Width, msg.Height, MaxFrameSide)
	}

	rowBytes := msg.Width * bpp
	step := msg.Step
	if step == 0 {
		step = rowBytes
	}
	if step < rowBytes {
		return nil, errors.Errorf("step %d shorter than row of %d bytes", step, rowBytes)
	}
	// Compared by division so a huge step cannot overflow step * Height.
	if step > len(msg.Data)/msg.Height {
		return nil, errors.Errorf("data holds %d bytes, need %d rows of %d", len(msg.Data), msg.Height, step)
	}

	rect := image.Rect(0, 0, msg.Width, msg.Height)

	if msg.Encoding == EncodingMono8 {
		gray := image.NewGray(rect)
		for y := 0; y < msg.Height; y++ {
			copy(gray.Pix[y*gray.Stride:y*gray.Stride+msg.Width], msg.Data[y*step:])
		}
		return gray, nil
	}

	out := image.NewNRGBA(rect)
	for y := 0; y < msg.Height; y++ {
		src := msg.Data[y*step : y*step+rowBytes]
		dst := out.Pix[y*out.Stride:]
		for x := 0; x < msg.Width; x++ {
			p := src[x*bpp:]
			q := dst[x*4 : x*4+4]
			switch msg.Encoding {
			case EncodingBGR8:
				q[0], q[1], q[2], q[3] = p[2], p[1], p[0], 0xff
			case EncodingRGB8:
				q[0], q[1], q[2], q[3] = p[0], p[1], p[2], 0xff
			case EncodingBGRA8:
				q[0], q[1], q[2], q[3] = p[2], p[1], p[0], p[3]
			case EncodingRGBA8:
				q[0], q[1], q[2], q[3] = p[0], p[1], p[2], p[3]
			}
		}
	}
	return out, nil
}
