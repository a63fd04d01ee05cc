package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
)

// SaveDebug writes img as a PNG named name+".png" inside dir, creating dir
// if needed, and returns the written path.
//
// It is meant for inspecting edge masks and normalized frames while tuning a
// camera setup; nothing in the detection path depends on it.
func SaveDebug(dir, name string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create debug dir: %w", err)
	}

	path := filepath.Join(dir, name+".png")
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return "", fmt.Errorf("failed to write debug image: %w", err)
	}
	return path, nil
}
