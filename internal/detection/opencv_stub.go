//go:build !gocv

package detection

import "errors"

// ErrOpenCVUnavailable is returned by NewOutliner for the OpenCV backend in
// binaries built without the gocv tag.
var ErrOpenCVUnavailable = errors.New("opencv backend not compiled in (build with -tags gocv)")

func newOpenCV() (Outliner, error) {
	return nil, ErrOpenCVUnavailable
}
