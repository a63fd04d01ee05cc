// Package imaging turns camera frames into pixel grids and edge masks.
//
// It covers everything that happens before contours exist: decoding wire
// frames (raw bgr8/rgb8/mono8 buffers or compressed files), optional
// region-of-interest cropping and downscaling, luminance conversion, and
// the fixed-threshold Canny edge detector that feeds contour tracing.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. Intensity grids and
// edge masks always start at (0,0) even when the source image does not.
//
// # Edge Masks
//
// ExtractEdges returns an *image.Gray in which 255 marks an edge pixel and
// 0 marks everything else. The thresholds (EdgeThresholdLow,
// EdgeThresholdHigh) are constants; there is no tuning surface.
//
// # Error Handling
//
// DecodeFrame reports every failure as *DecodeError so the transport can
// log the frame and move on. Edge extraction itself cannot fail.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless
// and may be called concurrently on different images.
package imaging
