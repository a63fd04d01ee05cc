// Package server connects the shape pipeline to a line-delimited JSON-RPC
// 2.0 stream and, optionally, to WebSocket subscribers.
//
// # Protocol
//
// The server communicates over stdio:
//   - Input: JSON-RPC requests and notifications on stdin (one per line)
//   - Output: responses and notifications on stdout
//
// Camera frames arrive as the "frame" method with imaging.FrameMessage
// params. Every outer contour in the frame is published as
//
//	{"jsonrpc":"2.0","method":"detected_shape","params":{"data":"Square"}}
//
// and every Circle additionally as
//
//	{"jsonrpc":"2.0","method":"servo_angle","params":{"data":90}}
//
// A frame sent with an ID is acknowledged with a FrameResult once its
// notifications have been written. A frame that fails to decode is logged
// and skipped; the server keeps reading.
//
// Supported request methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_dimensions: Get width, height and format of a file
//   - shape_detect: Run the pipeline on a file and return per-contour detail
//   - shape_edge_detect: Return the edge mask the pipeline traces
//
// Tools never publish detections.
//
// # WebSocket Hub
//
// A Hub attached with WithHub receives a copy of every published
// notification. Mount it on any net/http mux:
//
//	hub := server.NewHub(logger)
//	http.Handle("/ws", hub)
//	srv := server.New(server.WithHub(hub), server.WithLogger(logger))
//	err := srv.Run(ctx)
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
package server
