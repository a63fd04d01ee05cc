package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/ironsheep/shape-detector/internal/detection"
	"github.com/ironsheep/shape-detector/internal/imaging"
	"github.com/ironsheep/shape-detector/internal/log"
	"github.com/ironsheep/shape-detector/internal/pipeline"
)

// maxLineBytes bounds a single JSON-RPC line. Raw frames arrive base64
// encoded, so a 1080p bgr8 frame is roughly 8 MB on the wire.
const maxLineBytes = 32 * 1024 * 1024

// Server handles JSON-RPC communication over a line-delimited stream.
//
// Incoming frame notifications are run through the shape pipeline and the
// results are written back as detected_shape and servo_angle notifications.
// Tool calls inspect image files without publishing anything.
type Server struct {
	cache     *imaging.ImageCache
	outliner  detection.Outliner
	inspector *pipeline.Driver
	normalize imaging.NormalizeOptions
	debugDir  string
	hub       *Hub
	logger    *slog.Logger
	version   string

	in  io.Reader
	out io.Writer

	mu  sync.Mutex // guards enc
	enc *json.Encoder
}

// Request represents an incoming JSON-RPC request or notification
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents an outgoing JSON-RPC response
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC error
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Notification represents an outgoing notification (no ID)
type Notification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Frame and detection logs carry a
// frame_id attribute.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithOutliner selects the detection backend used for frames and tools.
func WithOutliner(o detection.Outliner) Option {
	return func(s *Server) { s.outliner = o }
}

// WithNormalize sets the crop and downscale applied to frames before
// detection.
func WithNormalize(opts imaging.NormalizeOptions) Option {
	return func(s *Server) { s.normalize = opts }
}

// WithDebugDir enables writing each frame's edge mask to dir.
func WithDebugDir(dir string) Option {
	return func(s *Server) { s.debugDir = dir }
}

// WithHub mirrors every published notification to WebSocket clients.
func WithHub(h *Hub) Option {
	return func(s *Server) { s.hub = h }
}

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Server) {
		s.in = in
		s.out = out
	}
}

// WithVersion sets the version reported by initialize.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New creates a new server instance
func New(opts ...Option) *Server {
	s := &Server{
		cache:    imaging.NewImageCache(),
		outliner: detection.Native{},
		logger:   log.Discard(),
		version:  "dev",
		in:       os.Stdin,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.enc = json.NewEncoder(s.out)
	s.inspector = pipeline.New(nil, nil,
		pipeline.WithOutliner(s.outliner),
		pipeline.WithLogger(s.logger.With("source", "tool")))
	return s
}

// Run reads requests line by line until the input ends or ctx is done.
// Malformed lines are logged and skipped.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineBytes)

	lines := make(chan []byte)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("server stopping", "reason", ctx.Err())
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-errc; err != nil {
					return fmt.Errorf("scanner error: %w", err)
				}
				return nil
			}
			s.handleLine(line)
		}
	}
}

func (s *Server) handleLine(line []byte) {
	if len(line) == 0 {
		return
	}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.logger.Warn("failed to parse request", "error", err)
		return
	}

	if resp := s.handleRequest(&req); resp != nil {
		if err := s.write(resp); err != nil {
			s.logger.Error("failed to encode response", "error", err)
		}
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *Request) *Response {
	switch req.Method {
	case "frame":
		return s.handleFrame(req)
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		if req.ID == nil {
			return nil
		}
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &RPCError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *Request) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "shape-detector",
				"version": s.version,
			},
		},
	}
}

// write encodes one message as a line on the output stream.
func (s *Server) write(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(v)
}
