package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/shape-detector/internal/imaging"
	"github.com/ironsheep/shape-detector/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "shape_detect").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *Request) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "shape_detect":
		return s.handleShapeDetect(args)
	case "shape_edge_detect":
		return s.handleShapeEdgeDetect(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type shapeDetectArgs struct {
	Path     string          `json:"path"`
	Region   *imaging.Region `json:"region,omitempty"`
	MaxWidth int             `json:"max_width"`
}

// ShapeDetectResult is the shape_detect tool output.
type ShapeDetectResult struct {
	// Width and Height are the dimensions after cropping and downscaling.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Count is the number of contours found.
	Count int `json:"count"`

	*pipeline.Result
}

func (s *Server) handleShapeDetect(args json.RawMessage) (interface{}, error) {
	var a shapeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	opts := s.normalize
	if a.Region != nil {
		opts.ROI = *a.Region
	}
	if a.MaxWidth > 0 {
		opts.MaxWidth = a.MaxWidth
	}
	img = imaging.Normalize(img, opts)

	res := s.inspector.ProcessFrame(img)
	return &ShapeDetectResult{
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		Count:  len(res.Events),
		Result: res,
	}, nil
}

func (s *Server) handleShapeEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EdgeDetect(imaging.Normalize(img, s.normalize))
}
