package server

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/ironsheep/shape-detector/internal/imaging"
	"github.com/ironsheep/shape-detector/internal/pipeline"
)

// Outbound notification methods.
const (
	MethodDetectedShape = "detected_shape"
	MethodServoAngle    = "servo_angle"
)

// ShapeMessage is the payload of a detected_shape notification.
type ShapeMessage struct {
	Data string `json:"data"`
}

// ServoMessage is the payload of a servo_angle notification.
type ServoMessage struct {
	Data int `json:"data"`
}

// FrameResult acknowledges a frame sent as a request with an ID.
type FrameResult struct {
	FrameID    string `json:"frame_id"`
	Detections int    `json:"detections"`
	Commands   int    `json:"commands"`
}

// handleFrame decodes a camera frame and runs it through the pipeline.
//
// A frame that cannot be decoded is logged and dropped. Nothing is
// published for it, and a request with an ID gets an error response.
func (s *Server) handleFrame(req *Request) *Response {
	frameID := uuid.NewString()
	logger := s.logger.With("frame_id", frameID)

	var msg imaging.FrameMessage
	if err := json.Unmarshal(req.Params, &msg); err != nil {
		logger.Error("frame decode failed", "error", err)
		return s.frameError(req, err)
	}
	logger.Info("image received from camera", "encoding", msg.Encoding, "bytes", len(msg.Data))

	img, err := imaging.DecodeFrame(msg)
	if err != nil {
		var decodeErr *imaging.DecodeError
		if errors.As(err, &decodeErr) {
			logger.Error("frame decode failed", "encoding", decodeErr.Encoding, "error", decodeErr.Err)
		} else {
			logger.Error("frame decode failed", "error", err)
		}
		return s.frameError(req, err)
	}

	b := img.Bounds()
	logger.Debug("frame decoded", "width", b.Dx(), "height", b.Dy())

	img = imaging.Normalize(img, s.normalize)

	if s.debugDir != "" {
		path, err := imaging.SaveDebug(s.debugDir, frameID, imaging.ExtractEdges(img))
		if err != nil {
			logger.Warn("debug snapshot failed", "error", err)
		} else {
			logger.Debug("debug snapshot saved", "path", path)
		}
	}

	driver := pipeline.New(s, s,
		pipeline.WithOutliner(s.outliner),
		pipeline.WithLogger(logger))
	res := driver.ProcessFrame(img)

	if req.ID == nil {
		return nil
	}
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: &FrameResult{
			FrameID:    frameID,
			Detections: len(res.Events),
			Commands:   len(res.Commands),
		},
	}
}

func (s *Server) frameError(req *Request, err error) *Response {
	if req.ID == nil {
		return nil
	}
	return s.errorResponse(req.ID, -32602, "Frame decode failed", err.Error())
}

// PublishShape writes a detected_shape notification and mirrors it to the
// hub when one is attached.
func (s *Server) PublishShape(ev pipeline.DetectionEvent) error {
	return s.publish(MethodDetectedShape, ShapeMessage{Data: ev.Label.String()})
}

// PublishServo writes a servo_angle notification and mirrors it to the hub
// when one is attached.
func (s *Server) PublishServo(cmd pipeline.ActuationCommand) error {
	return s.publish(MethodServoAngle, ServoMessage{Data: cmd.AngleDegrees})
}

func (s *Server) publish(method string, params interface{}) error {
	n := &Notification{JSONRPC: "2.0", Method: method, Params: params}
	if err := s.write(n); err != nil {
		return err
	}
	if s.hub != nil {
		return s.hub.Broadcast(n)
	}
	return nil
}
