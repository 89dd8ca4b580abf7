package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandPing      CommandType = "PING"
	CommandGetStatus CommandType = "GET_STATUS"
	CommandGetModes  CommandType = "GET_MODES"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning bool   `json:"daemon_running"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Frames        uint64 `json:"frames"`
	Participants  int    `json:"participants"`
	DesktopMode   string `json:"desktop_mode"`
	HDRStatus     string `json:"hdr_status"`
}

// ModeEntry describes a single catalog entry returned by GET_MODES
type ModeEntry struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Interlaced  bool    `json:"interlaced"`
	RefreshRate float64 `json:"refresh_rate"`
	Description string  `json:"description"`
}

// ModesData represents the data returned by GET_MODES
type ModesData struct {
	Modes []ModeEntry `json:"modes"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
