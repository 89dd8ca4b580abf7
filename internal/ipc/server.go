package ipc

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/mediawin/internal/runtimepath"
)

// Provider supplies the daemon state reported over IPC.
type Provider interface {
	Frames() uint64
	Participants() int
	DesktopMode() string
	HDRStatus() string
	Modes() ([]ModeEntry, error)
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	provider     Provider
	startTime    time.Time
	logger       *slog.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(provider Provider, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		socketPath: socketPath,
		provider:   provider,
		startTime:  time.Now(),
		logger:     logger,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// Stop shuts the listener down and removes the socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Error("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Error("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal IPC response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Error("failed to send IPC response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandPing:
		resp, _ := NewOKResponse(nil)
		return resp
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetModes:
		return s.handleGetModes()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	status := StatusData{
		DaemonRunning: true,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Frames:        s.provider.Frames(),
		Participants:  s.provider.Participants(),
		DesktopMode:   s.provider.DesktopMode(),
		HDRStatus:     s.provider.HDRStatus(),
	}

	resp, err := NewOKResponse(status)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetModes() *Response {
	modes, err := s.provider.Modes()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("failed to enumerate modes: %v", err))
	}

	resp, err := NewOKResponse(ModesData{Modes: modes})
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) sendError(conn net.Conn, msg string) {
	resp := NewErrorResponse(msg)
	data, err := resp.Marshal()
	if err != nil {
		return
	}
	data = append(data, '\n')
	conn.Write(data)
}
