package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"skihide/internal/wm"
	"skihide/pkg/core"
)

// Handler executes commands received over the socket.
type Handler interface {
	Toggle() error
	Show() error
	Hidden() map[wm.Handle]string
	Quit() error
}

type Server struct {
	path    string
	handler Handler
	log     core.Logger

	mu       sync.Mutex
	listener net.Listener
}

func NewServer(path string, handler Handler, log core.Logger) *Server {
	if log == nil {
		log = core.Nop{}
	}
	return &Server{path: path, handler: handler, log: log}
}

// Listen binds the socket, replacing a stale file left by a crashed run.
// Callers check for a live instance first.
func (s *Server) Listen() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing socket file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	listener, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("failed to start socket server: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.log.Info("Socket server started", "path", s.path)
	return nil
}

// Serve accepts connections until ctx is done. Listen must have succeeded.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()
	if listener == nil {
		return errors.New("socket server is not listening")
	}

	go func() {
		<-ctx.Done()
		listener.Close()
	}()
	defer os.Remove(s.path)

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.log.Info("Socket server stopped")
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Error("Failed to accept connection", err)
			continue
		}

		s.log.Debug("New connection accepted")

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	var req Request
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&req); err != nil {
		s.log.Error("Failed to decode request", err)
		return
	}

	s.log.Info("Received request", "command", req.Command)

	resp := s.dispatch(req.Command)

	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(resp); err != nil {
		s.log.Error("Failed to encode response", err)
	} else {
		s.log.Debug("Response sent successfully", "status", resp.Status)
	}
}

func (s *Server) dispatch(command string) Response {
	switch command {
	case CommandToggle:
		if err := s.handler.Toggle(); err != nil {
			s.log.Error("Toggle command failed", err)
			return Response{Status: StatusError, Message: err.Error()}
		}
		return Response{Status: StatusSuccess, Message: "Toggle queued"}
	case CommandShow:
		if err := s.handler.Show(); err != nil {
			s.log.Error("Show command failed", err)
			return Response{Status: StatusError, Message: err.Error()}
		}
		return Response{Status: StatusSuccess, Message: "Main window shown"}
	case CommandStatus:
		hidden := hiddenWindows(s.handler.Hidden())
		return Response{
			Status:  StatusSuccess,
			Message: fmt.Sprintf("%d window(s) hidden", len(hidden)),
			Hidden:  hidden,
		}
	case CommandQuit:
		if err := s.handler.Quit(); err != nil {
			s.log.Error("Quit command failed", err)
			return Response{Status: StatusError, Message: err.Error()}
		}
		return Response{Status: StatusSuccess, Message: "Quitting"}
	default:
		s.log.Error("Unknown command received", fmt.Errorf("command: %s", command))
		return Response{Status: StatusError, Message: "Unknown command"}
	}
}

func hiddenWindows(m map[wm.Handle]string) []wm.Window {
	out := make([]wm.Window, 0, len(m))
	for h, title := range m {
		out = append(out, wm.Window{Handle: h, Title: title})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}
