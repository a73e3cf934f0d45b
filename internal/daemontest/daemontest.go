// Package daemontest provides a scripted stand-in for the sync daemon's
// command socket, for tests and manual runs.
package daemontest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/example/syncmenu/internal/ipc"
	"github.com/example/syncmenu/internal/protocol"
)

// Request is one framed request received by the server.
type Request struct {
	Command string
	Args    map[string][]string
	Raw     string
}

// Paths returns the request's path arguments.
func (r Request) Paths() []string {
	return r.Args[protocol.MarkerPaths]
}

// Verb returns the request's verb argument, if any.
func (r Request) Verb() string {
	if v := r.Args[protocol.MarkerVerb]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Handler produces the raw reply for req. The connection is closed after the
// reply is written, so a reply without a "done" line ends the stream early.
type Handler func(req Request) string

// Static answers every request with body.
func Static(body string) Handler {
	return func(Request) string { return body }
}

// Server is a unix-socket daemon double that records every request.
type Server struct {
	endpoint ipc.Endpoint
	listener net.Listener
	handler  Handler

	mu       sync.Mutex
	requests []Request

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// TB is the part of testing.TB that Start needs. Taking it as an interface
// keeps the testing package out of binaries that link daemontest.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
	Cleanup(func())
}

// Start runs a server on a short-lived socket and stops it when tb finishes.
func Start(tb TB, handler Handler) *Server {
	tb.Helper()
	// Unix socket paths are length limited, so avoid the long t.TempDir names.
	dir, err := os.MkdirTemp("", "syncmenu")
	if err != nil {
		tb.Fatalf("create socket dir: %v", err)
	}
	s, err := New(dir, handler)
	if err != nil {
		_ = os.RemoveAll(dir)
		tb.Fatalf("start fake daemon: %v", err)
	}
	tb.Cleanup(func() {
		_ = s.Close()
		_ = os.RemoveAll(dir)
	})
	return s
}

// New starts a server on a fresh socket inside dir.
func New(dir string, handler Handler) (*Server, error) {
	return Listen(ipc.SocketEndpoint(filepath.Join(dir, "command_socket")), handler)
}

// Listen starts a server on endpoint.
func Listen(endpoint ipc.Endpoint, handler Handler) (*Server, error) {
	listener, err := endpoint.Listen()
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", endpoint.String(), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{endpoint: endpoint, listener: listener, handler: handler, cancel: cancel}
	s.wg.Add(1)
	go s.serve(ctx)
	return s, nil
}

// Endpoint is the address clients should dial.
func (s *Server) Endpoint() ipc.Endpoint {
	return s.endpoint
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// WaitForRequests blocks until n requests were recorded or timeout elapses.
func (s *Server) WaitForRequests(n int, timeout time.Duration) []Request {
	deadline := time.Now().Add(timeout)
	for {
		reqs := s.Requests()
		if len(reqs) >= n || time.Now().After(deadline) {
			return reqs
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Close stops the listener and waits for in-flight connections.
func (s *Server) Close() error {
	s.cancel()
	err := s.listener.Close()
	s.wg.Wait()
	return err
}

func (s *Server) serve(ctx context.Context) {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Printf("daemontest: accept error: %v", err)
			time.Sleep(10 * time.Millisecond)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(10 * time.Second))

	req, err := readRequest(bufio.NewReader(conn))
	if err != nil {
		log.Printf("daemontest: failed to read request: %v", err)
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.handler == nil {
		return
	}
	if reply := s.handler(req); reply != "" {
		_, _ = conn.Write([]byte(reply))
	}
}

func readRequest(r *bufio.Reader) (Request, error) {
	var raw strings.Builder
	req := Request{Args: make(map[string][]string)}

	for first := true; ; first = false {
		line, err := r.ReadString('\n')
		raw.WriteString(line)
		trimmed := strings.TrimRight(line, "\r\n")

		switch {
		case trimmed == protocol.LineDone && !first:
			req.Raw = raw.String()
			return req, nil
		case first:
			req.Command = trimmed
		case trimmed != "":
			fields := strings.Split(trimmed, protocol.FieldSeparator)
			req.Args[fields[0]] = append(req.Args[fields[0]], fields[1:]...)
		}

		if err != nil {
			return req, fmt.Errorf("request ended early: %w", err)
		}
	}
}
