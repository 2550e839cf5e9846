// Package inspector serves a live view of a running program over HTTP and
// WebSocket: a plain-text dump of the optimized Program, and a stream of
// recompilation events pushed to any connected client as they happen.
package inspector

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/krobbi/fungus/internal/ir"
)

// Server is a debug-inspection HTTP server for a single Program.
type Server struct {
	addr       string
	httpServer *http.Server
	upgrader   websocket.Upgrader

	mu      sync.RWMutex
	program *ir.Program
	clients map[string]*client
}

type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

// New creates a Server bound to addr (e.g. "127.0.0.1:8765") reporting on
// program.
func New(addr string, program *ir.Program) *Server {
	s := &Server{
		addr:     addr,
		program:  program,
		clients:  make(map[string]*client),
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/dump", s.handleDump)
	mux.HandleFunc("/ws", s.handleWebSocket)
	s.httpServer = &http.Server{Addr: addr, Handler: mux}
	return s
}

// SetProgram replaces the Program being reported on, used after a
// recompilation builds a new one.
func (s *Server) SetProgram(program *ir.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = program
}

// Start begins serving in the background. It returns once the listener is
// bound; ListenAndServe errors after that point are not surfaced to the
// caller, matching a best-effort debug aid that should never crash the
// interpreter it's attached to.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("inspector: failed to bind %s: %w", s.addr, err)
	}
	go s.httpServer.Serve(ln)
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleDump(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	dump := s.program.String()
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, dump)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{id: uuid.NewString(), conn: conn}
	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, c.id)
		s.mu.Unlock()
		conn.Close()
	}()

	// The inspector only pushes events; it does not expect client messages,
	// but must keep reading to drain control frames and notice disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends an event line to every connected client, dropping any
// client whose connection has failed.
func (s *Server) Broadcast(event string) {
	s.mu.RLock()
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		err := c.conn.WriteMessage(websocket.TextMessage, []byte(event))
		c.mu.Unlock()
		if err != nil {
			s.mu.Lock()
			delete(s.clients, c.id)
			s.mu.Unlock()
		}
	}
}
