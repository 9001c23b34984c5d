// Package console is the loopback diagnostic transport. An app started
// with --dev streams its debug log to a Client; `jterm console` runs a
// Server that prints every line it receives.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
)

// DefaultAddr is where the console listens unless configured otherwise.
const DefaultAddr = "127.0.0.1:8765"

// Server accepts client sessions over websocket and prints their lines.
type Server struct {
	out      io.Writer
	mu       sync.Mutex
	upgrader websocket.Upgrader

	session *color.Color
	stamp   *color.Color
}

// NewServer creates a server printing to out.
func NewServer(out io.Writer) *Server {
	return &Server{
		out:      out,
		upgrader: websocket.Upgrader{ReadBufferSize: 4096, WriteBufferSize: 1024},
		session:  color.New(color.FgGreen, color.Bold),
		stamp:    color.New(color.FgCyan),
	}
}

// Handler returns the router: /ws for sessions, /healthz for probes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok\n")
	})
	r.Get("/ws", s.handleSession)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("console listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.printf("console listening on %s\n", ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id := ulid.Make().String()
	s.mu.Lock()
	s.session.Fprintf(s.out, "[%s] connected from %s\n", id, r.RemoteAddr)
	s.mu.Unlock()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
			s.mu.Lock()
			s.stamp.Fprintf(s.out, "%s ", time.Now().Format("15:04:05.000"))
			fmt.Fprintln(s.out, line)
			s.mu.Unlock()
		}
	}

	s.mu.Lock()
	s.session.Fprintf(s.out, "[%s] disconnected\n", id)
	s.mu.Unlock()
}

func (s *Server) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}
