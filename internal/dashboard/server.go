package dashboard

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Server hosts the progress page and its websocket endpoint. Routing goes
// through gorilla/mux's Router instead of the bare http.ServeMux the
// teacher's own server package uses, since mux's method-constrained routes
// are a better fit once a dashboard grows past one page and one socket.
type Server struct {
	addr   string
	hub    *Hub
	router *mux.Router
}

// NewServer wires up the "/" page and "/ws" websocket endpoint.
func NewServer(addr string, hub *Hub) *Server {
	s := &Server{addr: addr, hub: hub, router: mux.NewRouter()}
	s.router.HandleFunc("/", s.serveIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.serveWebsocket).Methods(http.MethodGet)
	return s
}

// ListenAndServe blocks serving HTTP until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{Addr: s.addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return httpServer.Close()
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("dashboard: serve: %w", err)
		}
		return nil
	}
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	if err := indexTemplate.Execute(w, nil); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	cli, err := newClient[Snapshot](s.hub.Updates(), w, r)
	if err != nil {
		return
	}
	_ = cli.sync()
}
