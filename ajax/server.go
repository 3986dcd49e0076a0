package ajax

import (
	"context"
	"net/http"
	"time"
)

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Addr is the HTTP listen address (default ":8080").
	Addr string
	// AjaxPath is the single endpoint every action is posted to.
	AjaxPath string
	// NoncePath serves the nonces a page embeds (default "/nonces").
	NoncePath    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the AJAX HTTP server.
type Server struct {
	config     ServerConfig
	dispatcher *Dispatcher
	httpServer *http.Server
	mux        *http.ServeMux
}

func NewServer(cfg ServerConfig, d *Dispatcher) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.AjaxPath == "" {
		cfg.AjaxPath = "/wp-admin/admin-ajax.php"
	}
	if cfg.NoncePath == "" {
		cfg.NoncePath = "/nonces"
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	s := &Server{config: cfg, dispatcher: d, mux: http.NewServeMux()}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.Handle(s.config.AjaxPath, s.dispatcher)
	s.mux.HandleFunc(s.config.NoncePath, s.handleNonces)
	s.mux.HandleFunc("/healthz", s.handleHealth)
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.withMiddleware(s.mux)
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) withMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		handler.ServeHTTP(w, r)
	})
}

// handleNonces hands out the public nonces. The admin nonce is only
// included for authorized callers.
func (s *Server) handleNonces(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	n := s.dispatcher.nonces
	out := map[string]string{
		NonceChart:     n.Create(NonceChart),
		NonceDatatable: n.Create(NonceDatatable),
		NoncePassword:  n.Create(NoncePassword),
	}
	if s.dispatcher.admin.Authorized(r) {
		out[NonceAjax] = n.Create(NonceAjax)
	}
	writeJSON(w, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "healthy"})
}
