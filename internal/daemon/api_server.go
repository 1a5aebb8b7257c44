package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"whispersend/internal/api"
	"whispersend/internal/config"
	"whispersend/internal/logging"
	"whispersend/internal/settings"
	"whispersend/internal/trigger"
)

const (
	maxRequestBody = 64 << 10
	maxHistory     = 500
)

type apiServer struct {
	bind         string
	logger       *slog.Logger
	daemon       *Daemon
	historyLimit int
	validate     *validator.Validate
	handler      http.Handler

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) *apiServer {
	srv := &apiServer{
		bind:         strings.TrimSpace(cfg.Paths.APIBind),
		logger:       logging.NewComponentLogger(logger, "api-server"),
		daemon:       d,
		historyLimit: cfg.Daemon.HistoryLimit,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
	srv.handler = srv.routes(cfg.Daemon.AllowedOrigins)
	return srv
}

func (s *apiServer) routes(origins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/triggers/toolbar", s.handleToolbar)
		r.Post("/triggers/menu", s.handleMenu)
		r.Get("/menus", s.handleMenus)
		r.Get("/badge", s.handleBadge)
		r.Get("/notifications", s.handleNotifications)
		r.Get("/history", s.handleHistory)
		r.Get("/status", s.handleStatus)
		r.Get("/settings/base-url", s.handleGetBaseURL)
		r.Put("/settings/base-url", s.handlePutBaseURL)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	server := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.mu.Lock()
	s.listener = listener
	s.server = server
	s.mu.Unlock()

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", slog.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	s.mu.Lock()
	server, listener := s.server, s.listener
	s.server, s.listener = nil, nil
	s.mu.Unlock()

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}
	if listener != nil {
		_ = listener.Close()
	}
}

func (s *apiServer) address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleToolbar(w http.ResponseWriter, r *http.Request) {
	var req api.ToolbarRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var tab *trigger.Tab
	if req.TabURL != "" {
		tab = &trigger.Tab{URL: req.TabURL}
	}
	result := s.daemon.Dispatch(r.Context(), trigger.Toolbar{Tab: tab})
	s.writeJSON(w, http.StatusOK, api.FromResult(result))
}

func (s *apiServer) handleMenu(w http.ResponseWriter, r *http.Request) {
	var req api.MenuRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, http.StatusBadRequest, "menu_item_id is required")
		return
	}
	src, err := trigger.FromMenuClick(req, nil)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result := s.daemon.Dispatch(r.Context(), src)
	s.writeJSON(w, http.StatusOK, api.FromResult(result))
}

func (s *apiServer) handleMenus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, api.MenuListResponse{Menus: trigger.Menus()})
}

func (s *apiServer) handleBadge(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, api.FromBadge(s.daemon.badge.Snapshot()))
}

func (s *apiServer) handleNotifications(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, api.NotificationListResponse{
		Notifications: api.FromTray(s.daemon.tray.Active()),
	})
}

func (s *apiServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := s.historyLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	if limit > maxHistory {
		limit = maxHistory
	}
	subs, err := s.daemon.store.RecentSubmissions(r.Context(), limit)
	if err != nil {
		s.logger.Warn("history query failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, api.HistoryResponse{Submissions: api.FromSubmissions(subs)})
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := s.daemon.Status(r.Context())
	payload := api.DaemonStatus{
		Running:      status.Running,
		PID:          status.PID,
		Address:      status.Address,
		DatabasePath: status.DatabasePath,
		LockFilePath: status.LockFilePath,
		BaseURL:      status.BaseURL,
		NtfyEnabled:  status.NtfyEnabled,
		PendingTasks: status.PendingTasks,
	}
	if !status.StartedAt.IsZero() {
		payload.StartedAt = status.StartedAt.UTC().Format(time.RFC3339)
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *apiServer) handleGetBaseURL(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, api.BaseURL{BaseURL: s.daemon.resolver.ResolveBaseURL(r.Context())})
}

func (s *apiServer) handlePutBaseURL(w http.ResponseWriter, r *http.Request) {
	var req api.BaseURL
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, http.StatusBadRequest, "base_url is required")
		return
	}
	if err := s.daemon.resolver.SaveBaseURL(r.Context(), req.BaseURL); err != nil {
		if errors.Is(err, settings.ErrInvalidBaseURL) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Warn("save base url failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "settings unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, api.BaseURL{BaseURL: s.daemon.resolver.ResolveBaseURL(r.Context())})
}

// decode reads a JSON body. An empty body decodes to the zero value.
func (s *apiServer) decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("malformed request body: %w", err)
	}
	return nil
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}
