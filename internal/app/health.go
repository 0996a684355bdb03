package app

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Freeeeeet/repair_bot/internal/recommendation"
)

const pingTimeout = 2 * time.Second

// Pinger проверка хранилища, pgxpool.Pool подходит
type Pinger interface {
	Ping(ctx context.Context) error
}

// AdviceReporter последнее известное состояние консультанта без нового запроса
type AdviceReporter interface {
	LastStatus() recommendation.Status
}

type healthResponse struct {
	Status   string `json:"status"`
	Storage  string `json:"storage"`
	Sessions int    `json:"sessions"`
	Error    string `json:"error,omitempty"`
}

type adviceResponse struct {
	Configured bool       `json:"configured"`
	Available  bool       `json:"available"`
	LastError  string     `json:"last_error,omitempty"`
	CheckedAt  *time.Time `json:"checked_at,omitempty"`
}

// HealthHandler служебные HTTP ручки: /healthz и /status/advice
type HealthHandler struct {
	storage  string
	db       Pinger
	sessions func() int
	advice   AdviceReporter
	logger   *zap.Logger
}

// NewHealthHandler db может быть nil для хранилища в памяти
func NewHealthHandler(storage string, db Pinger, sessions func() int, advice AdviceReporter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		storage:  storage,
		db:       db,
		sessions: sessions,
		advice:   advice,
		logger:   logger,
	}
}

func (h *HealthHandler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(10 * time.Second))

	router.Get("/healthz", h.healthz)
	router.Get("/status/advice", h.adviceStatus)
	return router
}

func (h *HealthHandler) healthz(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Storage: h.storage}
	if h.sessions != nil {
		resp.Sessions = h.sessions()
	}

	code := http.StatusOK
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.Error(err))
			resp.Status = "unavailable"
			resp.Error = err.Error()
			code = http.StatusServiceUnavailable
		}
	}

	h.writeJSON(w, code, resp)
}

func (h *HealthHandler) adviceStatus(w http.ResponseWriter, _ *http.Request) {
	st := h.advice.LastStatus()
	resp := adviceResponse{
		Configured: st.Configured,
		Available:  st.Available,
		LastError:  st.LastError,
	}
	if !st.CheckedAt.IsZero() {
		checked := st.CheckedAt.UTC()
		resp.CheckedAt = &checked
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *HealthHandler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Failed to write response", zap.Error(err))
	}
}

// NewHealthServer HTTP сервер для служебных ручек
func NewHealthServer(addr string, handler *HealthHandler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
