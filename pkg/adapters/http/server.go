// Package http exposes the carebot session manager as a JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/carebot"
	"github.com/aretw0/carebot/internal/logging"
	"github.com/aretw0/carebot/internal/text"
	"github.com/aretw0/carebot/pkg/domain"
	"github.com/aretw0/carebot/pkg/observability"
	"github.com/aretw0/carebot/pkg/ports"
	"github.com/aretw0/carebot/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Service is the subset of session.Manager the API needs.
type Service interface {
	SendMessage(ctx context.Context, userID, message string) (*session.Reply, error)
	InitiateCheckIn(ctx context.Context, userID string) (*session.Reply, error)
	RetrieveContext(ctx context.Context, userID string) (*domain.FlowState, error)
	UpdateContext(ctx context.Context, userID string, flow domain.FlowState) error
}

var _ Service = (*session.Manager)(nil)

// Server holds the handlers' dependencies.
type Server struct {
	Service   Service
	Streams   *StreamManager
	auth      *Authenticator
	sanitizer *text.Sanitizer
	metrics   *observability.Metrics
	health    ports.Pinger
	logger    *slog.Logger
	rateLimit int
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics enables request metrics and the /metrics endpoint.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithSanitizer replaces the default inbound message sanitizer.
func WithSanitizer(sz *text.Sanitizer) Option {
	return func(s *Server) {
		s.sanitizer = sz
	}
}

// WithHealthCheck makes /health ping the backing store.
func WithHealthCheck(p ports.Pinger) Option {
	return func(s *Server) {
		s.health = p
	}
}

// WithRateLimit limits each client to perMinute requests. Zero disables it.
func WithRateLimit(perMinute int) Option {
	return func(s *Server) {
		s.rateLimit = perMinute
	}
}

// NewHandler creates the HTTP handler. secret verifies bearer tokens.
func NewHandler(svc Service, secret []byte, opts ...Option) http.Handler {
	s := &Server{
		Service:   svc,
		auth:      NewAuthenticator(secret),
		sanitizer: text.NewSanitizer(0),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	if s.metrics != nil {
		r.Use(s.observe)
	}
	if s.rateLimit > 0 {
		r.Use(newRateLimiter(s.rateLimit).middleware)
	}

	r.Get("/", s.GetHome)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.With(s.auth.RequireUser).Get("/retrieveContext", s.RetrieveContext)
		// Body validation runs before authentication on these two routes.
		r.With(validateSendMessage, s.auth.RequireUser).Post("/sendMessage", s.SendMessage)
		r.With(s.auth.RequireUser).Post("/initiateCheckIn", s.InitiateCheckIn)
		r.With(validateUpdateContext, s.auth.RequireUser).Post("/updateContext", s.UpdateContext)
		r.With(s.auth.RequireUser).Get("/events", s.SubscribeEvents)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusNotFound, "Not Found")
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHome handles GET /.
func (s *Server) GetHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Welcome to Intent Detection api!"})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			s.logger.Error("Health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "carebot-http",
		"version": strings.TrimSpace(carebot.Version),
	})
}

// RetrieveContext handles GET /api/retrieveContext.
func (s *Server) RetrieveContext(w http.ResponseWriter, r *http.Request) {
	uid := UserID(r.Context())
	flow, err := s.Service.RetrieveContext(r.Context(), uid)
	if err != nil {
		s.internalError(w, r, "retrieve_context", err)
		return
	}
	writeJSON(w, http.StatusOK, contextResponse{Context: flow})
}

// SendMessage handles POST /api/sendMessage.
func (s *Server) SendMessage(w http.ResponseWriter, r *http.Request) {
	body := payloadFrom[sendMessageRequest](r.Context())
	uid := UserID(r.Context())

	msg, err := s.sanitizer.Sanitize(*body.Message)
	if err != nil {
		s.logger.Warn("SendMessage: Input rejected", "error", err, "size", len(*body.Message))
		writeValidationErrors(w, fieldError("message", *body.Message, inputErrorMessage(err)))
		return
	}

	reply, err := s.Service.SendMessage(r.Context(), uid, msg)
	if err != nil {
		s.internalError(w, r, "send_message", err)
		return
	}

	s.broadcast(uid, reply)
	writeJSON(w, http.StatusOK, messageResponse{Message: reply.Message})
}

// InitiateCheckIn handles POST /api/initiateCheckIn.
func (s *Server) InitiateCheckIn(w http.ResponseWriter, r *http.Request) {
	uid := UserID(r.Context())
	reply, err := s.Service.InitiateCheckIn(r.Context(), uid)
	if err != nil {
		s.internalError(w, r, "initiate_check_in", err)
		return
	}

	s.broadcast(uid, reply)
	writeJSON(w, http.StatusOK, messageResponse{Message: reply.Message})
}

// UpdateContext handles POST /api/updateContext.
func (s *Server) UpdateContext(w http.ResponseWriter, r *http.Request) {
	body := payloadFrom[updateContextRequest](r.Context())
	uid := UserID(r.Context())
	flow := domain.FlowState(*body.Context)

	if err := s.Service.UpdateContext(r.Context(), uid, flow); err != nil {
		s.internalError(w, r, "update_context", err)
		return
	}

	s.broadcast(uid, &session.Reply{Flow: flow})
	writeJSON(w, http.StatusOK, messageResponse{Message: "user context updated"})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Error("Request failed",
		"operation", op,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	if s.metrics != nil {
		s.metrics.RecordError(op)
	}
	writeStatus(w, http.StatusInternalServerError, "Internal Server Error")
}

func (s *Server) broadcast(uid string, reply *session.Reply) {
	event := flowEvent{Flow: reply.Flow, Intent: reply.Intent}
	if bytes, err := json.Marshal(event); err == nil {
		s.Streams.Broadcast(uid, string(bytes))
	}
}

func inputErrorMessage(err error) string {
	switch {
	case errors.Is(err, text.ErrInputTooLarge):
		return "Message is too long"
	case errors.Is(err, text.ErrInvalidUTF8):
		return "Message must be valid UTF-8"
	default:
		return "Message is invalid"
	}
}
