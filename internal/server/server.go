// Package server exposes the learning engine as a JSON API under /api/v1.
// Sessions are addressed with the X-Session-ID header; every mutating
// response carries the effects the operation produced so a front end can
// render level-ups and achievement toasts.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/btced/btced/internal/config"
	"github.com/btced/btced/internal/content"
	"github.com/btced/btced/internal/price"
	"github.com/btced/btced/internal/session"
)

// SessionHeader names the session-addressing header.
const SessionHeader = "X-Session-ID"

// Server routes API requests to a session manager.
type Server struct {
	logger   *slog.Logger
	sessions *session.Manager
	library  *content.Library
	price    *price.Client
	router   chi.Router
}

// New builds the server and its route tree.
func New(cfg config.Config, logger *slog.Logger, sessions *session.Manager, library *content.Library, priceClient *price.Client) *Server {
	s := &Server{
		logger:   logger,
		sessions: sessions,
		library:  library,
		price:    priceClient,
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", SessionHeader},
		ExposedHeaders:   []string{SessionHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Get("/price", s.priceSpot)

		r.Post("/sessions", s.createSession)

		// Everything below needs an existing session.
		r.Group(func(r chi.Router) {
			r.Use(s.withSession)

			r.Get("/session", s.getSession)
			r.Delete("/session", s.deleteSession)
			r.Put("/session/language", s.setLanguage)

			r.Get("/progress", s.getProgress)

			r.Get("/lessons", s.listLessons)
			r.Post("/lessons/{id}/complete", s.completeLesson)

			r.Get("/quiz", s.quizCurrent)
			r.Post("/quiz/answer", s.quizAnswer)
			r.Post("/quiz/next", s.quizNext)
			r.Post("/quiz/restart", s.quizRestart)

			r.Get("/stories", s.listStories)
			r.Post("/stories/{id}/select", s.selectStory)
			r.Get("/story", s.storyCurrent)
			r.Post("/story/next", s.storyNext)
			r.Post("/story/prev", s.storyPrev)
			r.Post("/story/finish", s.storyFinish)

			r.Get("/wallet", s.walletBalance)
			r.Get("/wallet/history", s.walletHistory)
			r.Post("/wallet/send", s.walletSend)
			r.Post("/wallet/receive", s.walletReceive)
			r.Post("/wallet/reset", s.walletReset)

			r.Post("/budget/evaluate", s.budgetEvaluate)

			r.Get("/tutor/{persona}/intro", s.tutorIntro)
			r.Post("/tutor/{persona}/chat", s.tutorChat)
			r.Post("/tutor/{persona}/reset", s.tutorReset)
			r.Post("/tutor/adventure/choose", s.tutorChoose)
			r.Put("/tutor/adventure/student", s.tutorStudent)
		})
	})

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// requestLogger logs one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", chiMiddleware.GetReqID(r.Context()),
		)
	})
}

type sessionKeyType struct{}

var sessionKey sessionKeyType

// withSession resolves the X-Session-ID header to a live session and stores
// it on the request context.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if id == "" {
			Error(w, http.StatusBadRequest, "missing "+SessionHeader+" header")
			return
		}
		sess := s.sessions.Get(id)
		if sess == nil {
			Error(w, http.StatusNotFound, "unknown session")
			return
		}
		ctx := r.Context()
		next.ServeHTTP(w, r.WithContext(contextWithSession(ctx, sess)))
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// decode reads a JSON body into v, rejecting unknown fields.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
