package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Pinger is a dependency that can report its health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the handlers and dependencies served by the API.
type Deps struct {
	Store     Pinger
	Redis     *redis.Client
	Questions *question.HTTPHandlers
	Quizzes   *quiz.HTTPHandlers
}

// NewHTTPServer wires the API routes plus health and metrics endpoints.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, deps Deps) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(cfg.CORS, logger, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewHandler builds the routed handler wrapped in CORS, logging and metrics
// middleware.
func NewHandler(cors config.CORS, logger zerolog.Logger, deps Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), deps.Store, deps.Redis); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondError(w, http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if h := deps.Questions; h != nil {
		mux.HandleFunc("GET /categories", h.ListCategories)
		mux.HandleFunc("GET /categories/{id}/questions", h.ListCategoryQuestions)
		mux.HandleFunc("GET /questions", h.ListQuestions)
		mux.HandleFunc("POST /questions", h.CreateQuestion)
		mux.HandleFunc("POST /questions/search", h.SearchQuestions)
		mux.HandleFunc("DELETE /questions/{id}", h.DeleteQuestion)
	}

	if h := deps.Quizzes; h != nil {
		mux.HandleFunc("POST /quizzes", h.Play)
	}

	mux.HandleFunc("/", unmatched(mux))

	return withCORS(cors, withRequestContext(logger, mux))
}

// routeMethods are the methods the API registers routes for.
var routeMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete}

// unmatched answers requests no route claims: 405 with an Allow header when
// the path exists under another method, 404 otherwise.
func unmatched(mux *http.ServeMux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		for _, method := range routeMethods {
			if method == r.Method {
				continue
			}
			alt := r.Clone(r.Context())
			alt.Method = method
			if _, pattern := mux.Handler(alt); pattern != "" && pattern != "/" {
				allowed = append(allowed, method)
			}
		}
		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
			httperrors.RespondMethodNotAllowed(w)
			return
		}
		httperrors.RespondNotFound(w)
	}
}

func pingDependencies(ctx context.Context, store Pinger, redis *redis.Client) error {
	if store != nil {
		if err := store.Ping(ctx); err != nil {
			return err
		}
	}
	if redis != nil {
		if err := redis.Ping(ctx).Err(); err != nil {
			return err
		}
	}
	return nil
}
