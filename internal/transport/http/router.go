package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sunnet-n/quiz-game/internal/app"
	"github.com/sunnet-n/quiz-game/internal/telemetry"
)

// ClientConfig is served to browsers so they can pace their polling.
type ClientConfig struct {
	LobbyPoll       time.Duration
	QuestionPoll    time.Duration
	LeaderboardPoll time.Duration
	AnswerWindow    time.Duration
	TotalQuestions  int
}

type RouterConfig struct {
	Service *app.GameService
	Logger  *slog.Logger
	Checks  map[string]Checker
	Client  ClientConfig
}

// NewRouter wires the REST API, the websocket command channel and the operational endpoints.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cmds := newCommands(cfg.Service)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newStructuredLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(telemetry.Metrics)
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", handleHealth(logger, cfg.Checks))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", NewWSHandler(cmds, logger).ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/client-config", handleClientConfig(cfg.Client))
		r.Post("/rooms/create", handleCommand(logger, cmds["create"]))
		r.Post("/rooms/join", handleCommand(logger, cmds["join"]))
		r.Route("/rooms/{code}", func(r chi.Router) {
			r.Get("/", handleCommand(logger, cmds["room"]))
			r.Get("/players", handleCommand(logger, cmds["players"]))
			r.Post("/start", handleCommand(logger, cmds["start"]))
			r.Get("/question", handleCommand(logger, cmds["question"]))
			r.Post("/answer", handleCommand(logger, cmds["answer"]))
			r.Post("/next-question", handleCommand(logger, cmds["next"]))
			r.Get("/leaderboard", handleCommand(logger, cmds["leaderboard"]))
			r.Get("/answers", handleCommand(logger, cmds["answers"]))
		})
	})
	return r
}

func newStructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
