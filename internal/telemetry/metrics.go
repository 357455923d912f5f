package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quiz",
		Name:      "rooms_created_total",
		Help:      "Rooms created.",
	})
	PlayersJoined = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quiz",
		Name:      "players_joined_total",
		Help:      "Players that joined an existing room.",
	})
	AnswersSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quiz",
		Name:      "answers_submitted_total",
		Help:      "Scored answer submissions.",
	}, []string{"correct"})
	GamesFinished = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quiz",
		Name:      "games_finished_total",
		Help:      "Games that moved past their last question.",
	})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "quiz",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// ObserveAnswer counts one scored submission.
func ObserveAnswer(correct bool) {
	AnswersSubmitted.WithLabelValues(strconv.FormatBool(correct)).Inc()
}

// Metrics records request latency labelled by the matched chi route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		requestDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
