package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sunnet-n/quiz-game/internal/domain"
)

// handleCommand exposes cmd as a REST endpoint. POST bodies are decoded into
// the request; the {code} path parameter and the ?question query override it.
func handleCommand(logger *slog.Logger, cmd command) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if r.Method == http.MethodPost {
			if err := readJSON(r, &req); err != nil {
				writeError(w, logger, r, err)
				return
			}
		}
		if code := chi.URLParam(r, "code"); code != "" {
			req.RoomCode = code
		}
		if raw := r.URL.Query().Get("question"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, logger, r, domain.ErrInvalidRequest)
				return
			}
			req.Question = &n
		}

		resp, err := cmd(r.Context(), req)
		if err != nil {
			writeError(w, logger, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleClientConfig(cfg ClientConfig) http.HandlerFunc {
	type pollIntervals struct {
		LobbyMs       int64 `json:"lobbyMs"`
		QuestionMs    int64 `json:"questionMs"`
		LeaderboardMs int64 `json:"leaderboardMs"`
	}
	type response struct {
		PollIntervals       pollIntervals `json:"pollIntervals"`
		AnswerWindowSeconds int           `json:"answerWindowSeconds"`
		TotalQuestions      int           `json:"totalQuestions"`
	}

	body := response{
		PollIntervals: pollIntervals{
			LobbyMs:       cfg.LobbyPoll.Milliseconds(),
			QuestionMs:    cfg.QuestionPoll.Milliseconds(),
			LeaderboardMs: cfg.LeaderboardPoll.Milliseconds(),
		},
		AnswerWindowSeconds: int(cfg.AnswerWindow.Seconds()),
		TotalQuestions:      cfg.TotalQuestions,
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, body)
	}
}
