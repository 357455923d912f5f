package http

import (
	"context"

	"github.com/sunnet-n/quiz-game/internal/app"
	"github.com/sunnet-n/quiz-game/internal/domain"
)

// request is the union of every command payload. REST handlers fill RoomCode
// from the path; websocket clients send it in the payload.
type request struct {
	RoomCode     string `json:"roomCode"`
	PlayerID     string `json:"playerId"`
	HostNickname string `json:"hostNickname"`
	Nickname     string `json:"nickname"`
	Answer       *int   `json:"answer"`
	TimeSpent    int    `json:"timeSpent"`
	Question     *int   `json:"question"`
}

type sessionResponse struct {
	RoomCode string        `json:"roomCode"`
	PlayerID string        `json:"playerId"`
	Player   domain.Player `json:"player"`
	Room     domain.Room   `json:"room"`
}

type roomResponse struct {
	Room domain.Room `json:"room"`
}

type playersResponse struct {
	Players []domain.Player `json:"players"`
}

type leaderboardResponse struct {
	Leaderboard []domain.Player `json:"leaderboard"`
}

type answersResponse struct {
	Answers []domain.AnswerRecord `json:"answers"`
}

type command func(ctx context.Context, req request) (any, error)

// newCommands maps command names to game service calls. The same table backs
// the REST routes and the websocket channel.
func newCommands(svc *app.GameService) map[string]command {
	return map[string]command{
		"create": func(ctx context.Context, req request) (any, error) {
			room, host, err := svc.CreateRoom(ctx, req.HostNickname)
			if err != nil {
				return nil, err
			}
			return sessionResponse{RoomCode: room.Code, PlayerID: host.ID, Player: host, Room: room}, nil
		},
		"join": func(ctx context.Context, req request) (any, error) {
			player, room, err := svc.JoinRoom(ctx, req.RoomCode, req.Nickname)
			if err != nil {
				return nil, err
			}
			return sessionResponse{RoomCode: room.Code, PlayerID: player.ID, Player: player, Room: room}, nil
		},
		"room": func(ctx context.Context, req request) (any, error) {
			room, err := svc.GetRoom(ctx, req.RoomCode)
			if err != nil {
				return nil, err
			}
			return roomResponse{Room: room}, nil
		},
		"players": func(ctx context.Context, req request) (any, error) {
			players, err := svc.ListPlayers(ctx, req.RoomCode)
			if err != nil {
				return nil, err
			}
			return playersResponse{Players: players}, nil
		},
		"start": func(ctx context.Context, req request) (any, error) {
			room, err := svc.StartGame(ctx, req.RoomCode, req.PlayerID)
			if err != nil {
				return nil, err
			}
			return roomResponse{Room: room}, nil
		},
		"question": func(ctx context.Context, req request) (any, error) {
			return svc.CurrentQuestion(ctx, req.RoomCode)
		},
		"answer": func(ctx context.Context, req request) (any, error) {
			if req.Answer == nil {
				return nil, domain.ErrInvalidAnswer
			}
			return svc.SubmitAnswer(ctx, req.RoomCode, req.PlayerID, *req.Answer, req.TimeSpent)
		},
		"next": func(ctx context.Context, req request) (any, error) {
			room, err := svc.AdvanceQuestion(ctx, req.RoomCode, req.PlayerID)
			if err != nil {
				return nil, err
			}
			return roomResponse{Room: room}, nil
		},
		"leaderboard": func(ctx context.Context, req request) (any, error) {
			players, err := svc.Leaderboard(ctx, req.RoomCode)
			if err != nil {
				return nil, err
			}
			return leaderboardResponse{Leaderboard: players}, nil
		},
		"answers": func(ctx context.Context, req request) (any, error) {
			if req.Question == nil {
				return nil, domain.ErrInvalidRequest
			}
			answers, err := svc.ListAnswers(ctx, req.RoomCode, *req.Question)
			if err != nil {
				return nil, err
			}
			return answersResponse{Answers: answers}, nil
		},
	}
}
