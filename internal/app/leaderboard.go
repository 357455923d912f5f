package app

import (
	"context"
	"sort"

	"github.com/sunnet-n/quiz-game/internal/domain"
)

// Leaderboard ranks the players of a room by score, highest first.
// Ties go to whoever joined earlier, then by nickname and id.
func (s *GameService) Leaderboard(ctx context.Context, code string) ([]domain.Player, error) {
	room, err := s.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	players, err := s.scanPlayers(ctx, room.Code)
	if err != nil {
		return nil, err
	}
	rank(players)
	return players, nil
}

func rank(players []domain.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.JoinedAt.Equal(b.JoinedAt) {
			return a.JoinedAt.Before(b.JoinedAt)
		}
		if a.Nickname != b.Nickname {
			return a.Nickname < b.Nickname
		}
		return a.ID < b.ID
	})
}
