package app

import (
	"context"
	"sort"

	"github.com/sunnet-n/quiz-game/internal/domain"
	"github.com/sunnet-n/quiz-game/internal/telemetry"
)

// JoinRoom registers a guest player in a room that is still waiting.
// There is no capacity limit and nicknames may repeat.
func (s *GameService) JoinRoom(ctx context.Context, code, nickname string) (domain.Player, domain.Room, error) {
	nickname, err := domain.NormalizeNickname(nickname)
	if err != nil {
		return domain.Player{}, domain.Room{}, err
	}
	code = domain.NormalizeRoomCode(code)

	unlock := s.lockRoom(code)
	defer unlock()

	room, err := s.GetRoom(ctx, code)
	if err != nil {
		return domain.Player{}, domain.Room{}, err
	}
	if room.Status != domain.StatusWaiting {
		return domain.Player{}, domain.Room{}, domain.ErrAlreadyStarted
	}

	player := domain.Player{
		ID:       s.newID(),
		Nickname: nickname,
		JoinedAt: s.now(),
	}
	if err := setJSON(ctx, s.store, playerKey(room.Code, player.ID), player); err != nil {
		return domain.Player{}, domain.Room{}, err
	}

	telemetry.PlayersJoined.Inc()
	s.logger.InfoContext(ctx, "player joined", "room", room.Code, "player", player.ID)
	return player, room, nil
}

// GetPlayer loads one player of a room.
func (s *GameService) GetPlayer(ctx context.Context, code, playerID string) (domain.Player, error) {
	code = domain.NormalizeRoomCode(code)
	if playerID == "" {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	var p domain.Player
	if err := getJSON(ctx, s.store, playerKey(code, playerID), &p, domain.ErrPlayerNotFound); err != nil {
		return domain.Player{}, err
	}
	return p, nil
}

// ListPlayers returns the members of a room in join order.
func (s *GameService) ListPlayers(ctx context.Context, code string) ([]domain.Player, error) {
	room, err := s.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	players, err := s.scanPlayers(ctx, room.Code)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(players, func(i, j int) bool {
		if !players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].JoinedAt.Before(players[j].JoinedAt)
		}
		return players[i].ID < players[j].ID
	})
	return players, nil
}

func (s *GameService) scanPlayers(ctx context.Context, code string) ([]domain.Player, error) {
	return scanJSON[domain.Player](ctx, s.store, playerPrefix(code))
}
