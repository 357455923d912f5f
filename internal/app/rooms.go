package app

import (
	"context"
	"fmt"

	"github.com/sunnet-n/quiz-game/internal/domain"
	"github.com/sunnet-n/quiz-game/internal/telemetry"
)

// CreateRoom opens a room in the waiting phase with hostNickname as its host.
// Room and host player are written in a single atomic SetMany.
func (s *GameService) CreateRoom(ctx context.Context, hostNickname string) (domain.Room, domain.Player, error) {
	nickname, err := domain.NormalizeNickname(hostNickname)
	if err != nil {
		return domain.Room{}, domain.Player{}, err
	}

	now := s.now()
	host := domain.Player{
		ID:       s.newID(),
		Nickname: nickname,
		IsHost:   true,
		JoinedAt: now,
	}
	room := domain.Room{
		Code:      s.newCode(),
		HostID:    host.ID,
		Status:    domain.StatusWaiting,
		CreatedAt: now,
	}

	roomEntry, err := entry(roomKey(room.Code), room)
	if err != nil {
		return domain.Room{}, domain.Player{}, err
	}
	hostEntry, err := entry(playerKey(room.Code, host.ID), host)
	if err != nil {
		return domain.Room{}, domain.Player{}, err
	}
	if err := s.store.SetMany(ctx, roomEntry, hostEntry); err != nil {
		return domain.Room{}, domain.Player{}, fmt.Errorf("create room %s: %w", room.Code, err)
	}

	telemetry.RoomsCreated.Inc()
	s.logger.InfoContext(ctx, "room created", "room", room.Code, "host", host.ID)
	return room, host, nil
}

// GetRoom loads a room. Codes are matched case-insensitively.
func (s *GameService) GetRoom(ctx context.Context, code string) (domain.Room, error) {
	code = domain.NormalizeRoomCode(code)
	if code == "" {
		return domain.Room{}, domain.ErrRoomCodeRequired
	}
	var room domain.Room
	if err := getJSON(ctx, s.store, roomKey(code), &room, domain.ErrRoomNotFound); err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

func (s *GameService) saveRoom(ctx context.Context, room domain.Room) error {
	return setJSON(ctx, s.store, roomKey(room.Code), room)
}
