package app

import (
	"context"

	"github.com/sunnet-n/quiz-game/internal/domain"
	"github.com/sunnet-n/quiz-game/internal/telemetry"
)

// StartGame moves a waiting room to playing. Only the host may call it; the
// host check runs before the phase check.
func (s *GameService) StartGame(ctx context.Context, code, callerID string) (domain.Room, error) {
	code = domain.NormalizeRoomCode(code)
	unlock := s.lockRoom(code)
	defer unlock()

	room, err := s.GetRoom(ctx, code)
	if err != nil {
		return domain.Room{}, err
	}
	if callerID == "" || callerID != room.HostID {
		return domain.Room{}, domain.ErrNotHost
	}
	if room.Status != domain.StatusWaiting {
		return domain.Room{}, domain.ErrAlreadyStarted
	}

	now := s.now()
	room.Status = domain.StatusPlaying
	room.CurrentQuestion = 0
	room.StartedAt = &now
	if err := s.saveRoom(ctx, room); err != nil {
		return domain.Room{}, err
	}

	s.logger.InfoContext(ctx, "game started", "room", room.Code)
	return room, nil
}

// CurrentQuestion returns the question under the room cursor without its answer key.
func (s *GameService) CurrentQuestion(ctx context.Context, code string) (domain.QuestionView, error) {
	room, err := s.GetRoom(ctx, code)
	if err != nil {
		return domain.QuestionView{}, err
	}
	q, err := s.questionFor(room)
	if err != nil {
		return domain.QuestionView{}, err
	}
	return domain.QuestionView{
		Question: q.Public(),
		Index:    room.CurrentQuestion,
		Total:    s.bank.Len(),
	}, nil
}

// AdvanceQuestion moves the cursor forward, or finishes the game when the
// cursor is on the last question. Finishing freezes the cursor.
func (s *GameService) AdvanceQuestion(ctx context.Context, code, callerID string) (domain.Room, error) {
	code = domain.NormalizeRoomCode(code)
	unlock := s.lockRoom(code)
	defer unlock()

	room, err := s.GetRoom(ctx, code)
	if err != nil {
		return domain.Room{}, err
	}
	if callerID == "" || callerID != room.HostID {
		return domain.Room{}, domain.ErrNotHost
	}
	if room.Status != domain.StatusPlaying {
		return domain.Room{}, domain.ErrGameNotStarted
	}

	if room.CurrentQuestion+1 >= s.bank.Len() {
		now := s.now()
		room.Status = domain.StatusFinished
		room.FinishedAt = &now
	} else {
		room.CurrentQuestion++
	}
	if err := s.saveRoom(ctx, room); err != nil {
		return domain.Room{}, err
	}

	if room.Status == domain.StatusFinished {
		telemetry.GamesFinished.Inc()
		s.logger.InfoContext(ctx, "game finished", "room", room.Code)
	} else {
		s.logger.InfoContext(ctx, "question advanced", "room", room.Code, "question", room.CurrentQuestion)
	}
	return room, nil
}

// questionFor resolves the question under the cursor of a playing room.
func (s *GameService) questionFor(room domain.Room) (domain.Question, error) {
	if room.Status != domain.StatusPlaying {
		return domain.Question{}, domain.ErrGameNotStarted
	}
	q, ok := s.bank.At(room.CurrentQuestion)
	if !ok {
		return domain.Question{}, domain.ErrNoMoreQuestions
	}
	return q, nil
}
