package app

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/sunnet-n/quiz-game/internal/domain"
	"github.com/sunnet-n/quiz-game/internal/telemetry"
)

const (
	basePoints     = 500
	maxSpeedBonus  = 500
	bonusPerSecond = 25
)

// Points is the award for one answer: nothing when wrong, otherwise the 500
// point base plus a speed bonus that reaches zero at 20 seconds.
func Points(correct bool, elapsedSeconds int) int {
	if !correct {
		return 0
	}
	// Clamp first: large elapsed values would overflow the multiplication.
	if elapsedSeconds >= maxSpeedBonus/bonusPerSecond {
		return basePoints
	}
	bonus := math.Max(0, float64(maxSpeedBonus-elapsedSeconds*bonusPerSecond))
	return int(math.Round(basePoints + bonus))
}

// SubmitAnswer scores option against the question currently under the room
// cursor. Repeated submissions for the same question are scored again and
// overwrite the audit record.
func (s *GameService) SubmitAnswer(ctx context.Context, code, playerID string, option, elapsedSeconds int) (domain.AnswerResult, error) {
	if option < domain.NoAnswer || elapsedSeconds < 0 {
		return domain.AnswerResult{}, domain.ErrInvalidAnswer
	}
	code = domain.NormalizeRoomCode(code)
	unlock := s.lockRoom(code)
	defer unlock()

	room, err := s.GetRoom(ctx, code)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	player, err := s.GetPlayer(ctx, room.Code, playerID)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	q, err := s.questionFor(room)
	if err != nil {
		return domain.AnswerResult{}, err
	}

	correct := option != domain.NoAnswer && option == q.CorrectAnswer
	points := Points(correct, elapsedSeconds)
	player.Score += points

	record := domain.AnswerRecord{
		PlayerID:      player.ID,
		QuestionIndex: room.CurrentQuestion,
		Answer:        option,
		IsCorrect:     correct,
		Points:        points,
		TimeSpent:     elapsedSeconds,
		SubmittedAt:   s.now(),
	}

	playerEntry, err := entry(playerKey(room.Code, player.ID), player)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	answerEntry, err := entry(answerKey(room.Code, room.CurrentQuestion, player.ID), record)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	if err := s.store.SetMany(ctx, playerEntry, answerEntry); err != nil {
		return domain.AnswerResult{}, fmt.Errorf("save answer: %w", err)
	}

	telemetry.ObserveAnswer(correct)
	s.logger.DebugContext(ctx, "answer scored",
		"room", room.Code,
		"player", player.ID,
		"question", room.CurrentQuestion,
		"correct", correct,
		"points", points,
	)

	return domain.AnswerResult{
		IsCorrect:     correct,
		Points:        points,
		UpdatedScore:  player.Score,
		CorrectAnswer: q.CorrectAnswer,
	}, nil
}

// ListAnswers returns the audit records for one question of a room, oldest first.
func (s *GameService) ListAnswers(ctx context.Context, code string, questionIndex int) ([]domain.AnswerRecord, error) {
	room, err := s.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if questionIndex < 0 || questionIndex >= s.bank.Len() {
		return nil, domain.ErrNoMoreQuestions
	}
	answers, err := scanJSON[domain.AnswerRecord](ctx, s.store, answerPrefix(room.Code, questionIndex))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(answers, func(i, j int) bool {
		if !answers[i].SubmittedAt.Equal(answers[j].SubmittedAt) {
			return answers[i].SubmittedAt.Before(answers[j].SubmittedAt)
		}
		return answers[i].PlayerID < answers[j].PlayerID
	})
	return answers, nil
}
