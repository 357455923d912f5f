package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// RoomStatus is the game phase of a room. It only moves forward:
// waiting -> playing -> finished.
type RoomStatus string

const (
	StatusWaiting  RoomStatus = "waiting"
	StatusPlaying  RoomStatus = "playing"
	StatusFinished RoomStatus = "finished"
)

const (
	// RoomCodeLength is the number of characters in a room code.
	RoomCodeLength = 6
	// RoomCodeAlphabet lists the characters a room code is drawn from.
	RoomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// MaxNicknameLength bounds nicknames, counted in runes after trimming.
	MaxNicknameLength = 20
	// NoAnswer is the option index a client submits when the answer window ran out.
	NoAnswer = -1
)

// Room is one trivia session.
type Room struct {
	Code            string     `json:"code"`
	HostID          string     `json:"hostId"`
	Status          RoomStatus `json:"status"`
	CurrentQuestion int        `json:"currentQuestion"`
	CreatedAt       time.Time  `json:"createdAt"`
	StartedAt       *time.Time `json:"startedAt,omitempty"`
	FinishedAt      *time.Time `json:"finishedAt,omitempty"`
}

// Player is a participant of exactly one room.
type Player struct {
	ID       string    `json:"id"`
	Nickname string    `json:"nickname"`
	IsHost   bool      `json:"isHost"`
	Score    int       `json:"score"`
	JoinedAt time.Time `json:"joinedAt"`
}

// AnswerRecord is the audit entry written for every submission.
type AnswerRecord struct {
	PlayerID      string    `json:"playerId"`
	QuestionIndex int       `json:"questionIndex"`
	Answer        int       `json:"answer"`
	IsCorrect     bool      `json:"isCorrect"`
	Points        int       `json:"points"`
	TimeSpent     int       `json:"timeSpent"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// AnswerResult is returned to the submitting player.
type AnswerResult struct {
	IsCorrect     bool `json:"isCorrect"`
	Points        int  `json:"points"`
	UpdatedScore  int  `json:"updatedScore"`
	CorrectAnswer int  `json:"correctAnswer"`
}

// Question is a multiple choice question including its answer key.
type Question struct {
	ID            int      `json:"id" yaml:"id"`
	Text          string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer int      `json:"correctAnswer" yaml:"correctAnswer"`
}

// Public strips the answer key.
func (q Question) Public() PublicQuestion {
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	return PublicQuestion{ID: q.ID, Text: q.Text, Options: options}
}

// PublicQuestion is the only question shape ever sent before a player answers.
type PublicQuestion struct {
	ID      int      `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

// QuestionView is the current question of a room together with its position.
type QuestionView struct {
	Question PublicQuestion `json:"question"`
	Index    int            `json:"questionIndex"`
	Total    int            `json:"totalQuestions"`
}

// NormalizeRoomCode trims and uppercases user input.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeNickname trims the nickname and enforces the length bounds.
func NormalizeNickname(nickname string) (string, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return "", ErrNicknameRequired
	}
	if utf8.RuneCountInString(nickname) > MaxNicknameLength {
		return "", ErrNicknameTooLong
	}
	return nickname, nil
}
