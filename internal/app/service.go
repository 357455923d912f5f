package app

import (
	"hash/fnv"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sunnet-n/quiz-game/internal/domain"
)

const lockStripes = 64

// GameService implements the room, player, game and scoring use cases on top of a Store.
// It holds no per-room state of its own; everything lives in the store.
type GameService struct {
	store  Store
	bank   domain.QuestionBank
	logger *slog.Logger

	now     func() time.Time
	newID   func() string
	newCode func() string

	locks [lockStripes]sync.Mutex
}

// Option customizes a GameService.
type Option func(*GameService)

// WithLogger sets the logger used for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(s *GameService) { s.logger = l }
}

// WithClock is intended for tests that need deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *GameService) { s.now = now }
}

// WithIDGenerator replaces the player id generator.
func WithIDGenerator(f func() string) Option {
	return func(s *GameService) { s.newID = f }
}

// WithCodeGenerator replaces the room code generator.
func WithCodeGenerator(f func() string) Option {
	return func(s *GameService) { s.newCode = f }
}

// NewGameService builds the service over store and an immutable question bank.
func NewGameService(store Store, bank domain.QuestionBank, opts ...Option) *GameService {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	var rndMu sync.Mutex

	s := &GameService{
		store:  store,
		bank:   bank,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  uuid.NewString,
		newCode: func() string {
			rndMu.Lock()
			defer rndMu.Unlock()
			return RandomRoomCode(rnd)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QuestionCount returns the size of the question bank.
func (s *GameService) QuestionCount() int {
	return s.bank.Len()
}

// RandomRoomCode draws a room code from domain.RoomCodeAlphabet. Collisions are not checked.
func RandomRoomCode(rnd *rand.Rand) string {
	b := make([]byte, domain.RoomCodeLength)
	for i := range b {
		b[i] = domain.RoomCodeAlphabet[rnd.Intn(len(domain.RoomCodeAlphabet))]
	}
	return string(b)
}

// lockRoom serializes mutations of one room within this process.
// Several rooms may share a stripe.
func (s *GameService) lockRoom(code string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(code))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}
