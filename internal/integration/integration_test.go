package integration

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun/migrate"

	"github.com/sunnet-n/quiz-game/internal/app"
	"github.com/sunnet-n/quiz-game/internal/domain"
	"github.com/sunnet-n/quiz-game/internal/infra/postgres"
	pgmigrations "github.com/sunnet-n/quiz-game/internal/infra/postgres/migrations"
	infraredis "github.com/sunnet-n/quiz-game/internal/infra/redis"
)

func TestGameEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedBank(t, ctx, pgURL, "integration", sampleQuestions())

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	bank, err := app.LoadBank(ctx, postgres.NewBankLoader(pool), "integration")
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()
	service := app.NewGameService(infraredis.NewStore(redisClient), bank)

	room, host, err := service.CreateRoom(ctx, "Alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	guest, _, err := service.JoinRoom(ctx, room.Code, "Bob")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := service.StartGame(ctx, room.Code, host.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	res, err := service.SubmitAnswer(ctx, room.Code, guest.ID, 1, 2)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.IsCorrect || res.Points != 950 || res.UpdatedScore != 950 {
		t.Fatalf("expected 950 points for a correct answer at 2s, got %+v", res)
	}
	if _, err := service.SubmitAnswer(ctx, room.Code, host.ID, 0, 5); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if room, err = service.AdvanceQuestion(ctx, room.Code, host.ID); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if room.Status != domain.StatusFinished {
		t.Fatalf("expected finished after the only question, got %s", room.Status)
	}

	lb, err := service.Leaderboard(ctx, room.Code)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(lb) != 2 || lb[0].ID != guest.ID || lb[1].Score != 0 {
		t.Fatalf("expected bob leading with alice on 0, got %+v", lb)
	}

	answers, err := service.ListAnswers(ctx, room.Code, 0)
	if err != nil {
		t.Fatalf("answers: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("expected two audit records, got %d", len(answers))
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedBank(t *testing.T, ctx context.Context, dsn, bankID string, questions []domain.Question) {
	t.Helper()
	db := postgres.OpenBun(dsn)
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := postgres.SaveBank(ctx, db, bankID, questions); err != nil {
		t.Fatalf("save bank: %v", err)
	}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: 1, Text: "What is 2 + 2?", Options: []string{"3", "4", "5"}, CorrectAnswer: 1},
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
