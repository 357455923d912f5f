package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sunnet-n/quiz-game/internal/app"
	"github.com/sunnet-n/quiz-game/internal/config"
	"github.com/sunnet-n/quiz-game/internal/domain"
	"github.com/sunnet-n/quiz-game/internal/infra/file"
	"github.com/sunnet-n/quiz-game/internal/infra/memory"
	"github.com/sunnet-n/quiz-game/internal/infra/postgres"
	redisstore "github.com/sunnet-n/quiz-game/internal/infra/redis"
	"github.com/sunnet-n/quiz-game/internal/telemetry"
	transport "github.com/sunnet-n/quiz-game/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	return telemetry.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Postgres.URL != "" {
		if err := runMigrations(ctx, cfg, logger); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	bank, err := loadQuestionBank(ctx, cfg, logger)
	if err != nil {
		return err
	}

	checks := map[string]transport.Checker{}
	var store app.Store
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := telemetry.MonitorRedis(client, logger); err != nil {
			return err
		}
		rs := redisstore.NewStore(client)
		checks["redis"] = rs
		store = rs
		logger.Info("using redis store", "addr", cfg.Redis.Addr)
	} else {
		ms := memory.NewStore()
		checks["memory"] = ms
		store = ms
		logger.Warn("redis not configured, using in-memory store")
	}

	service := app.NewGameService(store, bank, app.WithLogger(logger))
	router := transport.NewRouter(transport.RouterConfig{
		Service: service,
		Logger:  logger,
		Checks:  checks,
		Client: transport.ClientConfig{
			LobbyPoll:       config.Duration(cfg.Poll.Lobby, 2*time.Second),
			QuestionPoll:    config.Duration(cfg.Poll.Question, 1500*time.Millisecond),
			LeaderboardPoll: config.Duration(cfg.Poll.Leaderboard, 3*time.Second),
			AnswerWindow:    config.Duration(cfg.Quiz.AnswerWindow, 15*time.Second),
			TotalQuestions:  bank.Len(),
		},
	})
	server := transport.NewServer(":"+finalPort, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting quiz service", "addr", server.Addr(), "questions", bank.Len())
		return server.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		return server.Shutdown(context.Background())
	})
	return g.Wait()
}

// loadQuestionBank resolves the bank from Postgres, then the YAML file, then
// the built-in sample set.
func loadQuestionBank(ctx context.Context, cfg config.Config, logger *slog.Logger) (domain.QuestionBank, error) {
	bankID := cfg.BankID()

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return domain.QuestionBank{}, fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()

		bank, err := app.LoadBank(ctx, postgres.NewBankLoader(pool), bankID)
		if err == nil {
			logger.Info("question bank loaded", "source", "postgres", "bank", bankID, "questions", bank.Len())
			return bank, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.QuestionBank{}, err
		}
		logger.Warn("question bank not in postgres", "bank", bankID)
	}

	if cfg.Quiz.QuestionsFile != "" {
		bank, err := app.LoadBank(ctx, file.NewBankLoader(cfg.Quiz.QuestionsFile), bankID)
		if err != nil {
			return domain.QuestionBank{}, err
		}
		logger.Info("question bank loaded", "source", "file", "bank", bankID, "questions", bank.Len())
		return bank, nil
	}

	bank, err := app.LoadBank(ctx, memory.NewStaticBankLoader(map[string][]domain.Question{
		bankID: memory.SampleQuestions(),
	}), bankID)
	if err != nil {
		return domain.QuestionBank{}, err
	}
	logger.Info("question bank loaded", "source", "builtin", "questions", bank.Len())
	return bank, nil
}
