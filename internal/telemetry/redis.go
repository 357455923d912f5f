package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

// MonitorRedis attaches tracing, metrics and debug command logging to r.
func MonitorRedis(r redis.UniversalClient, logger *slog.Logger) error {
	if err := redisotel.InstrumentTracing(r); err != nil {
		return fmt.Errorf("instrument tracing: %w", err)
	}
	if err := redisotel.InstrumentMetrics(r); err != nil {
		return fmt.Errorf("instrument metrics: %w", err)
	}
	r.AddHook(redisLog{logger: logger})
	return nil
}

type redisLog struct {
	logger *slog.Logger
}

func (h redisLog) DialHook(hook redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := hook(ctx, network, addr)
		if err != nil {
			h.logger.WarnContext(ctx, "redis dial failed", "network", network, "addr", addr, "error", err)
			return nil, err
		}
		h.logger.DebugContext(ctx, "redis dialed", "network", network, "addr", addr)
		return conn, nil
	}
}

func (h redisLog) ProcessHook(hook redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := hook(ctx, cmd)
		if err != nil && err != redis.Nil {
			h.logger.WarnContext(ctx, "redis command failed", "cmd", cmd.Name(), "error", err)
			return err
		}
		h.logger.DebugContext(ctx, "redis command", "cmd", cmd.Name())
		return err
	}
}

func (h redisLog) ProcessPipelineHook(hook redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := hook(ctx, cmds)
		if err != nil && err != redis.Nil {
			h.logger.WarnContext(ctx, "redis pipeline failed", "commands", len(cmds), "error", err)
			return err
		}
		h.logger.DebugContext(ctx, "redis pipeline", "commands", len(cmds))
		return err
	}
}
