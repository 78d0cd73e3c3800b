package events

import (
	"CamView/internal/viewer/domain"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisPublisher struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

func NewRedisPublisher(opts *redis.Options, channel string, log *slog.Logger) (Publisher, error) {
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Error("failed to connect to Redis", "error", err)
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Connected to Redis", "channel", channel)
	return &redisPublisher{client: client, channel: channel, logger: log}, nil
}

func (r *redisPublisher) PublishReport(ctx context.Context, report *domain.ProbeReport) error {
	data, err := json.Marshal(NewProbeMessage(report))
	if err != nil {
		return fmt.Errorf("failed to marshal probe report: %w", err)
	}

	r.logger.Debug("Publishing probe report",
		"channel", r.channel,
		"event_id", report.EventID,
		"length", len(data),
	)

	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish probe report: %w", err)
	}
	return nil
}

func (r *redisPublisher) Close() error {
	return r.client.Close()
}
