// Package notify holds the collaborators that take alert notifications off
// the monitor core. None of them render or deliver messages to people.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

const DefaultChannel = "maternity:notifications"

type Notifier interface {
	Notify(ctx context.Context, notification models.Notification) error
}

// LogNotifier writes notifications to the notifier log. It never fails.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(_ context.Context, notification models.Notification) error {
	logger := common.GetLoggerWith(common.LoggerNameNotifier)
	logger.Info("Notification", zap.Reflect("notification", notification))
	return nil
}

// Publisher is the part of a redis client the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisNotifier publishes notifications as JSON on a pub/sub channel for a
// delivery service to pick up.
type RedisNotifier struct {
	client  Publisher
	channel string
}

func NewRedisNotifier(client Publisher, channel string) *RedisNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{client: client, channel: channel}
}

// NewRedisClient builds a client for addr and checks it answers.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func (n *RedisNotifier) Notify(ctx context.Context, notification models.Notification) error {
	logger := common.GetLoggerWith(common.LoggerNameNotifier)

	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	receivers, err := n.client.Publish(ctx, n.channel, data).Result()
	if err != nil {
		logger.Error("Failed to publish notification", zap.String("alert_id", notification.AlertID), zap.Error(err))
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	logger.Info("Published notification",
		zap.String("channel", n.channel),
		zap.String("alert_id", notification.AlertID),
		zap.Int64("receivers", receivers),
	)
	return nil
}

// Fanout hands each notification to every notifier in order and stops at
// the first failure.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, notification models.Notification) error {
	for _, n := range f {
		if err := n.Notify(ctx, notification); err != nil {
			return err
		}
	}
	return nil
}
