package ws

import (
	"context"
	"encoding/json"

	"collegeskills_backend/internal/services/dto"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher pushes chat messages and notifications into the
// pub/sub channels the managers listen on. Implements
// services.RealtimePublisher and services.NotificationPublisher.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) PublishMessage(ctx context.Context, conversationID string, message dto.MessageResponse) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, chatChannelPrefix+conversationID, payload).Err()
}

// PublishNotification targets a single user's channel; every socket
// that user has open receives it.
func (p *RedisPublisher) PublishNotification(ctx context.Context, userID string, notification dto.NotificationResponse) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, userChannelPrefix+userID, payload).Err()
}
