package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ahdcopilot/ahd-copilot-go/internal/model"
)

// 会话历史 24 小时过期
const historyTTL = 24 * time.Hour

// RedisStore Redis 会话历史存储
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

func historyKey(sessionID string) string {
	return fmt.Sprintf("chat_history:%s", sessionID)
}

// Append 追加消息（JSON 序列化后 RPush，并刷新过期时间）
func (s *RedisStore) Append(ctx context.Context, sessionID string, msg model.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("序列化消息失败: %w", err)
	}

	key := historyKey(sessionID)
	if err := s.client.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("写入会话历史失败: %w", err)
	}
	s.client.Expire(ctx, key, historyTTL)
	return nil
}

// List 返回会话的全部消息
func (s *RedisStore) List(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	items, err := s.client.LRange(ctx, historyKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("读取会话历史失败: %w", err)
	}

	msgs := make([]model.ChatMessage, 0, len(items))
	for _, item := range items {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			s.logger.Warn("历史消息解析失败，已跳过",
				zap.String("sessionId", sessionID),
				zap.Error(err))
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// Clear 清空会话
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, historyKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("清空会话历史失败: %w", err)
	}
	return nil
}
