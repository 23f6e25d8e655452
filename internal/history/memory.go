package history

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ahdcopilot/ahd-copilot-go/internal/model"
)

// MemoryStore 内存会话历史存储（未配置 Redis 时使用）
type MemoryStore struct {
	sessions map[string][]model.ChatMessage
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewMemoryStore 创建内存存储
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]model.ChatMessage),
		logger:   logger,
	}
}

// Append 追加消息
func (s *MemoryStore) Append(_ context.Context, sessionID string, msg model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], msg)
	return nil
}

// List 返回会话消息副本
func (s *MemoryStore) List(_ context.Context, sessionID string) ([]model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.sessions[sessionID]
	out := make([]model.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

// Clear 清空会话
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	s.logger.Debug("会话历史已清空", zap.String("sessionId", sessionID))
	return nil
}
