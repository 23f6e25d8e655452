package model

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// LiveSession WebSocket 在线会话
type LiveSession struct {
	SessionID     string
	Conn          *websocket.Conn
	ClientIP      string
	LastHeartbeat time.Time
	MissedBeats   int
	mu            sync.RWMutex // 保护会话字段
}

// UpdateHeartbeat 更新心跳时间
func (s *LiveSession) UpdateHeartbeat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastHeartbeat = time.Now()
	s.MissedBeats = 0
}

// IncrementMissedBeats 增加丢失心跳次数
func (s *LiveSession) IncrementMissedBeats() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.MissedBeats++
}

// ShouldBeCleaned 判断是否应该清理
func (s *LiveSession) ShouldBeCleaned() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.MissedBeats >= 3
}

// WriteMessage 向 WebSocket 写入消息（线程安全）
func (s *LiveSession) WriteMessage(message interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Conn.WriteJSON(message)
}
