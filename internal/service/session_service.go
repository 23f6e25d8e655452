package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ahdcopilot/ahd-copilot-go/internal/model"
)

// ErrSessionOffline 会话不在线
var ErrSessionOffline = fmt.Errorf("会话不在线")

// SessionService WebSocket 会话管理服务
type SessionService struct {
	sessions map[string]*model.LiveSession // sessionId -> session
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewSessionService 创建会话管理服务
func NewSessionService(logger *zap.Logger) *SessionService {
	s := &SessionService{
		sessions: make(map[string]*model.LiveSession),
		logger:   logger,
	}

	// 启动心跳检测
	go s.heartbeatChecker()

	return s
}

// Register 注册会话（同一 sessionId 重连时关闭旧连接）
func (s *SessionService) Register(sessionID string, conn *websocket.Conn, clientIP string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[sessionID]; ok {
		s.logger.Info("会话重新连接，关闭旧连接",
			zap.String("sessionId", sessionID))
		existing.Conn.Close()
	}

	s.sessions[sessionID] = &model.LiveSession{
		SessionID:     sessionID,
		Conn:          conn,
		ClientIP:      clientIP,
		LastHeartbeat: time.Now(),
	}

	s.logger.Info("会话注册成功",
		zap.String("sessionId", sessionID),
		zap.String("clientIp", clientIP))
}

// SendTo 向指定会话发送消息
func (s *SessionService) SendTo(sessionID string, message interface{}) error {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		s.logger.Warn("会话不在线，消息发送失败", zap.String("sessionId", sessionID))
		return ErrSessionOffline
	}

	if err := session.WriteMessage(message); err != nil {
		s.logger.Error("消息发送失败",
			zap.String("sessionId", sessionID),
			zap.Error(err))
		// 异步清理无效连接
		go s.Remove(sessionID)
		return err
	}

	return nil
}

// UpdateHeartbeat 更新心跳时间
func (s *SessionService) UpdateHeartbeat(sessionID string) bool {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return false
	}

	session.UpdateHeartbeat()
	return true
}

// Remove 移除会话
func (s *SessionService) Remove(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; ok {
		delete(s.sessions, sessionID)
		s.logger.Info("会话已移除", zap.String("sessionId", sessionID))
	}
}

// OnlineCount 在线会话数
func (s *SessionService) OnlineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// heartbeatChecker 心跳检测器
func (s *SessionService) heartbeatChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()

		now := time.Now()
		for sessionID, session := range s.sessions {
			if now.Sub(session.LastHeartbeat) > 60*time.Second {
				session.IncrementMissedBeats()

				if session.ShouldBeCleaned() {
					s.logger.Info("清理无效会话",
						zap.String("sessionId", sessionID),
						zap.Int("missedBeats", session.MissedBeats))

					session.Conn.Close()
					delete(s.sessions, sessionID)
				} else {
					s.logger.Warn("会话心跳丢失",
						zap.String("sessionId", sessionID),
						zap.Int("missedBeats", session.MissedBeats))
				}
			}
		}

		s.mu.Unlock()
	}
}
