package model

import "time"

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// 回复来源
const (
	SourceRemote = "remote" // 远端文本生成
	SourceRules  = "rules"  // 本地规则库
)

// ChatMessage 聊天消息（会话历史中的一条记录）
type ChatMessage struct {
	MessageID string    `json:"messageId"`
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	Source    string    `json:"source,omitempty"` // remote, rules
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest 聊天请求
type ChatRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// ChatReply 聊天响应
type ChatReply struct {
	MessageID string `json:"messageId"`
	Reply     string `json:"reply"`
	Source    string `json:"source"`
}

// QuickActionRequest 快捷提问请求
type QuickActionRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Action    string `json:"action" binding:"required"`
}

// WSMessage WebSocket 消息帧
type WSMessage struct {
	MessageID string `json:"messageId"`
	Type      string `json:"type"` // CHAT, HEARTBEAT, AI_RESPONSE
	Content   string `json:"content"`
	Source    string `json:"source,omitempty"`
}

// WebSocket 消息类型
const (
	WSTypeChat       = "CHAT"
	WSTypeHeartbeat  = "HEARTBEAT"
	WSTypeAIResponse = "AI_RESPONSE"
)
