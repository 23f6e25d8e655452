package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ahdcopilot/ahd-copilot-go/internal/chatbot"
	"github.com/ahdcopilot/ahd-copilot-go/internal/history"
	"github.com/ahdcopilot/ahd-copilot-go/internal/model"
)

// TextGenerator 远端文本生成接口（可选增强）
type TextGenerator interface {
	GuidelineChat(userMessage string) (string, error)
}

// ChatService 问答服务：远端优先、本地规则库兜底，并维护会话历史。
// 分发本身无状态，历史只写不读。
type ChatService struct {
	engine *chatbot.Engine
	remote TextGenerator // nil 时仅用本地规则库
	store  history.Store
	logger *zap.Logger
}

// NewChatService 创建问答服务
func NewChatService(engine *chatbot.Engine, remote TextGenerator, store history.Store, logger *zap.Logger) *ChatService {
	return &ChatService{
		engine: engine,
		remote: remote,
		store:  store,
		logger: logger,
	}
}

// Respond 处理一轮问答：写入用户消息，生成回答，写入助手消息。
func (s *ChatService) Respond(ctx context.Context, sessionID, text string) (model.ChatMessage, error) {
	userMsg := model.ChatMessage{
		MessageID: uuid.New().String(),
		Role:      model.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	}
	if err := s.store.Append(ctx, sessionID, userMsg); err != nil {
		return model.ChatMessage{}, fmt.Errorf("写入用户消息失败: %w", err)
	}

	reply, source := s.generate(text)

	assistantMsg := model.ChatMessage{
		MessageID: uuid.New().String(),
		Role:      model.RoleAssistant,
		Content:   reply,
		Source:    source,
		Timestamp: time.Now(),
	}
	if err := s.store.Append(ctx, sessionID, assistantMsg); err != nil {
		return model.ChatMessage{}, fmt.Errorf("写入助手消息失败: %w", err)
	}

	return assistantMsg, nil
}

// generate 两段式生成：配置了远端时先调远端，任何失败都无条件
// 回落到本地规则库，不重试、不向用户暴露远端错误。
func (s *ChatService) generate(text string) (reply, source string) {
	if s.remote != nil {
		resp, err := s.remote.GuidelineChat(text)
		if err == nil {
			return resp, model.SourceRemote
		}
		s.logger.Warn("远端生成失败，回落本地规则库", zap.Error(err))
	}
	return s.engine.Respond(text), model.SourceRules
}

// History 返回会话历史
func (s *ChatService) History(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	return s.store.List(ctx, sessionID)
}

// Clear 清空会话并写入欢迎语种子消息
func (s *ChatService) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return err
	}
	seed := model.ChatMessage{
		MessageID: uuid.New().String(),
		Role:      model.RoleAssistant,
		Content:   chatbot.WelcomeMessage,
		Source:    model.SourceRules,
		Timestamp: time.Now(),
	}
	return s.store.Append(ctx, sessionID, seed)
}

// ErrUnknownAction 非法快捷提问
var ErrUnknownAction = fmt.Errorf("未知的快捷提问")

// QuickAction 注入一条固定的问答对。
// 快捷提问必须可确定性重放，因此始终走本地规则库，不经远端。
func (s *ChatService) QuickAction(ctx context.Context, sessionID, action string) ([]model.ChatMessage, error) {
	valid := false
	for _, a := range chatbot.QuickActions() {
		if a == action {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrUnknownAction
	}

	userMsg := model.ChatMessage{
		MessageID: uuid.New().String(),
		Role:      model.RoleUser,
		Content:   action,
		Timestamp: time.Now(),
	}
	assistantMsg := model.ChatMessage{
		MessageID: uuid.New().String(),
		Role:      model.RoleAssistant,
		Content:   s.engine.Respond(action),
		Source:    model.SourceRules,
		Timestamp: time.Now(),
	}

	if err := s.store.Append(ctx, sessionID, userMsg); err != nil {
		return nil, fmt.Errorf("写入快捷提问失败: %w", err)
	}
	if err := s.store.Append(ctx, sessionID, assistantMsg); err != nil {
		return nil, fmt.Errorf("写入快捷回答失败: %w", err)
	}

	return []model.ChatMessage{userMsg, assistantMsg}, nil
}
