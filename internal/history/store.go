// Package history 会话聊天记录存储。
// 历史仅追加、仅用于展示，问答分发从不读取它；
// 清空操作整体替换为欢迎语（由调用方写入种子消息）。
package history

import (
	"context"

	"github.com/ahdcopilot/ahd-copilot-go/internal/model"
)

// Store 会话历史存储接口
type Store interface {
	// Append 追加一条消息
	Append(ctx context.Context, sessionID string, msg model.ChatMessage) error
	// List 返回会话的全部消息（时间序）
	List(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	// Clear 清空会话
	Clear(ctx context.Context, sessionID string) error
}
