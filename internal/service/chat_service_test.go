package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ahdcopilot/ahd-copilot-go/internal/chatbot"
	"github.com/ahdcopilot/ahd-copilot-go/internal/history"
	"github.com/ahdcopilot/ahd-copilot-go/internal/model"
)

type fakeRemote struct {
	reply string
	err   error
	calls int
}

func (f *fakeRemote) GuidelineChat(string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func newTestChatService(remote TextGenerator) *ChatService {
	return NewChatService(chatbot.NewEngine(), remote, history.NewMemoryStore(zap.NewNop()), zap.NewNop())
}

func TestRespond_LocalRules(t *testing.T) {
	s := newTestChatService(nil)

	msg, err := s.Respond(context.Background(), "s1", "what is ahd")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if msg.Source != model.SourceRules {
		t.Fatalf("source = %s, want rules", msg.Source)
	}

	msgs, _ := s.History(context.Background(), "s1")
	if len(msgs) != 2 {
		t.Fatalf("expected user+assistant turns, got %d messages", len(msgs))
	}
	if msgs[0].Role != model.RoleUser || msgs[1].Role != model.RoleAssistant {
		t.Fatalf("unexpected roles: %s, %s", msgs[0].Role, msgs[1].Role)
	}
}

func TestRespond_RemotePreferred(t *testing.T) {
	remote := &fakeRemote{reply: "remote answer"}
	s := newTestChatService(remote)

	msg, err := s.Respond(context.Background(), "s1", "anything")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if msg.Source != model.SourceRemote || msg.Content != "remote answer" {
		t.Fatalf("expected remote answer, got %s/%q", msg.Source, msg.Content)
	}
}

func TestRespond_RemoteFailureFallsBackSilently(t *testing.T) {
	remote := &fakeRemote{err: errors.New("auth failure")}
	s := newTestChatService(remote)

	msg, err := s.Respond(context.Background(), "s1", "what is hiv")
	if err != nil {
		t.Fatalf("fallback must not surface the remote error, got: %v", err)
	}
	if msg.Source != model.SourceRules {
		t.Fatalf("source = %s, want rules", msg.Source)
	}
	if remote.calls != 1 {
		t.Fatalf("remote must be tried exactly once (no retry), got %d calls", remote.calls)
	}
}

func TestClear_SeedsWelcomeMessage(t *testing.T) {
	s := newTestChatService(nil)
	ctx := context.Background()

	s.Respond(ctx, "s1", "hello")
	if err := s.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	msgs, _ := s.History(ctx, "s1")
	if len(msgs) != 1 {
		t.Fatalf("expected only the welcome seed, got %d messages", len(msgs))
	}
	if msgs[0].Role != model.RoleAssistant || msgs[0].Content != chatbot.WelcomeMessage {
		t.Fatalf("unexpected seed message: %+v", msgs[0])
	}
}

func TestQuickAction_Unknown(t *testing.T) {
	s := newTestChatService(nil)
	if _, err := s.QuickAction(context.Background(), "s1", "What is TB?"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestQuickAction_ReplayAfterClearIsIdentical(t *testing.T) {
	// 远端失败也不影响快捷提问：它始终走本地规则库
	s := newTestChatService(&fakeRemote{err: errors.New("down")})
	ctx := context.Background()

	replay := func() []model.ChatMessage {
		if err := s.Clear(ctx, "s1"); err != nil {
			t.Fatalf("Clear: %v", err)
		}
		for _, action := range chatbot.QuickActions() {
			if _, err := s.QuickAction(ctx, "s1", action); err != nil {
				t.Fatalf("QuickAction(%q): %v", action, err)
			}
		}
		msgs, err := s.History(ctx, "s1")
		if err != nil {
			t.Fatalf("History: %v", err)
		}
		return msgs
	}

	first := replay()
	second := replay()

	if len(first) != len(second) {
		t.Fatalf("replay length mismatch: %d != %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Role != second[i].Role || first[i].Content != second[i].Content {
			t.Fatalf("replay diverged at message %d", i)
		}
	}
}
