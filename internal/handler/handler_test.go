package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ahdcopilot/ahd-copilot-go/internal/chatbot"
	"github.com/ahdcopilot/ahd-copilot-go/internal/features"
	"github.com/ahdcopilot/ahd-copilot-go/internal/history"
	"github.com/ahdcopilot/ahd-copilot-go/internal/model"
	"github.com/ahdcopilot/ahd-copilot-go/internal/service"
)

type stubClassifier struct {
	proba float64
	label bool
}

func (s *stubClassifier) FeatureNames() []string { return features.DefaultSchema() }

func (s *stubClassifier) PredictProba([]float64) (float64, error) { return s.proba, nil }

func (s *stubClassifier) Predict([]float64) (bool, error) { return s.label, nil }

func newTestRouter(classifier *stubClassifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	nop := zap.NewNop()

	chatService := service.NewChatService(chatbot.NewEngine(), nil, history.NewMemoryStore(nop), nop)

	var predictionService *service.PredictionService
	if classifier != nil {
		predictionService = service.NewPredictionService(classifier, nop)
	} else {
		predictionService = service.NewPredictionService(nil, nop)
	}
	analyticsService := service.NewAnalyticsService(nop)

	chatHandler := NewChatHandler(chatService, nop)
	predictHandler := NewPredictHandler(predictionService, nop)
	analyticsHandler := NewAnalyticsHandler(analyticsService, nop)

	r := gin.New()
	r.POST("/api/predict", predictHandler.Predict)
	r.POST("/api/chat", chatHandler.Chat)
	r.GET("/api/chat/history", chatHandler.History)
	r.POST("/api/chat/clear", chatHandler.Clear)
	r.POST("/api/chat/quick-action", chatHandler.QuickAction)
	r.GET("/api/analytics/overview", analyticsHandler.Overview)
	r.POST("/api/analytics/upload", analyticsHandler.Upload)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func validObservation() map[string]interface{} {
	return map[string]interface{}{
		"age":       40,
		"weight":    55.0,
		"height":    170.0,
		"cd4":       150.0,
		"viralLoad": 5000.0,
		"monthsRx":  2,
		"whoStage":  4,
		"cd4Risk":   "Severe",
		"sex":       "Male",
	}
}

func TestPredictEndpoint_High(t *testing.T) {
	r := newTestRouter(&stubClassifier{proba: 0.9, label: true})

	w := doJSON(t, r, "POST", "/api/predict", validObservation())
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp model.PredictResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Tier != "High" || !resp.Label {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPredictEndpoint_ModelUnavailable(t *testing.T) {
	r := newTestRouter(nil)

	w := doJSON(t, r, "POST", "/api/predict", validObservation())
	if w.Code != 503 {
		t.Fatalf("expected 503 when model is unavailable, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unavailable") {
		t.Fatalf("expected a clear error message, got: %s", w.Body.String())
	}
}

func TestPredictEndpoint_InvalidInput(t *testing.T) {
	r := newTestRouter(&stubClassifier{proba: 0.1})

	obs := validObservation()
	obs["whoStage"] = 7 // 超出 1-4
	w := doJSON(t, r, "POST", "/api/predict", obs)
	if w.Code != 400 {
		t.Fatalf("expected 400 for out-of-range stage, got %d", w.Code)
	}
}

func TestChatEndpoint_Flow(t *testing.T) {
	r := newTestRouter(nil)

	w := doJSON(t, r, "POST", "/api/chat", model.ChatRequest{SessionID: "s1", Message: "what is ahd"})
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var reply model.ChatReply
	json.Unmarshal(w.Body.Bytes(), &reply)
	if reply.Source != model.SourceRules || !strings.Contains(reply.Reply, "Advanced HIV Disease") {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	// 历史应有两条（用户 + 助手）
	w = doJSON(t, r, "GET", "/api/chat/history?sessionId=s1", nil)
	if w.Code != 200 {
		t.Fatalf("history: expected 200, got %d", w.Code)
	}
	var hist struct {
		Messages []model.ChatMessage `json:"messages"`
	}
	json.Unmarshal(w.Body.Bytes(), &hist)
	if len(hist.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(hist.Messages))
	}
}

func TestChatEndpoint_MissingFields(t *testing.T) {
	r := newTestRouter(nil)
	w := doJSON(t, r, "POST", "/api/chat", map[string]string{"message": "hi"})
	if w.Code != 400 {
		t.Fatalf("expected 400 for missing sessionId, got %d", w.Code)
	}
}

func TestQuickActionEndpoint(t *testing.T) {
	r := newTestRouter(nil)

	w := doJSON(t, r, "POST", "/api/chat/quick-action",
		model.QuickActionRequest{SessionID: "s1", Action: "What is HIV?"})
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, "POST", "/api/chat/quick-action",
		model.QuickActionRequest{SessionID: "s1", Action: "What is Ebola?"})
	if w.Code != 400 {
		t.Fatalf("expected 400 for unknown action, got %d", w.Code)
	}
}

func TestClearEndpoint(t *testing.T) {
	r := newTestRouter(nil)

	doJSON(t, r, "POST", "/api/chat", model.ChatRequest{SessionID: "s1", Message: "hello"})
	w := doJSON(t, r, "POST", "/api/chat/clear", map[string]string{"sessionId": "s1"})
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, "GET", "/api/chat/history?sessionId=s1", nil)
	var hist struct {
		Messages []model.ChatMessage `json:"messages"`
	}
	json.Unmarshal(w.Body.Bytes(), &hist)
	if len(hist.Messages) != 1 || hist.Messages[0].Content != chatbot.WelcomeMessage {
		t.Fatalf("expected only the welcome seed after clear, got %d messages", len(hist.Messages))
	}
}

func TestAnalyticsOverviewEndpoint(t *testing.T) {
	r := newTestRouter(nil)

	w := doJSON(t, r, "GET", "/api/analytics/overview?n=50", nil)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var overview model.AnalyticsOverview
	json.Unmarshal(w.Body.Bytes(), &overview)
	if overview.Total != 50 {
		t.Fatalf("expected 50 records, got %d", overview.Total)
	}

	w = doJSON(t, r, "GET", "/api/analytics/overview?n=0", nil)
	if w.Code != 400 {
		t.Fatalf("expected 400 for n=0, got %d", w.Code)
	}
}

func TestAnalyticsUploadEndpoint(t *testing.T) {
	r := newTestRouter(nil)

	csv := "Patient_ID,Age,Gender,CD4_Count,Viral_Load\nP001,34,F,150,25000\n"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "cohort.csv")
	fw.Write([]byte(csv))
	mw.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/analytics/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var overview model.AnalyticsOverview
	json.Unmarshal(w.Body.Bytes(), &overview)
	if overview.Total != 1 || overview.CD4Categories["Severe"] != 1 {
		t.Fatalf("unexpected overview: %+v", overview)
	}
}

func TestAnalyticsUploadEndpoint_BadHeader(t *testing.T) {
	r := newTestRouter(nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "cohort.csv")
	fw.Write([]byte("Patient_ID,Age\nP001,34\n"))
	mw.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/analytics/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	if w.Code != 400 {
		t.Fatalf("expected 400 for missing required columns, got %d", w.Code)
	}
}
