package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/domain"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/service"
)

type mockChatService struct {
	configured bool
	reply      string
	err        error
	last       domain.ChatRequest
	calls      int
}

func (m *mockChatService) Configured() bool {
	return m.configured
}

func (m *mockChatService) Chat(ctx context.Context, req domain.ChatRequest) (string, error) {
	m.calls++
	m.last = req
	return m.reply, m.err
}

func newChatRouter(svc chatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewChatHandler(svc).RegisterRoutes(router)
	return router
}

func TestChatSuccess(t *testing.T) {
	svc := &mockChatService{configured: true, reply: "Try a houndstooth cuff."}
	router := newChatRouter(svc)

	w := doJSON(router, http.MethodPost, "/chat", `{
		"message": "cuff ideas?",
		"system_prompt": "be brief",
		"conversation_history": [{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp ChatResponse
	decodeBody(t, w, &resp)
	if resp.Message != "Try a houndstooth cuff." {
		t.Fatalf("unexpected reply: %s", resp.Message)
	}
	if svc.last.SystemPrompt != "be brief" || len(svc.last.History) != 2 || svc.last.History[1].Role != domain.ChatRoleAssistant {
		t.Fatalf("unexpected request: %+v", svc.last)
	}
}

func TestChatMissingMessage(t *testing.T) {
	svc := &mockChatService{configured: true}
	router := newChatRouter(svc)

	for _, body := range []string{`{}`, `{"message":"   "}`, `not json`} {
		w := doJSON(router, http.MethodPost, "/chat", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", body, w.Code)
		}
	}
	if svc.calls != 0 {
		t.Fatalf("expected no service calls, got %d", svc.calls)
	}
}

func TestChatUpstreamError(t *testing.T) {
	svc := &mockChatService{configured: true, err: errors.New("chat: 429 rate limit")}

	w := doJSON(newChatRouter(svc), http.MethodPost, "/chat", `{"message":"hi"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
}

func TestChatUnconfigured(t *testing.T) {
	router := newChatRouter(service.NewChatService(nil))

	w := doJSON(router, http.MethodPost, "/chat", `{"message":"hi"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	var resp map[string]string
	decodeBody(t, w, &resp)
	if resp["error"] != service.ErrServiceNotConfigured.Error() {
		t.Fatalf("unexpected error: %s", resp["error"])
	}
}
