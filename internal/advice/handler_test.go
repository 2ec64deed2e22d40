package advice

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bechobazaar/geminiai/internal/llm"
)

func newTestRouter(client llm.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := NewService(testConfig(), nil, client, NewInMemoryRepository(), nil)
	handler := NewHandler(svc)

	r := gin.New()
	r.POST("/advice", handler.Advise())
	r.GET("/advice/history", handler.History())
	return r
}

func postAdvice(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/advice", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdviseHappyPath(t *testing.T) {
	r := newTestRouter(&fakeLLM{reply: validReply()})

	w := postAdvice(t, r, `{"category": "car", "brand": "Maruti", "plan": "pro"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Errorf("response not marked ok: %s", w.Body.String())
	}
}

func TestAdviseMissingCategoryGives400(t *testing.T) {
	r := newTestRouter(&fakeLLM{reply: validReply()})

	w := postAdvice(t, r, `{"brand": "Maruti"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAdviseQuotaGives429(t *testing.T) {
	r := newTestRouter(&fakeLLM{
		err: &llm.UpstreamError{Status: 429, Message: "rate limit", Quota: true},
	})

	w := postAdvice(t, r, `{"category": "car"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestAdviseUpstreamFailureGives502(t *testing.T) {
	r := newTestRouter(&fakeLLM{
		err: &llm.UpstreamError{Status: 500, Message: "upstream broke"},
	})

	w := postAdvice(t, r, `{"category": "car"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestAdviseProseReplyGives422(t *testing.T) {
	r := newTestRouter(&fakeLLM{reply: []byte(`{"output_text": "no idea"}`)})

	w := postAdvice(t, r, `{"category": "car"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	r := newTestRouter(&fakeLLM{reply: validReply()})

	postAdvice(t, r, `{"category": "car"}`)

	req := httptest.NewRequest(http.MethodGet, "/advice/history?limit=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"records"`) {
		t.Errorf("history payload missing records: %s", w.Body.String())
	}
}
