package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

// chatResponse mirrors the OpenAI-compatible chat completion response.
type chatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func TestSummarizer_Summarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		var resp chatResponse
		resp.Object = "chat.completion"
		resp.Model = "test-model"
		resp.Choices = append(resp.Choices, struct {
			Index   int `json:"index"`
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		}{})
		resp.Choices[0].Message.Role = "assistant"
		resp.Choices[0].Message.Content = "  ملخص قانوني موجز.  "

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	s := NewSummarizer(&Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})

	got, err := s.Summarize(context.Background(), "قانون العمل", "نص الماده السابعه")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if got != "ملخص قانوني موجز." {
		t.Errorf("summary = %q", got)
	}
}

func TestSummarizer_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"detail":"rate limited"}`))
	}))
	defer srv.Close()

	s := NewSummarizer(&Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})

	if _, err := s.Summarize(context.Background(), "قانون", "نص"); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestSummarizer_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	s := NewSummarizer(&Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})

	if _, err := s.Summarize(context.Background(), "قانون", "نص"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
