package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"messages"`
}

func newChatServer(t *testing.T, answer string, got *chatRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, got))

		w.Header().Set("Content-Type", "application/json")
		if answer == "" {
			io.WriteString(w, `{"id":"1","object":"chat.completion","choices":[]}`)
			return
		}
		resp := map[string]any{
			"id":     "1",
			"object": "chat.completion",
			"model":  got.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": answer},
			}},
			"usage": map[string]any{"prompt_tokens": 3, "completion_tokens": 2, "total_tokens": 5},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIClientGenerateText(t *testing.T) {
	var got chatRequest
	server := newChatServer(t, "Siyah pantolonunu giy.", &got)
	defer server.Close()

	client, err := NewOpenAIClient("test-key", server.URL, "vision-model", "text-model", zap.NewNop().Sugar())
	require.NoError(t, err)

	answer, err := client.GenerateText(context.Background(), "Ne giyeyim?")

	require.NoError(t, err)
	assert.Equal(t, "Siyah pantolonunu giy.", answer)
	assert.Equal(t, "text-model", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.JSONEq(t, `"Ne giyeyim?"`, string(got.Messages[0].Content))
}

func TestOpenAIClientDescribeImage(t *testing.T) {
	var got chatRequest
	server := newChatServer(t, `{"kategori":"Elbise"}`, &got)
	defer server.Close()

	client, err := NewOpenAIClient("test-key", server.URL, "vision-model", "text-model", zap.NewNop().Sugar())
	require.NoError(t, err)

	answer, err := client.DescribeImage(context.Background(), "analiz et", &PreparedImage{Data: []byte{1, 2, 3}, MIMEType: "image/jpeg"})

	require.NoError(t, err)
	assert.Equal(t, `{"kategori":"Elbise"}`, answer)
	assert.Equal(t, "vision-model", got.Model)
	require.Len(t, got.Messages, 1)
	content := string(got.Messages[0].Content)
	assert.Contains(t, content, "analiz et")
	assert.Contains(t, content, "data:image/jpeg;base64,AQID")
}

func TestOpenAIClientNoChoices(t *testing.T) {
	var got chatRequest
	server := newChatServer(t, "", &got)
	defer server.Close()

	client, err := NewOpenAIClient("test-key", server.URL, "vision-model", "text-model", zap.NewNop().Sugar())
	require.NoError(t, err)

	_, err = client.GenerateText(context.Background(), "?")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no choices"))
}

func TestOpenAIClientRequiresKey(t *testing.T) {
	_, err := NewOpenAIClient("", "", "a", "b", zap.NewNop().Sugar())
	assert.Error(t, err)
}
