package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textRequest(text string) Request {
	return Request{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: text}}}},
		GenerationConfig: GenerationConfig{
			Temperature:      0.1,
			ResponseMimeType: "application/json",
		},
	}
}

func TestGenerateTextSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody Request

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello "},{"text":"world"}]}}]}`))
	}))
	defer ts.Close()

	c := New(Options{
		APIKey:     "secret-key",
		BaseURL:    ts.URL,
		HTTPClient: ts.Client(),
	})

	text, err := c.GenerateText(context.Background(), textRequest("hi"))

	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.Equal(t, "/v1beta/models/gemini-1.5-flash-latest:generateContent", gotPath)
	assert.Equal(t, "secret-key", gotKey)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "hi", gotBody.Contents[0].Parts[0].Text)
	assert.Equal(t, "application/json", gotBody.GenerationConfig.ResponseMimeType)
}

func TestGenerateTextCustomModelAndVersion(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer ts.Close()

	c := New(Options{
		APIKey:     "k",
		BaseURL:    ts.URL,
		APIVersion: "v1",
		Model:      "gemini-2.0-flash",
		HTTPClient: ts.Client(),
	})

	_, err := c.GenerateText(context.Background(), textRequest("hi"))

	require.NoError(t, err)
	assert.Equal(t, "/v1/models/gemini-2.0-flash:generateContent", gotPath)
}

func TestGenerateTextUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"message": "API key not valid"}}`))
	}))
	defer ts.Close()

	c := New(Options{APIKey: "bad", BaseURL: ts.URL, HTTPClient: ts.Client()})

	_, err := c.GenerateText(context.Background(), textRequest("hi"))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "API key not valid")
	assert.Contains(t, err.Error(), "gemini API")
}

func TestGenerateTextEmptyEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no candidates", `{"candidates": []}`},
		{"no parts", `{"candidates":[{"content":{"parts":[]}}]}`},
		{"blank text", `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c := New(Options{APIKey: "k", BaseURL: ts.URL, HTTPClient: ts.Client()})

			_, err := c.GenerateText(context.Background(), textRequest("hi"))

			assert.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}

func TestGenerateTextNilHTTPClient(t *testing.T) {
	c := New(Options{APIKey: "k"})

	_, err := c.GenerateText(context.Background(), textRequest("hi"))

	require.Error(t, err)
}
