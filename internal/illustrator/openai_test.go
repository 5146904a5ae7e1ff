package illustrator

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIGenerator(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		_, err := NewOpenAIGenerator(OpenAIConfig{})
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("uses defaults", func(t *testing.T) {
		g, err := NewOpenAIGenerator(OpenAIConfig{APIKey: "sk-test"})
		require.NoError(t, err)
		assert.Equal(t, DefaultModel, g.model)
		assert.Equal(t, DefaultSize, g.size)
	})
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	t.Run("decodes b64 payload", func(t *testing.T) {
		want := testPNG(4, 4)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/images/generations", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Socrates in the agora", body["prompt"])
			assert.Equal(t, "dall-e-3", body["model"])
			assert.Equal(t, "1024x1024", body["size"])
			assert.Equal(t, "b64_json", body["response_format"])
			assert.EqualValues(t, 1, body["n"])

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"created": 1700000000,
				"data": []map[string]any{
					{"b64_json": base64.StdEncoding.EncodeToString(want)},
				},
			})
		}))
		defer server.Close()

		g, err := NewOpenAIGenerator(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL + "/"})
		require.NoError(t, err)

		got, err := g.Generate(context.Background(), "Socrates in the agora")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("does not retry failures", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": {"message": "internal error", "type": "server_error"}}`))
		}))
		defer server.Close()

		g, err := NewOpenAIGenerator(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL + "/"})
		require.NoError(t, err)

		_, err = g.Generate(context.Background(), "prompt")
		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("empty data", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"created": 1, "data": []}`))
		}))
		defer server.Close()

		g, err := NewOpenAIGenerator(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL + "/"})
		require.NoError(t, err)

		_, err = g.Generate(context.Background(), "prompt")
		require.ErrorIs(t, err, ErrGenerationFailed)
		assert.Contains(t, err.Error(), "empty response")
	})
}
