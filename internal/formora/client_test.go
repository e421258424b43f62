package formora

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"formora/internal/config"
	"formora/internal/model"
	appotel "formora/internal/otel"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(config.FormoraConfig{BaseURL: srv.URL + "/api/odoo", TimeoutSec: 5})
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.FormoraConfig
		wantErr bool
	}{
		{name: "valid", cfg: config.FormoraConfig{BaseURL: "https://example.com/api/odoo"}},
		{name: "empty url", cfg: config.FormoraConfig{}, wantErr: true},
		{name: "bad scheme", cfg: config.FormoraConfig{BaseURL: "ftp://example.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, c)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	c, err := NewClient(config.FormoraConfig{BaseURL: "https://example.com/api/odoo", TimeoutSec: 0})
	require.NoError(t, err)
	assert.Equal(t, 100*time.Second, c.http.Timeout)
}

func TestFetchSubmissions(t *testing.T) {
	t.Run("sends token and template filter", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/odoo", r.URL.Path)
			assert.Equal(t, "tok", r.URL.Query().Get("apiToken"))
			assert.Equal(t, "12", r.URL.Query().Get("templateId"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"templateId":12,"user_name":"alice","question_id":1,
				"question_title":"Color","question_type":"STRING","show_in_table":true,"answer":"red"}]`))
		})

		got, err := c.FetchSubmissions(context.Background(), "tok", 12)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(12), got[0].TemplateID)
		assert.Equal(t, model.QuestionString, got[0].QuestionType)
		require.NotNil(t, got[0].Answer)
		assert.Equal(t, "red", *got[0].Answer)
	})

	t.Run("omits template filter when zero", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, ok := r.URL.Query()["templateId"]
			assert.False(t, ok)
			w.Write([]byte(`[]`))
		})

		got, err := c.FetchSubmissions(context.Background(), "tok", 0)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("null body is empty", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`null`))
		})

		got, err := c.FetchSubmissions(context.Background(), "tok", 0)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("non-2xx status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid API token"}`))
		})

		got, err := c.FetchSubmissions(context.Background(), "bad", 0)

		assert.ErrorIs(t, err, ErrAPIUnavailable)
		assert.Contains(t, err.Error(), "401")
		assert.Nil(t, got)
	})

	t.Run("undecodable body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		})

		_, err := c.FetchSubmissions(context.Background(), "tok", 0)

		assert.ErrorIs(t, err, ErrAPIUnavailable)
		assert.Contains(t, err.Error(), "decode response")
	})

	t.Run("transport error does not leak token", func(t *testing.T) {
		c, err := NewClient(config.FormoraConfig{BaseURL: "http://127.0.0.1:1/api/odoo", TimeoutSec: 1})
		require.NoError(t, err)

		_, err = c.FetchSubmissions(context.Background(), "secret-token", 0)

		assert.ErrorIs(t, err, ErrAPIUnavailable)
		assert.NotContains(t, err.Error(), "secret-token")
	})
	t.Run("token is masked in trace spans", func(t *testing.T) {
		rec := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(appotel.NewQueryRedactor(rec, TokenParam)),
		)
		prev := otel.GetTracerProvider()
		otel.SetTracerProvider(tp)
		t.Cleanup(func() { otel.SetTracerProvider(prev) })

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "SECRET-TOKEN", r.URL.Query().Get(TokenParam))
			w.Write([]byte(`[]`))
		})

		_, err := c.FetchSubmissions(context.Background(), "SECRET-TOKEN", 3)
		require.NoError(t, err)

		spans := rec.Ended()
		require.NotEmpty(t, spans)
		for _, span := range spans {
			for _, kv := range span.Attributes() {
				assert.NotContains(t, kv.Value.Emit(), "SECRET-TOKEN", "span %q attr %s", span.Name(), kv.Key)
			}
		}
	})
}
