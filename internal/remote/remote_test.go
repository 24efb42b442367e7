package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/focusring/timer"
)

var sample = timer.FinalizedSession{
	ID:              "0b9d6d1e-7f1c-4a8e-9d7b-0f3a2c7e1e55",
	ActivityTag:     "writing",
	Mode:            "countdown",
	Timezone:        "Africa/Lagos",
	StartTime:       time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC),
	EndTime:         time.Date(2024, time.March, 4, 9, 25, 0, 0, time.UTC),
	DurationSeconds: 1500,
}

func TestSubmitSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got map[string]any

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, sample.ID, got["id"])
		assert.Equal(t, "writing", got["activity_tag"])
		assert.Equal(t, "Africa/Lagos", got["timezone"])
		assert.EqualValues(t, 1500, got["duration_seconds"])
		assert.Equal(t, "2024-03-04T09:00:00Z", got["start_time"])

		_, _ = w.Write([]byte(`{"coins_awarded": 25, "xp_awarded": 312}`))
	}))
	defer srv.Close()

	c, err := New(Config{URL: srv.URL, Token: "s3cret", Timeout: time.Second})
	require.NoError(t, err)

	reward, err := c.SubmitSession(context.Background(), sample)
	require.NoError(t, err)
	assert.Equal(t, timer.Reward{Coins: 25, XP: 312}, reward)
}

func TestSubmitSessionEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := New(Config{URL: srv.URL})
	require.NoError(t, err)

	reward, err := c.SubmitSession(context.Background(), sample)
	require.NoError(t, err)
	assert.Zero(t, reward)
}

func TestSubmitSessionRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := New(Config{URL: srv.URL})
	require.NoError(t, err)

	_, err = c.SubmitSession(context.Background(), sample)
	require.ErrorIs(t, err, errUnexpectedStatus)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "token expired")
}

func TestSubmitSessionMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	c, err := New(Config{URL: srv.URL})
	require.NoError(t, err)

	_, err = c.SubmitSession(context.Background(), sample)
	require.ErrorIs(t, err, errDecodeResponse)
}

func TestSubmitSessionHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("request should not be sent")
	}))
	defer srv.Close()

	c, err := New(Config{URL: srv.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.SubmitSession(ctx, sample)
	require.ErrorIs(t, err, errRequest)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewRequiresEndpoint(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, errNoEndpoint)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("FOCUS_UPLOAD_URL", "https://example.test/sessions")
	t.Setenv("FOCUS_UPLOAD_TOKEN", "abc")
	t.Setenv("FOCUS_UPLOAD_TIMEOUT", "5s")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, Config{
		URL:     "https://example.test/sessions",
		Token:   "abc",
		Timeout: 5 * time.Second,
	}, cfg)
	assert.True(t, cfg.Enabled())
}

func TestLoadConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("FOCUS_UPLOAD_URL", "")
	t.Setenv("FOCUS_UPLOAD_TIMEOUT", "0s")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadConfigFromEnvInvalid(t *testing.T) {
	t.Setenv("FOCUS_UPLOAD_TIMEOUT", "soon")

	_, err := LoadConfigFromEnv()
	require.ErrorIs(t, err, errParseEnv)
}
