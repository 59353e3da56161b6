package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dayplanner/dayplanner/internal/config"
	"github.com/dayplanner/dayplanner/pkg/quickadd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAppTest(t *testing.T) http.Handler {
	cfg := config.Defaults()
	cfg.Timezone = "Europe/Warsaw"
	application, err := New(cfg)
	require.NoError(t, err)
	return application.Handler()
}

func doRequest(handler http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestApplication_QuickAddParse(t *testing.T) {
	handler := setupAppTest(t)

	w := doRequest(handler, http.MethodPost, "/api/quickadd/parse",
		`{"text": "Dinner at 7pm tomorrow", "referenceDate": "2025-06-04T14:20:00+02:00"}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var response quickadd.ParseResponseDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.True(t, response.Parsed)
	require.NotNil(t, response.Event)
	assert.Equal(t, "Dinner", response.Event.Title)
	assert.Equal(t, "social", response.Event.EventType)
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 6, 5, 19, 0, 0, 0, warsaw).Equal(response.Event.Start), "start %v", response.Event.Start)
}

func TestApplication_TimezoneHeader(t *testing.T) {
	handler := setupAppTest(t)
	body := `{"text": "Gym at 7am", "referenceDate": "2025-06-04T12:00:00Z"}`

	w := doRequest(handler, http.MethodPost, "/api/quickadd/parse", body, map[string]string{"X-Timezone": "America/New_York"})
	require.Equal(t, http.StatusOK, w.Code)
	var response quickadd.ParseResponseDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.NotNil(t, response.Event)
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 6, 4, 7, 0, 0, 0, newYork).Equal(response.Event.Start), "start %v", response.Event.Start)

	w = doRequest(handler, http.MethodPost, "/api/quickadd/parse", body, map[string]string{"X-Timezone": "Mars/Olympus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplication_Routes(t *testing.T) {
	handler := setupAppTest(t)
	testCases := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"conflicts", http.MethodPost, "/api/conflicts", `{"candidate": {"start": "2025-06-02T10:00:00+02:00", "end": "2025-06-02T11:00:00+02:00"}}`, http.StatusOK},
		{"availability check", http.MethodPost, "/api/availability/check", `{"start": "2025-06-02T10:00:00+02:00", "end": "2025-06-02T11:00:00+02:00"}`, http.StatusOK},
		{"availability suggestions", http.MethodPost, "/api/availability/suggestions", `{"durationMinutes": 30, "day": "2025-06-02T00:00:00+02:00"}`, http.StatusOK},
		{"availability next", http.MethodPost, "/api/availability/next", `{"durationMinutes": 30, "from": "2025-06-02T10:00:00+02:00"}`, http.StatusOK},
		{"highlight stats", http.MethodPost, "/api/highlights/stats", `{"entries": []}`, http.StatusOK},
		{"daily prompt", http.MethodPost, "/api/highlights/prompt", `{"entries": []}`, http.StatusOK},
		{"weekly prompt", http.MethodPost, "/api/highlights/prompt/weekly", `{"entries": []}`, http.StatusOK},
		{"quick add suggestions", http.MethodGet, "/api/quickadd/suggestions?time=2025-06-04T08:00:00Z", "", http.StatusOK},
		{"wrong method", http.MethodGet, "/api/conflicts", "", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/api/budget", "", http.StatusNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(handler, tc.method, tc.target, tc.body, nil)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestApplication_Metrics(t *testing.T) {
	handler := setupAppTest(t)
	doRequest(handler, http.MethodPost, "/api/availability/check", `{"start": "2025-06-02T10:00:00+02:00", "end": "2025-06-02T11:00:00+02:00"}`, nil)

	w := doRequest(handler, http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `dayplanner_http_requests_total{method="POST",route="/api/availability/check",status="200"} 1`)
}

func TestNew_InvalidWeekStart(t *testing.T) {
	cfg := config.Defaults()
	cfg.Highlights.WeekStartDay = "someday"

	_, err := New(cfg)
	assert.Error(t, err)
}
