package quickadd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dayplanner/dayplanner/internal/rest"
	"github.com/dayplanner/dayplanner/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest() *Handler {
	clock := &utils.MockClock{FixedNow: reference}
	return NewHandler(NewParser(clock), clock)
}

func withLocation(req *http.Request) *http.Request {
	return req.WithContext(rest.WithLocation(req.Context(), location))
}

func TestHandler_Parse(t *testing.T) {
	handler := setupHandlerTest()

	req := withLocation(httptest.NewRequest(http.MethodPost, "/api/quickadd/parse", bytes.NewBufferString(`{"text":"Dinner at 7pm tomorrow"}`)))
	w := httptest.NewRecorder()
	handler.Parse(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response ParseResponseDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Parsed)
	require.NotNil(t, response.Event)
	assert.Equal(t, "Dinner", response.Event.Title)
	assert.Equal(t, "social", response.Event.EventType)
	assert.True(t, at(5, 19, 0).Equal(response.Event.Start))
	assert.True(t, at(5, 20, 0).Equal(response.Event.End))
}

func TestHandler_Parse_ReferenceDate(t *testing.T) {
	handler := setupHandlerTest()

	body := `{"text":"Standup tomorrow 9am","referenceDate":"2025-06-10T08:00:00+02:00"}`
	w := httptest.NewRecorder()
	handler.Parse(w, withLocation(httptest.NewRequest(http.MethodPost, "/api/quickadd/parse", bytes.NewBufferString(body))))

	assert.Equal(t, http.StatusOK, w.Code)
	var response ParseResponseDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.NotNil(t, response.Event)
	assert.True(t, at(11, 9, 0).Equal(response.Event.Start))
}

func TestHandler_Parse_NotUnderstood(t *testing.T) {
	handler := setupHandlerTest()

	w := httptest.NewRecorder()
	handler.Parse(w, withLocation(httptest.NewRequest(http.MethodPost, "/api/quickadd/parse", bytes.NewBufferString(`{"text":"7pm tomorrow"}`))))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"parsed":false}`, w.Body.String())
}

func TestHandler_Parse_MissingText(t *testing.T) {
	handler := setupHandlerTest()

	w := httptest.NewRecorder()
	handler.Parse(w, withLocation(httptest.NewRequest(http.MethodPost, "/api/quickadd/parse", bytes.NewBufferString(`{}`))))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResponse rest.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
	assert.Equal(t, "Invalid quick add request", errResponse.Error)
}

func TestHandler_GetSuggestions(t *testing.T) {
	handler := setupHandlerTest()

	testCases := []struct {
		name       string
		target     string
		wantStatus int
		want       []string
	}{
		{"defaults to now", "/api/quickadd/suggestions", http.StatusOK, afternoonSuggestions},
		{"explicit time", "/api/quickadd/suggestions?time=2025-06-04T08:00:00%2B02:00", http.StatusOK, morningSuggestions},
		{"invalid time", "/api/quickadd/suggestions?time=tonight", http.StatusBadRequest, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.GetSuggestions(w, withLocation(httptest.NewRequest(http.MethodGet, tc.target, nil)))

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.want == nil {
				return
			}
			var response SuggestionsDTO
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tc.want, response.Suggestions)
		})
	}
}
