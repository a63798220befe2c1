package weights_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/corrida-app/backend/internal/auth"
	"github.com/corrida-app/backend/internal/telemetry/metrics"
	"github.com/corrida-app/backend/internal/weights"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testUserID = "user-1"

func newTestHandler(t *testing.T) (*MockweightsRepo, *mux.Router) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repoMock := NewMockweightsRepo(ctrl)

	router := mux.NewRouter()
	handler := weights.NewHandler(repoMock, metrics.NewTestManager())
	handler.SetupRoutes(router)

	return repoMock, router
}

func authedRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(auth.ContextWithUserID(context.Background(), testUserID))
}

func TestHandler_HandleAdd(t *testing.T) {
	repoMock, router := newTestHandler(t)

	repoMock.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry weights.WeightEntry) (*weights.WeightEntry, error) {
			assert.Equal(t, testUserID, entry.UserID)
			assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), entry.Date)
			assert.Equal(t, 72.4, entry.WeightKg)
			return &entry, nil
		}).Times(1)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "POST", "/weights", []byte(`{"date":"2024-06-03","weightKg":72.4}`)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var savedEntry weights.WeightEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &savedEntry))
	assert.Equal(t, 72.4, savedEntry.WeightKg)
}

func TestHandler_HandleAdd_InvalidInput(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "bad date", body: `{"date":"03/06/2024","weightKg":72.4}`},
		{name: "zero weight", body: `{"date":"2024-06-03","weightKg":0}`},
		{name: "negative weight", body: `{"date":"2024-06-03","weightKg":-3}`},
		{name: "not json", body: `not-json`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, router := newTestHandler(t)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest(t, "POST", "/weights", []byte(tc.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_HandleList(t *testing.T) {
	repoMock, router := newTestHandler(t)

	repoMock.EXPECT().
		ListAll(gomock.Any(), testUserID).
		Return([]weights.WeightEntry{
			{UserID: testUserID, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), WeightKg: 73},
			{UserID: testUserID, Date: time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC), WeightKg: 72.4},
		}, nil).Times(1)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "GET", "/weights", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var entries []weights.WeightEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Date.Before(entries[1].Date))
}

func TestHandler_Unauthorized(t *testing.T) {
	_, router := newTestHandler(t)

	req, err := http.NewRequest("GET", "/weights", nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
