package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cradoe/safetrain/internal/mocks"
	"github.com/cradoe/safetrain/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserFixture() (*UserHandler, *mocks.MockDatabase, *sync.WaitGroup) {
	db := mocks.NewMockDatabase()
	wg := &sync.WaitGroup{}

	h := NewUserHandler(&UserHandler{
		UserRepo:     db.User(),
		ActivityRepo: db.Activity(),
		Helper:       testHelper(wg),
		ErrHandler:   testErrHandler(),
	})

	return h, db, wg
}

func sampleUser() *models.User {
	return &models.User{
		ID:                3,
		Name:              "Amaka",
		Email:             "amaka@example.com",
		HashedPassword:    "$2a$04$secret",
		CurrentLevel:      2,
		TrainingCompleted: false,
		Status:            "pending",
		CreatedAt:         time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestHandleGetUser(t *testing.T) {
	t.Run("non numeric id", func(t *testing.T) {
		h, db, _ := newUserFixture()

		req := httptest.NewRequest(http.MethodGet, "/api/user/abc", nil)
		req.SetPathValue("id", "abc")

		rr := httptest.NewRecorder()
		h.HandleGetUser(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		db.Users.AssertNotCalled(t, "GetOne", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		h, db, _ := newUserFixture()
		db.Users.On("GetOne", mock.Anything, int64(8)).Return(nil, false, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/user/8", nil)
		req.SetPathValue("id", "8")

		rr := httptest.NewRecorder()
		h.HandleGetUser(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "User not found", decodeEnvelope(t, rr).Message)
	})

	t.Run("profile without hash", func(t *testing.T) {
		h, db, _ := newUserFixture()
		db.Users.On("GetOne", mock.Anything, int64(3)).Return(sampleUser(), true, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/user/3", nil)
		req.SetPathValue("id", "3")

		rr := httptest.NewRecorder()
		h.HandleGetUser(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		data := rr.Body.String()
		assert.JSONEq(t, `{"id":3,"name":"Amaka","email":"amaka@example.com","current_level":2,"training_completed":false}`, data)
		assert.NotContains(t, data, "secret")
	})
}

func TestHandleUIUpdate(t *testing.T) {
	t.Run("returns account", func(t *testing.T) {
		h, db, _ := newUserFixture()
		db.Users.On("GetOne", mock.Anything, int64(3)).Return(sampleUser(), true, nil)

		rr := httptest.NewRecorder()
		h.HandleUIUpdate(rr, newJSONRequest(t, http.MethodPost, "/user/ui_update", map[string]any{"account_id": 3}))

		require.Equal(t, http.StatusOK, rr.Code)

		var data map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &data))
		assert.Equal(t, "pending", data["status"])
		assert.Equal(t, "amaka@example.com", data["email"])
		assert.NotContains(t, data, "password")
	})

	t.Run("unknown account", func(t *testing.T) {
		h, db, _ := newUserFixture()
		db.Users.On("GetOne", mock.Anything, int64(42)).Return(nil, false, nil)

		rr := httptest.NewRecorder()
		h.HandleUIUpdate(rr, newJSONRequest(t, http.MethodPost, "/user/ui_update", map[string]any{"account_id": 42}))

		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		h, db, _ := newUserFixture()
		db.Users.On("GetOne", mock.Anything, int64(3)).Return(nil, false, errors.New("too many connections"))

		rr := httptest.NewRecorder()
		h.HandleUIUpdate(rr, newJSONRequest(t, http.MethodPost, "/user/ui_update", map[string]any{"account_id": 3}))

		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestHandleCompleteTraining(t *testing.T) {
	t.Run("missing user id", func(t *testing.T) {
		h, _, _ := newUserFixture()

		rr := httptest.NewRecorder()
		h.HandleCompleteTraining(rr, newJSONRequest(t, http.MethodPost, "/api/complete-training", map[string]any{}))

		require.Equal(t, http.StatusBadRequest, rr.Code)

		var messages []string
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Error, &messages))
		assert.Equal(t, []string{"Missing user ID"}, messages)
	})

	t.Run("non positive user id", func(t *testing.T) {
		for _, id := range []int{0, -4} {
			h, db, _ := newUserFixture()

			rr := httptest.NewRecorder()
			h.HandleCompleteTraining(rr, newJSONRequest(t, http.MethodPost, "/api/complete-training", map[string]any{"userId": id}))

			require.Equal(t, http.StatusBadRequest, rr.Code, id)
			var messages []string
			require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Error, &messages))
			assert.Equal(t, []string{"Missing user ID"}, messages)
			db.Users.AssertNotCalled(t, "CompleteTraining", mock.Anything, mock.Anything)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		h, db, _ := newUserFixture()
		db.Users.On("CompleteTraining", mock.Anything, int64(404)).Return(false, nil)

		rr := httptest.NewRecorder()
		h.HandleCompleteTraining(rr, newJSONRequest(t, http.MethodPost, "/api/complete-training", map[string]any{"userId": 404}))

		require.Equal(t, http.StatusNotFound, rr.Code)
		db.Activities.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("completed", func(t *testing.T) {
		h, db, wg := newUserFixture()
		db.Users.On("CompleteTraining", mock.Anything, int64(3)).Return(true, nil)
		db.Activities.On("Insert", mock.Anything, mock.MatchedBy(func(l *models.ActivityLog) bool {
			return l.UserID == 3 && l.Description == CourseActivityLogCompletedDescription
		})).Return(&models.ActivityLog{}, nil)

		rr := httptest.NewRecorder()
		h.HandleCompleteTraining(rr, newJSONRequest(t, http.MethodPost, "/api/complete-training", map[string]any{"userId": 3}))
		wg.Wait()

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"Training status updated successfully"}`, rr.Body.String())
		db.Activities.AssertExpectations(t)
	})
}

func TestParseID(t *testing.T) {
	for _, tt := range []struct {
		in string
		id int64
		ok bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	} {
		id, ok := parseID(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.id, id, tt.in)
	}
}
