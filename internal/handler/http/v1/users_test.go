package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/family_locator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSearchUsers_Success(t *testing.T) {
	_, _, mockProfiles, router := newTestHandlerWithProfiles(t)
	found := models.NewDefaultProfile("u2", "u2@example.com")

	mockProfiles.EXPECT().
		SearchByEmail(gomock.Any(), "u1", "u2@example.com").
		Return([]*models.UserProfile{found}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/users?email=u2@example.com&requester=u1", nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "u2", resp[0].UID)
	assert.Equal(t, []string{}, resp[0].Following)
}

func TestSearchUsers_MissingEmail(t *testing.T) {
	_, _, mockProfiles, router := newTestHandlerWithProfiles(t)

	mockProfiles.EXPECT().SearchByEmail(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/users?requester=u1", nil, authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email is required")
}

func TestGetProfile_NotFound(t *testing.T) {
	_, _, mockProfiles, router := newTestHandlerWithProfiles(t)

	mockProfiles.EXPECT().
		GetProfile(gomock.Any(), "ghost").
		Return(nil, models.ErrProfileNotFound).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/users/ghost", nil, authHeader)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "profile not found")
}

func TestFollow_Success(t *testing.T) {
	_, _, mockProfiles, router := newTestHandlerWithProfiles(t)

	mockProfiles.EXPECT().Follow(gomock.Any(), "u1", "u2").Return(nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/users/u1/following/u2", nil, authHeader)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestFollow_Self(t *testing.T) {
	_, _, mockProfiles, router := newTestHandlerWithProfiles(t)

	mockProfiles.EXPECT().Follow(gomock.Any(), "u1", "u1").Return(models.ErrInvalidTarget).Times(1)

	w := makeRequest(router, "POST", "/api/v1/users/u1/following/u1", nil, authHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid target user")
}

func TestUnfollow_Success(t *testing.T) {
	_, _, mockProfiles, router := newTestHandlerWithProfiles(t)

	mockProfiles.EXPECT().Unfollow(gomock.Any(), "u1", "u2").Return(nil).Times(1)

	w := makeRequest(router, "DELETE", "/api/v1/users/u1/following/u2", nil, authHeader)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLocationRequests(t *testing.T) {
	_, _, mockProfiles, router := newTestHandlerWithProfiles(t)

	gomock.InOrder(
		mockProfiles.EXPECT().SendLocationRequest(gomock.Any(), "u1", "u2").Return(nil),
		mockProfiles.EXPECT().AcceptLocationRequest(gomock.Any(), "u2", "u1").Return(nil),
		mockProfiles.EXPECT().RejectLocationRequest(gomock.Any(), "u3", "u1").Return(errors.New("tx failed")),
	)

	w := makeRequest(router, "POST", "/api/v1/users/u1/location-requests/u2", nil, authHeader)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = makeRequest(router, "POST", "/api/v1/users/u2/location-requests/u1/accept", nil, authHeader)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = makeRequest(router, "POST", "/api/v1/users/u3/location-requests/u1/reject", nil, authHeader)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListNotifications_Success(t *testing.T) {
	_, _, mockProfiles, router := newTestHandlerWithProfiles(t)
	record := &models.NotificationRecord{
		ID:             uuid.New(),
		UserID:         "u2",
		Type:           models.NotificationTypeLocationChange,
		Message:        "u1@example.com moved away, new distance 0.04 km",
		SenderID:       "u1",
		SenderEmail:    "u1@example.com",
		DistanceMeters: 37,
		CreatedAt:      time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}

	mockProfiles.EXPECT().
		ListNotifications(gomock.Any(), "u2", 2, 5).
		Return([]*models.NotificationRecord{record}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/users/u2/notifications?page=2&pageSize=5", nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []NotificationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, record.ID, resp[0].ID)
	assert.Equal(t, "u1", resp[0].SenderID)
	assert.False(t, resp[0].Read)
}

func TestListNotifications_DefaultPaging(t *testing.T) {
	_, _, mockProfiles, router := newTestHandlerWithProfiles(t)

	mockProfiles.EXPECT().
		ListNotifications(gomock.Any(), "u2", 1, 20).
		Return([]*models.NotificationRecord{}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/users/u2/notifications", nil, authHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
