package v1

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @Summary Search users by email
// @Description Find users by exact email. The requester is excluded from results. Requires API key.
// @Tags Users
// @Produce json
// @Security ApiKeyAuth
// @Param email query string true "Email to search for"
// @Param requester query string false "ID of the searching user"
// @Success 200 {array} ProfileResponse
// @Failure 400 {object} map[string]string "Email is required"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users [get]
func (h *Handler) searchUsers(c *gin.Context) {
	log := h.logger.WithField("method", "searchUsers")
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	profiles, err := h.profiles.SearchByEmail(c.Request.Context(), c.Query("requester"), email)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToProfileResponses(profiles))
}

// @Summary Get user profile
// @Description Get a user profile by ID. Requires API key.
// @Tags Users
// @Produce json
// @Security ApiKeyAuth
// @Param uid path string true "User ID"
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Profile not found"
// @Router /users/{uid} [get]
func (h *Handler) getProfile(c *gin.Context) {
	uid := c.Param("uid")
	log := h.logger.WithField("method", "getProfile").WithField("user_id", uid)

	profile, err := h.profiles.GetProfile(c.Request.Context(), uid)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToProfileResponse(profile))
}

// @Summary Follow a user
// @Description Start following the target user and share location with them. Requires API key.
// @Tags Users
// @Security ApiKeyAuth
// @Param uid path string true "User ID"
// @Param other path string true "Target user ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid target user"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Profile not found"
// @Router /users/{uid}/following/{other} [post]
func (h *Handler) follow(c *gin.Context) {
	h.relation(c, "follow", h.profiles.Follow)
}

// @Summary Unfollow a user
// @Description Stop following the target user. Requires API key.
// @Tags Users
// @Security ApiKeyAuth
// @Param uid path string true "User ID"
// @Param other path string true "Target user ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid target user"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Profile not found"
// @Router /users/{uid}/following/{other} [delete]
func (h *Handler) unfollow(c *gin.Context) {
	h.relation(c, "unfollow", h.profiles.Unfollow)
}

// @Summary Request location sharing
// @Description Ask the target user to share their location. Requires API key.
// @Tags Users
// @Security ApiKeyAuth
// @Param uid path string true "User ID"
// @Param other path string true "Target user ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid target user"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Profile not found"
// @Router /users/{uid}/location-requests/{other} [post]
func (h *Handler) sendLocationRequest(c *gin.Context) {
	h.relation(c, "sendLocationRequest", h.profiles.SendLocationRequest)
}

// @Summary Accept location request
// @Description Accept a pending location request and start sharing location with the requester. Requires API key.
// @Tags Users
// @Security ApiKeyAuth
// @Param uid path string true "User ID"
// @Param other path string true "Requester user ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid target user"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Profile not found"
// @Router /users/{uid}/location-requests/{other}/accept [post]
func (h *Handler) acceptLocationRequest(c *gin.Context) {
	h.relation(c, "acceptLocationRequest", h.profiles.AcceptLocationRequest)
}

// @Summary Reject location request
// @Description Reject a pending location request. Requires API key.
// @Tags Users
// @Security ApiKeyAuth
// @Param uid path string true "User ID"
// @Param other path string true "Requester user ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid target user"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Profile not found"
// @Router /users/{uid}/location-requests/{other}/reject [post]
func (h *Handler) rejectLocationRequest(c *gin.Context) {
	h.relation(c, "rejectLocationRequest", h.profiles.RejectLocationRequest)
}

// @Summary List notifications
// @Description Get a paginated list of the user's notifications, newest first. Requires API key.
// @Tags Users
// @Produce json
// @Security ApiKeyAuth
// @Param uid path string true "User ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} NotificationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users/{uid}/notifications [get]
func (h *Handler) listNotifications(c *gin.Context) {
	uid := c.Param("uid")
	log := h.logger.WithField("method", "listNotifications").WithField("user_id", uid)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	records, err := h.profiles.ListNotifications(c.Request.Context(), uid, page, pageSize)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToNotificationResponses(records))
}

// relation выполняет изменение связи между пользователем uid и other
func (h *Handler) relation(c *gin.Context, method string, op func(ctx context.Context, uid, other string) error) {
	uid, other := c.Param("uid"), c.Param("other")
	log := h.logger.WithFields(logrus.Fields{
		"method":   method,
		"user_id":  uid,
		"other_id": other,
	})

	if err := op(c.Request.Context(), uid, other); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
