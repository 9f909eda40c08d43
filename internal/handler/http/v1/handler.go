package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/shenikar/family_locator/internal/config"
	"github.com/shenikar/family_locator/internal/models"
	"github.com/shenikar/family_locator/internal/service"
	"github.com/shenikar/family_locator/internal/session"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	sessions session.Service
	profiles service.ProfileService
	logger   *logrus.Logger
	validate *validator.Validate
	cfg      *config.Config
	upgrader websocket.Upgrader
	now      func() time.Time
}

func NewHandler(sessions session.Service, profiles service.ProfileService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		sessions: sessions,
		profiles: profiles,
		logger:   logger,
		validate: validator.New(),
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Клиенты - мобильные устройства, Origin не проверяем
			CheckOrigin: func(*http.Request) bool { return true },
		},
		now: time.Now,
	}
}

// @Summary Sign in a user
// @Description Start a tracking session for the user. Replaces an existing session of the same user. Requires API key.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param session body SignInRequest true "Sign-in request"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Location permission denied"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sessions [post]
func (h *Handler) signIn(c *gin.Context) {
	var input SignInRequest
	log := h.logger.WithField("method", "signIn")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude must be set together"})
		return
	}

	snap, err := h.sessions.SignIn(c.Request.Context(), DTOToSignIn(input, h.now().UnixMilli()))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, SnapshotToResponse(snap))
}

// @Summary Sign out a user
// @Description Stop the user's session and release all its subscriptions. Requires API key.
// @Tags Sessions
// @Produce json
// @Security ApiKeyAuth
// @Param uid path string true "User ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{uid} [delete]
func (h *Handler) signOut(c *gin.Context) {
	uid := c.Param("uid")
	log := h.logger.WithField("method", "signOut").WithField("user_id", uid)

	if err := h.sessions.SignOut(c.Request.Context(), uid); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get session state
// @Description Get followed users with distances, the monitored area and its occupancy. Requires API key.
// @Tags Sessions
// @Produce json
// @Security ApiKeyAuth
// @Param uid path string true "User ID"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{uid} [get]
func (h *Handler) getSession(c *gin.Context) {
	uid := c.Param("uid")
	log := h.logger.WithField("method", "getSession").WithField("user_id", uid)

	snap, err := h.sessions.Snapshot(c.Request.Context(), uid)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SnapshotToResponse(snap))
}

// @Summary Report device position
// @Description Accept a new position fix from the user's device. Requires API key.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param uid path string true "User ID"
// @Param position body PositionRequest true "Position fix"
// @Success 202 "Accepted"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{uid}/positions [post]
func (h *Handler) reportPosition(c *gin.Context) {
	uid := c.Param("uid")
	log := h.logger.WithField("method", "reportPosition").WithField("user_id", uid)

	var input PositionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessions.ReportPosition(c.Request.Context(), uid, DTOToPosition(input)); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// @Summary Set monitored area
// @Description Set a circular area centred on the current position. Radius defaults to the configured value. Requires API key.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param uid path string true "User ID"
// @Param area body AreaRequest false "Area radius"
// @Success 200 {object} AreaResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Current position is unknown"
// @Router /sessions/{uid}/area [put]
func (h *Handler) setArea(c *gin.Context) {
	uid := c.Param("uid")
	log := h.logger.WithField("method", "setArea").WithField("user_id", uid)

	var input AreaRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			log.WithError(err).Warn("Failed to bind JSON")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	area, err := h.sessions.SetArea(c.Request.Context(), uid, input.RadiusMeters)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, AreaToResponse(area))
}

// @Summary Clear monitored area
// @Description Remove the monitored area of the session. Requires API key.
// @Tags Sessions
// @Produce json
// @Security ApiKeyAuth
// @Param uid path string true "User ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{uid}/area [delete]
func (h *Handler) clearArea(c *gin.Context) {
	uid := c.Param("uid")
	log := h.logger.WithField("method", "clearArea").WithField("user_id", uid)

	if err := h.sessions.ClearArea(c.Request.Context(), uid); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get service statistics
// @Description Get the number of active tracking sessions. Requires API key.
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /stats [get]
func (h *Handler) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, StatsResponse{ActiveSessions: h.sessions.ActiveSessions()})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError переводит доменные ошибки в HTTP-статусы
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, models.ErrPermissionDenied):
		log.WithError(err).Warn("Location permission denied")
		c.JSON(http.StatusForbidden, gin.H{"error": "location permission denied"})
	case errors.Is(err, models.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, models.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
	case errors.Is(err, models.ErrNoPosition):
		c.JSON(http.StatusConflict, gin.H{"error": "current position is unknown"})
	case errors.Is(err, models.ErrInvalidTarget):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target user"})
	default:
		log.WithError(err).Error("Request failed in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
