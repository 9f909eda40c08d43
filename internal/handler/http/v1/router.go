package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	protected := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))

	// Сессии отслеживания
	sessions := protected.Group("/sessions")
	{
		sessions.POST("", h.signIn)
		sessions.GET("/:uid", h.getSession)
		sessions.DELETE("/:uid", h.signOut)
		sessions.POST("/:uid/positions", h.reportPosition)
		sessions.PUT("/:uid/area", h.setArea)
		sessions.DELETE("/:uid/area", h.clearArea)
		sessions.GET("/:uid/events", h.streamEvents)
	}

	// Профили и социальный граф
	users := protected.Group("/users")
	{
		users.GET("", h.searchUsers)
		users.GET("/:uid", h.getProfile)
		users.POST("/:uid/following/:other", h.follow)
		users.DELETE("/:uid/following/:other", h.unfollow)
		users.POST("/:uid/location-requests/:other", h.sendLocationRequest)
		users.POST("/:uid/location-requests/:other/accept", h.acceptLocationRequest)
		users.POST("/:uid/location-requests/:other/reject", h.rejectLocationRequest)
		users.GET("/:uid/notifications", h.listNotifications)
	}

	protected.GET("/stats", h.getStats)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
