package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// @Summary Stream session events
// @Description WebSocket stream of notifications, area transitions and followed user positions. Requires API key.
// @Tags Sessions
// @Security ApiKeyAuth
// @Param uid path string true "User ID"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{uid}/events [get]
func (h *Handler) streamEvents(c *gin.Context) {
	uid := c.Param("uid")
	log := h.logger.WithField("method", "streamEvents").WithField("user_id", uid)

	events, stop, err := h.sessions.Observe(c.Request.Context(), uid)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	defer stop()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		log.WithError(err).Warn("Failed to upgrade connection")
		return
	}
	defer conn.Close()

	// Читаем входящие кадры, чтобы заметить закрытие соединения клиентом
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-clientGone:
			return
		case ev, ok := <-events:
			if !ok {
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed")
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				log.WithError(err).Warn("Failed to write session event")
				return
			}
		}
	}
}
