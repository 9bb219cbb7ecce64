package events

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"simple-notes-manager/internal/model"
)

// ContentType формат потока: одно JSON событие на строку
const ContentType = "application/x-ndjson"

// Source источник событий об изменении заметок
type Source interface {
	Subscribe() <-chan model.NoteEvent
	Unsubscribe(<-chan model.NoteEvent)
}

// Handler отдает события изменения заметок потоком NDJSON.
// Через WebSocket proxy каждая строка приходит клиенту отдельным сообщением
type Handler struct {
	events    Source
	serverCtx context.Context
}

// New создает хэндлер; serverCtx отменяется при shutdown и завершает все открытые потоки
func New(events Source, serverCtx context.Context) *Handler {
	return &Handler{events: events, serverCtx: serverCtx}
}

// Stream godoc
// @Summary Watch note changes
// @Description Streams created, updated and deleted events as newline delimited JSON. Supports WebSocket upgrade
// @Tags Event
// @Produce json
// @Success 200 {object} model.NoteEvent
// @Router /events [get]
func (h *Handler) Stream(ctx *gin.Context) {
	sub := h.events.Subscribe()
	defer h.events.Unsubscribe(sub)

	// Поток живет дольше, чем WriteTimeout сервера
	_ = http.NewResponseController(ctx.Writer).SetWriteDeadline(time.Time{})

	ctx.Header("Content-Type", ContentType)
	ctx.Header("Cache-Control", "no-cache")
	ctx.Status(http.StatusOK)
	// Заголовки уходят сразу: получив их, клиент знает, что подписка оформлена
	ctx.Writer.Flush()

	encoder := json.NewEncoder(ctx.Writer)
	for {
		select {
		case <-ctx.Request.Context().Done():
			return
		case <-h.serverCtx.Done():
			return
		case event, ok := <-sub:
			if !ok {
				return
			}
			if err := encoder.Encode(event); err != nil {
				return
			}
			ctx.Writer.Flush()
		}
	}
}
