package notes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"simple-notes-manager/internal/api/http/handler"
)

// List godoc
// @Summary List notes
// @Description Returns every note ordered by id
// @Tags Note
// @Produce json
// @Success 200 {array} model.Note
// @Router /notes [get]
func (h *Handlers) List(ctx *gin.Context) handler.Result {
	outcome := h.noteService.ListNotes(ctx.Request.Context())

	return handler.Result{
		Status: http.StatusOK,
		Body:   outcome.Data,
	}
}
