package notes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"simple-notes-manager/internal/api/http/handler"
)

// Get godoc
// @Summary Find a note
// @Description Find a note using its id
// @Tags Note
// @Produce json
// @Param id path int true "Note id"
// @Success 200 {object} model.Note
// @Failure 404 {object} handler.Error
// @Failure 422 {object} handler.Error
// @Router /notes/{id} [get]
func (h *Handlers) Get(ctx *gin.Context) handler.Result {
	id, err := parseID(ctx)
	if err != nil {
		return invalid(err.Error())
	}

	outcome := h.noteService.GetNote(ctx.Request.Context(), id)
	if outcome.IsNotFound() {
		return notFound(outcome.ID)
	}

	return handler.Result{
		Status: http.StatusOK,
		Body:   outcome.Data,
	}
}
