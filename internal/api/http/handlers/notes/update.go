package notes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"simple-notes-manager/internal/api/http/handler"
)

// Update godoc
// @Summary Update a note
// @Description Replaces the content of a note. Omitted or null content leaves the note unchanged
// @Tags Note
// @Accept json
// @Produce json
// @Param id path int true "Note id"
// @Param note body notes.UpdateRequest true "New content"
// @Success 200 {object} model.Note
// @Failure 404 {object} handler.Error
// @Failure 422 {object} handler.Error
// @Router /notes/{id} [put]
func (h *Handlers) Update(ctx *gin.Context) handler.Result {
	id, err := parseID(ctx)
	if err != nil {
		return invalid(err.Error())
	}

	var req UpdateRequest
	if err := bindJSON(ctx, &req); err != nil {
		return invalid(bodyError(err))
	}

	outcome := h.noteService.UpdateNote(ctx.Request.Context(), id, req.Content)
	if outcome.IsNotFound() {
		return notFound(outcome.ID)
	}

	return handler.Result{
		Status: http.StatusOK,
		Body:   outcome.Data,
	}
}
