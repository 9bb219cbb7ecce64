package notes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"simple-notes-manager/internal/api/http/handler"
)

// Delete godoc
// @Summary Delete a note
// @Description Deletes a note. Its id is never assigned again
// @Tags Note
// @Produce json
// @Param id path int true "Note id"
// @Success 204
// @Failure 404 {object} handler.Error
// @Failure 422 {object} handler.Error
// @Router /notes/{id} [delete]
func (h *Handlers) Delete(ctx *gin.Context) handler.Result {
	id, err := parseID(ctx)
	if err != nil {
		return invalid(err.Error())
	}

	outcome := h.noteService.DeleteNote(ctx.Request.Context(), id)
	if outcome.IsNotFound() {
		return notFound(outcome.ID)
	}

	return handler.Result{Status: http.StatusNoContent}
}
