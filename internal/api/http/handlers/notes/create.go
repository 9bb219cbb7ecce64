package notes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"simple-notes-manager/internal/api/http/handler"
)

// Create godoc
// @Summary Create a note
// @Description Creates a note and assigns it the next id
// @Tags Note
// @Accept json
// @Produce json
// @Param note body notes.CreateRequest true "Note content"
// @Success 201 {object} model.Note
// @Failure 422 {object} handler.Error
// @Router /notes [post]
func (h *Handlers) Create(ctx *gin.Context) handler.Result {
	var req CreateRequest
	if err := bindJSON(ctx, &req); err != nil {
		return invalid(bodyError(err))
	}

	outcome := h.noteService.CreateNote(ctx.Request.Context(), *req.Content)

	return handler.Result{
		Status: http.StatusCreated,
		Body:   outcome.Data,
	}
}
