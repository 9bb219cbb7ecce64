package healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"simple-notes-manager/internal/api/http/handler"
)

// Status тело ответа проверки работоспособности
type Status struct {
	Message string `json:"message" example:"Healthy"`
}

// Get godoc
// @Summary Health check
// @Description Reports that the service is up
// @Tags Health
// @Produce json
// @Success 200 {object} healthcheck.Status
// @Router / [get]
func Get(_ *gin.Context) handler.Result {
	return handler.Result{
		Status: http.StatusOK,
		Body:   Status{Message: "Healthy"},
	}
}
