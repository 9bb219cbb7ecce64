package handler

import (
	"github.com/gin-gonic/gin"
)

// Result ответ хэндлера: HTTP статус и тело, которое будет сериализовано в JSON.
// Body == nil означает ответ без тела (например, 204)
type Result struct {
	Status int
	Body   interface{}
}

// Error тело ответа с ошибкой
type Error struct {
	Detail string `json:"detail"`
}

// Func хэндлер, возвращающий Result вместо прямой записи в gin.Context
type Func func(ctx *gin.Context) Result

// Wrapper адаптирует Func к gin.HandlerFunc
func Wrapper(h Func) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result := h(ctx)
		if result.Body == nil {
			ctx.Status(result.Status)
			return
		}
		ctx.JSON(result.Status, result.Body)
	}
}

// Fail формирует Result с ошибкой
func Fail(status int, detail string) Result {
	return Result{
		Status: status,
		Body:   Error{Detail: detail},
	}
}
