package notes

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"simple-notes-manager/internal/api/http/handler"
	"simple-notes-manager/internal/converter"
	svc "simple-notes-manager/internal/service"
)

var (
	// errInvalidID возвращается, если параметр пути id не является целым числом
	errInvalidID = errors.New("id must be an integer")

	errNotObject    = errors.New("request body must be a JSON object")
	errTrailingData = errors.New("request body must contain a single JSON object")
)

// CreateRequest тело запроса на создание заметки
type CreateRequest struct {
	Content *string `json:"content" binding:"required" example:"Buy milk"`
}

// UpdateRequest тело запроса на обновление заметки; отсутствующий content оставляет заметку без изменений
type UpdateRequest struct {
	Content *string `json:"content" example:"Buy oat milk"`
}

// Handlers REST хэндлеры заметок
type Handlers struct {
	noteService svc.NoteService
}

// New создает хэндлеры поверх сервиса заметок
func New(noteService svc.NoteService) *Handlers {
	return &Handlers{noteService: noteService}
}

// parseID извлекает целочисленный id из пути
func parseID(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// invalid формирует ответ 422
func invalid(detail string) handler.Result {
	return handler.Fail(http.StatusUnprocessableEntity, detail)
}

// notFound формирует ответ 404 для заметки с указанным id
func notFound(id int64) handler.Result {
	return handler.Fail(http.StatusNotFound, svc.NotFoundMessage(id))
}

// bindJSON читает тело как ровно одно JSON значение и передает его в gin binding.
// Данные после значения и тело null отклоняются
func bindJSON(ctx *gin.Context, obj any) error {
	body, err := ctx.GetRawData()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	if string(raw) == "null" {
		return errNotObject
	}

	return binding.JSON.BindBody(raw, obj)
}

// bodyError переводит ошибку декодирования или валидации тела в текст для клиента
func bodyError(err error) string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, io.EOF):
		return "request body is required"
	case errors.Is(err, errNotObject), errors.Is(err, errTrailingData):
		return err.Error()
	case errors.As(err, &typeErr):
		if typeErr.Field == converter.FieldContent {
			return converter.ErrInvalidContent.Error()
		}
		return errNotObject.Error()
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return "request body is not valid JSON"
	case errors.As(err, &validationErrs):
		return converter.ErrMissingContent.Error()
	default:
		return err.Error()
	}
}
