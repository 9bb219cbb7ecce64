package grpc

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"simple-notes-manager/internal/converter"
	"simple-notes-manager/internal/model"
	svc "simple-notes-manager/internal/service"
)

const (
	// errorDomain домен для errdetails.ErrorInfo
	errorDomain = "notes.v1"
	// reasonNoteNotFound машиночитаемая причина NotFound
	reasonNoteNotFound = "NOTE_NOT_FOUND"
	// SubscribedHeader заголовок, который WatchNotes отправляет после оформления подписки
	SubscribedHeader = "x-notes-subscribed"
)

// EventSource источник событий для WatchNotes
type EventSource interface {
	Subscribe() <-chan model.NoteEvent
	Unsubscribe(<-chan model.NoteEvent)
}

var _ NotesServer = (*Handler)(nil)

// Handler реализует gRPC сервер для NotesService
type Handler struct {
	noteService svc.NoteService
	events      EventSource

	// serverCtx отменяется при shutdown, чтобы стримы завершались до GracefulStop
	serverCtx context.Context
}

// NewHandler создает новый экземпляр gRPC хэндлера
func NewHandler(noteService svc.NoteService, events EventSource, serverCtx context.Context) *Handler {
	return &Handler{
		noteService: noteService,
		events:      events,
		serverCtx:   serverCtx,
	}
}

// ListNotes возвращает список всех заметок
func (h *Handler) ListNotes(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	outcome := h.noteService.ListNotes(ctx)

	return converter.ModelsToProtos(outcome.Data), nil
}

// GetNote возвращает заметку по её ID
func (h *Handler) GetNote(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	outcome := h.noteService.GetNote(ctx, req.GetValue())
	if outcome.IsNotFound() {
		return nil, notFoundError(outcome.ID)
	}

	return converter.ModelToProto(outcome.Data), nil
}

// CreateNote создает новую заметку
func (h *Handler) CreateNote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	content, err := converter.ContentFromStruct(req)
	if err != nil {
		return nil, invalidArgumentError(converter.FieldContent, err)
	}
	if content == nil {
		return nil, invalidArgumentError(converter.FieldContent, converter.ErrMissingContent)
	}

	outcome := h.noteService.CreateNote(ctx, *content)

	return converter.ModelToProto(outcome.Data), nil
}

// UpdateNote обновляет существующую заметку
func (h *Handler) UpdateNote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := converter.IDFromStruct(req)
	if err != nil {
		return nil, invalidArgumentError(converter.FieldID, err)
	}

	content, err := converter.ContentFromStruct(req)
	if err != nil {
		return nil, invalidArgumentError(converter.FieldContent, err)
	}

	outcome := h.noteService.UpdateNote(ctx, id, content)
	if outcome.IsNotFound() {
		return nil, notFoundError(outcome.ID)
	}

	return converter.ModelToProto(outcome.Data), nil
}

// DeleteNote удаляет заметку по ID
func (h *Handler) DeleteNote(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	outcome := h.noteService.DeleteNote(ctx, req.GetValue())
	if outcome.IsNotFound() {
		return nil, notFoundError(outcome.ID)
	}

	return &emptypb.Empty{}, nil
}

// WatchNotes отправляет клиенту события изменения заметок, пока клиент не отключится
// или сервер не начнет shutdown
func (h *Handler) WatchNotes(_ *emptypb.Empty, stream NotesWatchServer) error {
	events := h.events.Subscribe()
	defer h.events.Unsubscribe(events)

	// Заголовок сообщает клиенту, что подписка оформлена и события не будут потеряны
	if err := stream.SendHeader(metadata.Pairs(SubscribedHeader, "true")); err != nil {
		return err
	}

	for {
		select {
		case <-stream.Context().Done():
			return nil
		case <-h.serverCtx.Done():
			return status.Error(codes.Unavailable, "server is shutting down")
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := stream.Send(converter.EventToProto(event)); err != nil {
				return err
			}
		}
	}
}

// notFoundError формирует NotFound со структурированными деталями
func notFoundError(id int64) error {
	noteID := strconv.FormatInt(id, 10)
	st := status.New(codes.NotFound, svc.NotFoundMessage(id))

	st, err := st.WithDetails(
		&errdetails.ErrorInfo{
			Reason:   reasonNoteNotFound,
			Domain:   errorDomain,
			Metadata: map[string]string{"note_id": noteID},
		},
		&errdetails.ResourceInfo{
			ResourceType: "note",
			ResourceName: noteID,
			Description:  fmt.Sprintf("Note with ID %s was searched but not found", noteID),
		},
	)
	if err != nil {
		// Если не удалось добавить Details, просто возвращаем ошибку без деталей
		return status.Error(codes.NotFound, svc.NotFoundMessage(id))
	}

	return st.Err()
}

// invalidArgumentError формирует InvalidArgument с описанием нарушенного поля
func invalidArgumentError(field string, cause error) error {
	st := status.New(codes.InvalidArgument, fmt.Sprintf("validation failed: %v", cause))

	st, err := st.WithDetails(&errdetails.BadRequest{
		FieldViolations: []*errdetails.BadRequest_FieldViolation{
			{Field: field, Description: cause.Error()},
		},
	})
	if err != nil {
		return status.Error(codes.InvalidArgument, cause.Error())
	}

	return st.Err()
}

// IsNotFound сообщает, что ошибка gRPC означает отсутствие заметки
func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
