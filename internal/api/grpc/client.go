package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"simple-notes-manager/internal/converter"
	"simple-notes-manager/internal/model"
)

// Client типизированный клиент notes.v1.NotesService
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient создает клиент поверх установленного соединения
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// ListNotes возвращает все заметки
func (c *Client) ListNotes(ctx context.Context, opts ...grpc.CallOption) ([]model.Note, error) {
	out := new(structpb.ListValue)
	if err := c.conn.Invoke(ctx, FullMethodListNotes, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}

	notes := make([]model.Note, 0, len(out.GetValues()))
	for i, value := range out.GetValues() {
		note, err := converter.ProtoToModel(value.GetStructValue())
		if err != nil {
			return nil, fmt.Errorf("note #%d: %w", i, err)
		}
		notes = append(notes, note)
	}

	return notes, nil
}

// GetNote возвращает заметку по ID
func (c *Client) GetNote(ctx context.Context, id int64, opts ...grpc.CallOption) (model.Note, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, FullMethodGetNote, wrapperspb.Int64(id), out, opts...); err != nil {
		return model.Note{}, err
	}
	return converter.ProtoToModel(out)
}

// CreateNote создает заметку
func (c *Client) CreateNote(ctx context.Context, content string, opts ...grpc.CallOption) (model.Note, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		converter.FieldContent: structpb.NewStringValue(content),
	}}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, FullMethodCreateNote, in, out, opts...); err != nil {
		return model.Note{}, err
	}
	return converter.ProtoToModel(out)
}

// UpdateNote обновляет заметку; content == nil оставляет содержимое без изменений
func (c *Client) UpdateNote(ctx context.Context, id int64, content *string, opts ...grpc.CallOption) (model.Note, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		converter.FieldID: structpb.NewNumberValue(float64(id)),
	}}
	if content != nil {
		in.Fields[converter.FieldContent] = structpb.NewStringValue(*content)
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, FullMethodUpdateNote, in, out, opts...); err != nil {
		return model.Note{}, err
	}
	return converter.ProtoToModel(out)
}

// DeleteNote удаляет заметку по ID
func (c *Client) DeleteNote(ctx context.Context, id int64, opts ...grpc.CallOption) error {
	return c.conn.Invoke(ctx, FullMethodDeleteNote, wrapperspb.Int64(id), new(emptypb.Empty), opts...)
}

// WatchNotes открывает стрим событий. Возвращается только после того, как сервер
// подтвердил подписку заголовком, поэтому последующие изменения не будут пропущены
func (c *Client) WatchNotes(ctx context.Context, opts ...grpc.CallOption) (*EventStream, error) {
	desc := &NotesServiceDesc.Streams[0]
	stream, err := c.conn.NewStream(ctx, desc, FullMethodWatchNotes, opts...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(&emptypb.Empty{}); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	if _, err := stream.Header(); err != nil {
		return nil, err
	}

	return &EventStream{stream: stream}, nil
}

// EventStream клиентская сторона WatchNotes
type EventStream struct {
	stream grpc.ClientStream
}

// Recv блокируется до следующего события; io.EOF означает штатное закрытие стрима
func (s *EventStream) Recv() (model.NoteEvent, error) {
	out := new(structpb.Struct)
	if err := s.stream.RecvMsg(out); err != nil {
		return model.NoteEvent{}, err
	}
	return converter.ProtoToEvent(out)
}
