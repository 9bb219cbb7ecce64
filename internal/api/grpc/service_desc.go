package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Сервис описан вручную поверх well-known типов protobuf, поэтому не требует кодогенерации.
// Заметка передается как google.protobuf.Struct {"id": number, "content": string}.
const (
	ServiceName = "notes.v1.NotesService"

	FullMethodListNotes  = "/" + ServiceName + "/ListNotes"
	FullMethodGetNote    = "/" + ServiceName + "/GetNote"
	FullMethodCreateNote = "/" + ServiceName + "/CreateNote"
	FullMethodUpdateNote = "/" + ServiceName + "/UpdateNote"
	FullMethodDeleteNote = "/" + ServiceName + "/DeleteNote"
	FullMethodWatchNotes = "/" + ServiceName + "/WatchNotes"
)

// NotesServer серверная часть notes.v1.NotesService
type NotesServer interface {
	// ListNotes возвращает все заметки в порядке возрастания ID
	ListNotes(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	// GetNote возвращает заметку по ID
	GetNote(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	// CreateNote создает заметку из {"content": string}
	CreateNote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// UpdateNote обновляет заметку из {"id": number, "content"?: string}
	UpdateNote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// DeleteNote удаляет заметку по ID
	DeleteNote(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
	// WatchNotes стримит события изменения заметок
	WatchNotes(*emptypb.Empty, NotesWatchServer) error
}

// NotesWatchServer серверный стрим для WatchNotes
type NotesWatchServer interface {
	Send(*structpb.Struct) error
	grpc.ServerStream
}

type notesWatchServer struct {
	grpc.ServerStream
}

func (x *notesWatchServer) Send(m *structpb.Struct) error {
	return x.ServerStream.SendMsg(m)
}

// RegisterNotesServer регистрирует реализацию NotesServer на gRPC сервере
func RegisterNotesServer(s grpc.ServiceRegistrar, srv NotesServer) {
	s.RegisterService(&NotesServiceDesc, srv)
}

// NotesServiceDesc описание сервиса для grpc.Server
var NotesServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NotesServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListNotes", Handler: listNotesHandler},
		{MethodName: "GetNote", Handler: getNoteHandler},
		{MethodName: "CreateNote", Handler: createNoteHandler},
		{MethodName: "UpdateNote", Handler: updateNoteHandler},
		{MethodName: "DeleteNote", Handler: deleteNoteHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "WatchNotes", Handler: watchNotesHandler, ServerStreams: true},
	},
	Metadata: "notes/v1/notes.proto",
}

// unary общий код декодирования запроса и вызова цепочки интерцепторов
func unary[Req any](
	srv interface{},
	ctx context.Context,
	dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor,
	fullMethod string,
	call func(NotesServer, context.Context, *Req) (interface{}, error),
) (interface{}, error) {
	in := new(Req)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return call(srv.(NotesServer), ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: fullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return call(srv.(NotesServer), ctx, req.(*Req))
	}
	return interceptor(ctx, in, info, handler)
}

func listNotesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return unary(srv, ctx, dec, interceptor, FullMethodListNotes,
		func(s NotesServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.ListNotes(ctx, in)
		})
}

func getNoteHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return unary(srv, ctx, dec, interceptor, FullMethodGetNote,
		func(s NotesServer, ctx context.Context, in *wrapperspb.Int64Value) (interface{}, error) {
			return s.GetNote(ctx, in)
		})
}

func createNoteHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return unary(srv, ctx, dec, interceptor, FullMethodCreateNote,
		func(s NotesServer, ctx context.Context, in *structpb.Struct) (interface{}, error) {
			return s.CreateNote(ctx, in)
		})
}

func updateNoteHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return unary(srv, ctx, dec, interceptor, FullMethodUpdateNote,
		func(s NotesServer, ctx context.Context, in *structpb.Struct) (interface{}, error) {
			return s.UpdateNote(ctx, in)
		})
}

func deleteNoteHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return unary(srv, ctx, dec, interceptor, FullMethodDeleteNote,
		func(s NotesServer, ctx context.Context, in *wrapperspb.Int64Value) (interface{}, error) {
			return s.DeleteNote(ctx, in)
		})
}

func watchNotesHandler(srv interface{}, stream grpc.ServerStream) error {
	in := new(emptypb.Empty)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(NotesServer).WatchNotes(in, &notesWatchServer{ServerStream: stream})
}
