package grpc

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"simple-notes-manager/internal/model"
	"simple-notes-manager/internal/repository/memory"
	"simple-notes-manager/internal/service/notes"
)

const bufSize = 1024 * 1024

type testEnv struct {
	client       *Client
	conn         *grpc.ClientConn
	events       *notes.EventService
	cancelServer context.CancelFunc
}

// newTestEnv поднимает gRPC сервер поверх bufconn с реальными репозиторием и сервисом
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	events := notes.NewEventService(notes.DefaultEventBuffer)
	noteService := notes.NewNoteService(memory.NewRepository(), events)

	serverCtx, cancelServer := context.WithCancel(context.Background())
	handler := NewHandler(noteService, events, serverCtx)
	server, _ := NewServer(handler, zap.NewNop().Sugar(), false)

	listener := bufconn.Listen(bufSize)
	go func() {
		_ = server.Serve(listener)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		cancelServer()
		_ = conn.Close()
		server.Stop()
		events.Close()
	})

	return &testEnv{
		client:       NewClient(conn),
		conn:         conn,
		events:       events,
		cancelServer: cancelServer,
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestHandler_CreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	created, err := env.client.CreateNote(ctx, "buy milk")
	require.NoError(t, err)
	assert.Equal(t, model.Note{ID: 1, Content: "buy milk"}, created)

	got, err := env.client.GetNote(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestHandler_ListNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	list, err := env.client.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = env.client.CreateNote(ctx, "a")
	require.NoError(t, err)
	_, err = env.client.CreateNote(ctx, "b")
	require.NoError(t, err)

	list, err = env.client.ListNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Note{{ID: 1, Content: "a"}, {ID: 2, Content: "b"}}, list)
}

func TestHandler_UpdateNote(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	_, err := env.client.CreateNote(ctx, "draft")
	require.NoError(t, err)

	t.Run("replace content", func(t *testing.T) {
		content := "final"
		updated, err := env.client.UpdateNote(ctx, 1, &content)
		require.NoError(t, err)
		assert.Equal(t, model.Note{ID: 1, Content: "final"}, updated)
	})

	t.Run("omitted content keeps note", func(t *testing.T) {
		updated, err := env.client.UpdateNote(ctx, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, model.Note{ID: 1, Content: "final"}, updated)
	})

	t.Run("unknown id", func(t *testing.T) {
		content := "x"
		_, err := env.client.UpdateNote(ctx, 42, &content)
		require.Error(t, err)
		assert.Equal(t, codes.NotFound, status.Code(err))
		assert.Equal(t, "Note with id 42 not found", status.Convert(err).Message())
	})
}

func TestHandler_DeleteNote(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	created, err := env.client.CreateNote(ctx, "temp")
	require.NoError(t, err)

	require.NoError(t, env.client.DeleteNote(ctx, created.ID))

	err = env.client.DeleteNote(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, err = env.client.GetNote(ctx, created.ID)
	assert.True(t, IsNotFound(err))

	// ID не переиспользуются после удаления
	next, err := env.client.CreateNote(ctx, "next")
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID)
}

func TestHandler_GetNote_NotFoundWithDetails(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	_, err := env.client.GetNote(ctx, 7)
	require.Error(t, err)

	st, ok := status.FromError(err)
	require.True(t, ok, "Error should be a gRPC status")
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "Note with id 7 not found", st.Message())

	details := st.Details()
	require.Len(t, details, 2)

	errorInfo, ok := details[0].(*errdetails.ErrorInfo)
	require.True(t, ok, "First detail should be ErrorInfo")
	assert.Equal(t, "NOTE_NOT_FOUND", errorInfo.GetReason())
	assert.Equal(t, "7", errorInfo.GetMetadata()["note_id"])

	resourceInfo, ok := details[1].(*errdetails.ResourceInfo)
	require.True(t, ok, "Second detail should be ResourceInfo")
	assert.Equal(t, "note", resourceInfo.GetResourceType())
	assert.Equal(t, "7", resourceInfo.GetResourceName())
}

func TestHandler_InvalidArguments(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	tests := []struct {
		name   string
		method string
		req    *structpb.Struct
		field  string
	}{
		{
			name:   "create without content",
			method: FullMethodCreateNote,
			req:    &structpb.Struct{Fields: map[string]*structpb.Value{}},
			field:  "content",
		},
		{
			name:   "create with numeric content",
			method: FullMethodCreateNote,
			req: &structpb.Struct{Fields: map[string]*structpb.Value{
				"content": structpb.NewNumberValue(5),
			}},
			field: "content",
		},
		{
			name:   "update with fractional id",
			method: FullMethodUpdateNote,
			req: &structpb.Struct{Fields: map[string]*structpb.Value{
				"id":      structpb.NewNumberValue(1.5),
				"content": structpb.NewStringValue("x"),
			}},
			field: "id",
		},
		{
			name:   "update with list content",
			method: FullMethodUpdateNote,
			req: &structpb.Struct{Fields: map[string]*structpb.Value{
				"id":      structpb.NewNumberValue(1),
				"content": structpb.NewListValue(&structpb.ListValue{}),
			}},
			field: "content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.conn.Invoke(ctx, tt.method, tt.req, new(structpb.Struct))
			require.Error(t, err)

			st := status.Convert(err)
			assert.Equal(t, codes.InvalidArgument, st.Code())

			require.Len(t, st.Details(), 1)
			badRequest, ok := st.Details()[0].(*errdetails.BadRequest)
			require.True(t, ok, "Detail should be BadRequest")
			require.Len(t, badRequest.GetFieldViolations(), 1)
			assert.Equal(t, tt.field, badRequest.GetFieldViolations()[0].GetField())
		})
	}

	list, err := env.client.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "rejected requests must not create notes")
}

func TestHandler_WatchNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	stream, err := env.client.WatchNotes(ctx)
	require.NoError(t, err)

	created, err := env.client.CreateNote(ctx, "watched")
	require.NoError(t, err)
	content := "changed"
	_, err = env.client.UpdateNote(ctx, created.ID, &content)
	require.NoError(t, err)
	require.NoError(t, env.client.DeleteNote(ctx, created.ID))

	want := []struct {
		eventType model.EventType
		content   string
	}{
		{model.EventCreated, "watched"},
		{model.EventUpdated, "changed"},
		{model.EventDeleted, "changed"},
	}

	for _, w := range want {
		event, err := stream.Recv()
		require.NoError(t, err)
		assert.Equal(t, w.eventType, event.Type)
		assert.Equal(t, created.ID, event.Note.ID)
		assert.Equal(t, w.content, event.Note.Content)
		assert.False(t, event.At.IsZero())
	}
}

func TestHandler_WatchNotes_ServerShutdown(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	stream, err := env.client.WatchNotes(ctx)
	require.NoError(t, err)

	env.cancelServer()

	_, err = stream.Recv()
	require.Error(t, err)
	assert.False(t, errors.Is(err, io.EOF))
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestHandler_WatchNotes_ClientCancelUnsubscribes(t *testing.T) {
	env := newTestEnv(t)

	ctx, cancel := context.WithCancel(testContext(t))
	_, err := env.client.WatchNotes(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, env.events.SubscriberCount())

	cancel()

	require.Eventually(t, func() bool {
		return env.events.SubscriberCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServer_Health(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	resp, err := healthpb.NewHealthClient(env.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

// panicServer паникует в ListNotes, чтобы проверить recovery интерцептор
type panicServer struct {
	NotesServer
}

func (panicServer) ListNotes(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	panic("boom")
}

func TestServer_RecoversFromPanic(t *testing.T) {
	server, _ := NewServer(panicServer{}, zap.NewNop().Sugar(), false)
	listener := bufconn.Listen(bufSize)
	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = NewClient(conn).ListNotes(testContext(t))
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}
