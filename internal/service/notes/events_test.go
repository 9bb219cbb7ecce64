package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-notes-manager/internal/model"
)

func TestEventService_PublishToSubscribers(t *testing.T) {
	events := NewEventService(4)
	first := events.Subscribe()
	second := events.Subscribe()
	require.Equal(t, 2, events.SubscriberCount())

	event := model.NoteEvent{Type: model.EventCreated, Note: model.Note{ID: 1, Content: "x"}}
	events.Publish(event)

	assert.Equal(t, event, <-first)
	assert.Equal(t, event, <-second)
}

func TestEventService_FullBufferDropsEvents(t *testing.T) {
	events := NewEventService(1)
	sub := events.Subscribe()

	events.Publish(model.NoteEvent{Type: model.EventCreated, Note: model.Note{ID: 1}})
	events.Publish(model.NoteEvent{Type: model.EventCreated, Note: model.Note{ID: 2}})

	got := <-sub
	assert.Equal(t, int64(1), got.Note.ID)
	select {
	case extra := <-sub:
		t.Fatalf("Expected second event to be dropped, got %+v", extra)
	default:
	}
}

func TestEventService_Unsubscribe(t *testing.T) {
	events := NewEventService(0)
	sub := events.Subscribe()

	events.Unsubscribe(sub)
	events.Unsubscribe(sub)

	_, open := <-sub
	assert.False(t, open, "Expected channel to be closed")
	assert.Equal(t, 0, events.SubscriberCount())
}

func TestEventService_Close(t *testing.T) {
	events := NewEventService(0)
	sub := events.Subscribe()

	events.Close()
	events.Close()

	_, open := <-sub
	assert.False(t, open, "Expected channel to be closed after Close")

	late := events.Subscribe()
	_, open = <-late
	assert.False(t, open, "Expected subscription after Close to be closed")

	// Publish после Close не должен паниковать
	events.Publish(model.NoteEvent{Type: model.EventDeleted})
}
