package notes

import (
	"sync"

	"simple-notes-manager/internal/model"
	svc "simple-notes-manager/internal/service"
)

// DefaultEventBuffer размер буфера канала подписчика по умолчанию
const DefaultEventBuffer = 16

var _ svc.EventPublisher = (*EventService)(nil)

// EventService управляет подписчиками на события изменения заметок
type EventService struct {
	subscribers map[chan model.NoteEvent]struct{}
	bufferSize  int
	closed      bool
	mu          sync.RWMutex
}

// NewEventService создает новый экземпляр EventService.
// bufferSize <= 0 заменяется на DefaultEventBuffer.
func NewEventService(bufferSize int) *EventService {
	if bufferSize <= 0 {
		bufferSize = DefaultEventBuffer
	}

	return &EventService{
		subscribers: make(map[chan model.NoteEvent]struct{}),
		bufferSize:  bufferSize,
	}
}

// Subscribe добавляет нового подписчика и возвращает канал для получения событий.
// После Close возвращается уже закрытый канал.
func (s *EventService) Subscribe() <-chan model.NoteEvent {
	ch := make(chan model.NoteEvent, s.bufferSize)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		close(ch)
		return ch
	}

	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe удаляет подписчика и закрывает его канал
func (s *EventService) Unsubscribe(sub <-chan model.NoteEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.subscribers {
		if ch == sub {
			close(ch)
			delete(s.subscribers, ch)
			return
		}
	}
}

// Publish отправляет событие всем подписчикам.
// Если канал подписчика переполнен, событие пропускается (защита от backpressure)
func (s *EventService) Publish(event model.NoteEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount возвращает количество активных подписчиков
func (s *EventService) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.subscribers)
}

// Close закрывает каналы всех подписчиков; повторный вызов безопасен
func (s *EventService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, ch)
	}
	s.closed = true
}
