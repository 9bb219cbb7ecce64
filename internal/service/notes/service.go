package notes

import (
	"context"
	"sync"
	"time"

	"simple-notes-manager/internal/model"
	"simple-notes-manager/internal/repository"
	svc "simple-notes-manager/internal/service"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	// mu держится на время мутации и публикации события:
	// подписчики получают события в том же порядке, в каком их применило хранилище
	mu sync.Mutex

	noteRepository repository.NoteRepository
	events         svc.EventPublisher
	now            func() time.Time
}

// NewNoteService создает новый экземпляр сервиса для работы с заметками.
// events может быть nil, тогда события не публикуются.
func NewNoteService(noteRepository repository.NoteRepository, events svc.EventPublisher) svc.NoteService {
	return &service{
		noteRepository: noteRepository,
		events:         events,
		now:            time.Now,
	}
}

// ListNotes возвращает список всех заметок
func (s *service) ListNotes(ctx context.Context) svc.Outcome[[]model.Note] {
	notes := s.noteRepository.List(ctx)
	if notes == nil {
		notes = []model.Note{}
	}

	return svc.Ok(notes)
}

// CreateNote создает новую заметку
func (s *service) CreateNote(ctx context.Context, content string) svc.Outcome[model.Note] {
	s.mu.Lock()
	defer s.mu.Unlock()

	note := s.noteRepository.Create(ctx, content)
	s.publish(model.EventCreated, note)

	return svc.Ok(note)
}

// GetNote возвращает заметку по её ID
func (s *service) GetNote(ctx context.Context, id int64) svc.Outcome[model.Note] {
	note, found := s.noteRepository.Get(ctx, id)
	if !found {
		return svc.NotFound[model.Note](id)
	}

	return svc.Ok(note)
}

// UpdateNote обновляет заметку с указанным ID (content опционален)
func (s *service) UpdateNote(ctx context.Context, id int64, content *string) svc.Outcome[model.Note] {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, found := s.noteRepository.Update(ctx, id, content)
	if !found {
		return svc.NotFound[model.Note](id)
	}

	if content != nil {
		s.publish(model.EventUpdated, note)
	}

	return svc.Ok(note)
}

// DeleteNote удаляет заметку по ID
func (s *service) DeleteNote(ctx context.Context, id int64) svc.Outcome[struct{}] {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, found := s.noteRepository.Delete(ctx, id)
	if !found {
		return svc.NotFound[struct{}](id)
	}

	s.publish(model.EventDeleted, note)

	return svc.OkEmpty[struct{}]()
}

// publish вызывается под s.mu; Publish у EventService не блокируется
func (s *service) publish(eventType model.EventType, note model.Note) {
	if s.events == nil {
		return
	}

	s.events.Publish(model.NoteEvent{
		Type: eventType,
		Note: note,
		At:   s.now().UTC(),
	})
}
