package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"simple-notes-manager/internal/model"
	"simple-notes-manager/internal/repository"
)

// firstID первый ID, который выдает хранилище
const firstID int64 = 1

var _ repository.NoteRepository = (*repo)(nil)

// repo хранит заметки в map; mu защищает map и счетчик nextID как единое целое
type repo struct {
	mu     sync.RWMutex
	notes  map[int64]model.Note
	nextID int64
}

// NewRepository создает новый экземпляр in-memory репозитория на основе map
func NewRepository() repository.NoteRepository {
	return &repo{
		notes:  make(map[int64]model.Note),
		nextID: firstID,
	}
}

// List возвращает список всех заметок, отсортированный по ID
func (r *repo) List(ctx context.Context) []model.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]model.Note, 0, len(r.notes))
	for _, note := range r.notes {
		notes = append(notes, note)
	}

	// ID выдаются монотонно, поэтому порядок по ID совпадает с порядком вставки
	slices.SortFunc(notes, func(a, b model.Note) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return notes
}

// Get возвращает заметку по её ID
func (r *repo) Get(ctx context.Context, id int64) (model.Note, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, exists := r.notes[id]
	return note, exists
}

// Create создает новую заметку и возвращает созданную заметку с ID
func (r *repo) Create(ctx context.Context, content string) model.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	note := model.Note{
		ID:      r.nextID,
		Content: content,
	}
	r.notes[note.ID] = note

	// Счетчик только растет: ID удаленных заметок не переиспользуются
	r.nextID++

	return note
}

// Update обновляет существующую заметку и возвращает обновленную заметку
func (r *repo) Update(ctx context.Context, id int64, content *string) (model.Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, exists := r.notes[id]
	if !exists {
		return model.Note{}, false
	}

	if content != nil {
		note.Content = *content
		r.notes[id] = note
	}

	return note, true
}

// Delete удаляет заметку по ID и возвращает её в том виде, в каком она была удалена
func (r *repo) Delete(ctx context.Context, id int64) (model.Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, exists := r.notes[id]
	if !exists {
		return model.Note{}, false
	}

	delete(r.notes, id)

	return note, true
}
