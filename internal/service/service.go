package service

import (
	"context"

	"simple-notes-manager/internal/model"
)

// NoteService интерфейс для бизнес-логики работы с заметками.
// Методы не возвращают ошибок: "не найдено" - это обычный результат (Outcome), а не сбой.
type NoteService interface {
	// ListNotes возвращает список всех заметок
	ListNotes(ctx context.Context) Outcome[[]model.Note]

	// CreateNote создает новую заметку с указанным content (валидируется транспортом)
	CreateNote(ctx context.Context, content string) Outcome[model.Note]

	// GetNote возвращает заметку по её ID
	GetNote(ctx context.Context, id int64) Outcome[model.Note]

	// UpdateNote обновляет заметку; nil content означает, что поле не передано
	UpdateNote(ctx context.Context, id int64, content *string) Outcome[model.Note]

	// DeleteNote удаляет заметку по ID
	DeleteNote(ctx context.Context, id int64) Outcome[struct{}]
}

// EventPublisher получает события об изменении заметок
type EventPublisher interface {
	Publish(event model.NoteEvent)
}
