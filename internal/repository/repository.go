package repository

import (
	"context"

	"simple-notes-manager/internal/model"
)

// NoteRepository интерфейс для работы с заметками в хранилище.
// Все операции тотальны: отсутствие заметки - это нормальный результат (found == false), а не ошибка.
type NoteRepository interface {
	// List возвращает все живые заметки в порядке возрастания ID
	List(ctx context.Context) []model.Note

	// Get возвращает заметку по её ID
	Get(ctx context.Context, id int64) (model.Note, bool)

	// Create назначает следующий ID, сохраняет заметку и возвращает её
	Create(ctx context.Context, content string) model.Note

	// Update заменяет содержание заметки; nil content оставляет заметку без изменений
	Update(ctx context.Context, id int64, content *string) (model.Note, bool)

	// Delete удаляет заметку по ID и возвращает удаленную заметку
	Delete(ctx context.Context, id int64) (model.Note, bool)
}
