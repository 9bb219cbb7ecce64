package model

import "time"

// Note представляет заметку (доменная модель)
type Note struct {
	ID      int64  `json:"id" example:"1"`            // Идентификатор, назначается хранилищем
	Content string `json:"content" example:"buy milk"` // Содержание заметки
}

// IsEmpty проверяет, пуста ли заметка (ID не назначен)
func (n *Note) IsEmpty() bool {
	return n.ID == 0 && n.Content == ""
}

// EventType тип события изменения заметки
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// NoteEvent описывает завершенное изменение заметки
type NoteEvent struct {
	Type EventType `json:"type" example:"created"`
	Note Note      `json:"note"`
	At   time.Time `json:"at" example:"2006-01-02T15:04:05Z"`
}
