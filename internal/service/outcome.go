package service

import "fmt"

// Kind вид результата операции сервиса
type Kind int

const (
	// KindOk операция выполнена и вернула данные
	KindOk Kind = iota
	// KindOkEmpty операция выполнена, тела ответа нет
	KindOkEmpty
	// KindNotFound заметка с указанным ID не существует
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindOk:
		return "Ok"
	case KindOkEmpty:
		return "OkEmpty"
	case KindNotFound:
		return "NotFound"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome размеченный результат операции: Ok(data), OkEmpty или NotFound(id)
type Outcome[T any] struct {
	Kind Kind
	Data T
	ID   int64 // ID, который не был найден (только для KindNotFound)
}

// Ok результат с данными
func Ok[T any](data T) Outcome[T] {
	return Outcome[T]{Kind: KindOk, Data: data}
}

// OkEmpty успешный результат без данных
func OkEmpty[T any]() Outcome[T] {
	return Outcome[T]{Kind: KindOkEmpty}
}

// NotFound результат для отсутствующей заметки
func NotFound[T any](id int64) Outcome[T] {
	return Outcome[T]{Kind: KindNotFound, ID: id}
}

// IsNotFound сообщает, что заметка не найдена
func (o Outcome[T]) IsNotFound() bool {
	return o.Kind == KindNotFound
}

// NotFoundMessage текст ошибки для клиента
func NotFoundMessage(id int64) string {
	return fmt.Sprintf("Note with id %d not found", id)
}
