package converter

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"simple-notes-manager/internal/model"
)

// Имена полей в google.protobuf.Struct
const (
	FieldID      = "id"
	FieldContent = "content"
	FieldType    = "type"
	FieldNote    = "note"
	FieldAt      = "at"
)

// maxExactID наибольший ID, который без потерь представим в double (Struct хранит числа как double)
const maxExactID = 1 << 53

// ErrInvalidID возвращается, если поле id отсутствует или не является положительным целым
var ErrInvalidID = errors.New("id must be a positive integer")

// ErrInvalidContent возвращается, если поле content имеет тип, отличный от строки
var ErrInvalidContent = errors.New("content must be a string")

// ErrMissingContent возвращается, если обязательное поле content не передано
var ErrMissingContent = errors.New("content is required")

// ModelToProto конвертирует domain модель Note в google.protobuf.Struct
func ModelToProto(note model.Note) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldID:      structpb.NewNumberValue(float64(note.ID)),
			FieldContent: structpb.NewStringValue(note.Content),
		},
	}
}

// ModelsToProtos конвертирует слайс domain моделей в google.protobuf.ListValue
func ModelsToProtos(notes []model.Note) *structpb.ListValue {
	values := make([]*structpb.Value, len(notes))
	for i, note := range notes {
		values[i] = structpb.NewStructValue(ModelToProto(note))
	}

	return &structpb.ListValue{Values: values}
}

// ProtoToModel конвертирует google.protobuf.Struct в domain модель
func ProtoToModel(s *structpb.Struct) (model.Note, error) {
	id, err := IDFromStruct(s)
	if err != nil {
		return model.Note{}, err
	}

	content, err := ContentFromStruct(s)
	if err != nil {
		return model.Note{}, err
	}
	if content == nil {
		return model.Note{}, ErrMissingContent
	}

	return model.Note{ID: id, Content: *content}, nil
}

// EventToProto конвертирует событие в google.protobuf.Struct
func EventToProto(event model.NoteEvent) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldType: structpb.NewStringValue(string(event.Type)),
			FieldNote: structpb.NewStructValue(ModelToProto(event.Note)),
			FieldAt:   structpb.NewStringValue(event.At.UTC().Format(time.RFC3339Nano)),
		},
	}
}

// ProtoToEvent конвертирует google.protobuf.Struct обратно в событие
func ProtoToEvent(s *structpb.Struct) (model.NoteEvent, error) {
	eventType := s.GetFields()[FieldType].GetStringValue()
	if eventType == "" {
		return model.NoteEvent{}, errors.New("event type is required")
	}

	note, err := ProtoToModel(s.GetFields()[FieldNote].GetStructValue())
	if err != nil {
		return model.NoteEvent{}, fmt.Errorf("event note: %w", err)
	}

	at, err := time.Parse(time.RFC3339Nano, s.GetFields()[FieldAt].GetStringValue())
	if err != nil {
		return model.NoteEvent{}, fmt.Errorf("event time: %w", err)
	}

	return model.NoteEvent{Type: model.EventType(eventType), Note: note, At: at}, nil
}

// IDFromStruct извлекает положительный целый id из поля "id"
func IDFromStruct(s *structpb.Struct) (int64, error) {
	value, ok := s.GetFields()[FieldID]
	if !ok {
		return 0, ErrInvalidID
	}

	number, ok := value.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, ErrInvalidID
	}

	return ValidateID(number.NumberValue)
}

// ValidateID проверяет, что число является положительным целым, представимым без потерь
func ValidateID(v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || v < 1 || v > maxExactID {
		return 0, ErrInvalidID
	}
	return int64(v), nil
}

// ContentFromStruct извлекает поле "content".
// nil означает, что поле не передано (или передано как null); нестроковое значение - ошибка.
func ContentFromStruct(s *structpb.Struct) (*string, error) {
	value, ok := s.GetFields()[FieldContent]
	if !ok {
		return nil, nil
	}

	switch kind := value.GetKind().(type) {
	case *structpb.Value_StringValue:
		content := kind.StringValue
		return &content, nil
	case *structpb.Value_NullValue:
		return nil, nil
	default:
		return nil, ErrInvalidContent
	}
}
