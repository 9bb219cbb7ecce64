package converter

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"simple-notes-manager/internal/model"
)

func TestModelToProto(t *testing.T) {
	s := ModelToProto(model.Note{ID: 3, Content: "hello"})

	assert.Equal(t, float64(3), s.GetFields()[FieldID].GetNumberValue())
	assert.Equal(t, "hello", s.GetFields()[FieldContent].GetStringValue())

	note, err := ProtoToModel(s)
	require.NoError(t, err)
	assert.Equal(t, model.Note{ID: 3, Content: "hello"}, note)
}

func TestModelsToProtos_Empty(t *testing.T) {
	list := ModelsToProtos(nil)

	require.NotNil(t, list)
	assert.Empty(t, list.GetValues())
}

func TestModelsToProtos_KeepsOrder(t *testing.T) {
	list := ModelsToProtos([]model.Note{{ID: 1, Content: "a"}, {ID: 2, Content: "b"}})

	require.Len(t, list.GetValues(), 2)
	assert.Equal(t, "a", list.GetValues()[0].GetStructValue().GetFields()[FieldContent].GetStringValue())
	assert.Equal(t, float64(2), list.GetValues()[1].GetStructValue().GetFields()[FieldID].GetNumberValue())
}

func TestContentFromStruct(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]interface{}
		want    *string
		wantErr error
	}{
		{name: "omitted", fields: map[string]interface{}{}, want: nil},
		{name: "null", fields: map[string]interface{}{"content": nil}, want: nil},
		{name: "empty string", fields: map[string]interface{}{"content": ""}, want: ptr("")},
		{name: "string", fields: map[string]interface{}{"content": "x"}, want: ptr("x")},
		{name: "number", fields: map[string]interface{}{"content": 5}, wantErr: ErrInvalidContent},
		{name: "bool", fields: map[string]interface{}{"content": true}, wantErr: ErrInvalidContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := structpb.NewStruct(tt.fields)
			require.NoError(t, err)

			got, err := ContentFromStruct(s)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateID(t *testing.T) {
	valid := []float64{1, 2, 1 << 40}
	for _, v := range valid {
		id, err := ValidateID(v)
		require.NoError(t, err)
		assert.Equal(t, int64(v), id)
	}

	invalid := []float64{0, -1, 1.5, math.NaN(), math.Inf(1), 1 << 60}
	for _, v := range invalid {
		_, err := ValidateID(v)
		assert.ErrorIs(t, err, ErrInvalidID, "value %v", v)
	}
}

func TestIDFromStruct_WrongType(t *testing.T) {
	s, err := structpb.NewStruct(map[string]interface{}{"id": "1"})
	require.NoError(t, err)

	_, err = IDFromStruct(s)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = IDFromStruct(&structpb.Struct{})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestProtoToModel_MissingContent(t *testing.T) {
	s, err := structpb.NewStruct(map[string]interface{}{"id": 1})
	require.NoError(t, err)

	_, err = ProtoToModel(s)
	assert.ErrorIs(t, err, ErrMissingContent)
}

func TestEventRoundTrip(t *testing.T) {
	event := model.NoteEvent{
		Type: model.EventUpdated,
		Note: model.Note{ID: 9, Content: "c"},
		At:   time.Date(2024, 5, 6, 7, 8, 9, 10, time.UTC),
	}

	got, err := ProtoToEvent(EventToProto(event))
	require.NoError(t, err)

	assert.Equal(t, event.Type, got.Type)
	assert.Equal(t, event.Note, got.Note)
	assert.True(t, event.At.Equal(got.At))
}

func TestProtoToEvent_Invalid(t *testing.T) {
	_, err := ProtoToEvent(&structpb.Struct{})
	require.Error(t, err)
}

func ptr(s string) *string {
	return &s
}
