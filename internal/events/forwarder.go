package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"gocloud.dev/pubsub"

	// Схемы топиков: awssns:// и awssqs://
	_ "gocloud.dev/pubsub/awssnssqs"
	// Схема mem:// для локального запуска и тестов
	_ "gocloud.dev/pubsub/mempubsub"

	"simple-notes-manager/internal/model"
)

// Ключи метаданных сообщения
const (
	MetadataType   = "type"
	MetadataNoteID = "note_id"
)

// Source источник событий об изменении заметок
type Source interface {
	Subscribe() <-chan model.NoteEvent
	Unsubscribe(<-chan model.NoteEvent)
}

// Forwarder пересылает события заметок во внешний топик gocloud pubsub
type Forwarder struct {
	topic  *pubsub.Topic
	source Source
	log    *zap.SugaredLogger
	done   chan struct{}
}

// OpenTopic открывает топик по URL, например mem://notes или awssns:///arn:aws:sns:...?region=us-east-1
func OpenTopic(ctx context.Context, url string) (*pubsub.Topic, error) {
	topic, err := pubsub.OpenTopic(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("pubsub.OpenTopic: %w", err)
	}
	return topic, nil
}

// NewForwarder создает форвардер; события начинают пересылаться после Start
func NewForwarder(topic *pubsub.Topic, source Source, log *zap.SugaredLogger) *Forwarder {
	return &Forwarder{
		topic:  topic,
		source: source,
		log:    log,
		done:   make(chan struct{}),
	}
}

// Start подписывается на события синхронно и пересылает их в фоне,
// пока источник не закроет подписку или не отменится ctx
func (f *Forwarder) Start(ctx context.Context) {
	sub := f.source.Subscribe()

	go func() {
		defer close(f.done)
		defer f.source.Unsubscribe(sub)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-sub:
				if !ok {
					return
				}
				f.send(ctx, event)
			}
		}
	}()
}

// send отправляет одно событие; ошибки логируются и не прерывают пересылку
func (f *Forwarder) send(ctx context.Context, event model.NoteEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		f.log.Errorw("failed to encode note event", "type", event.Type, "note_id", event.Note.ID, "error", err)
		return
	}

	msg := &pubsub.Message{
		Body: body,
		Metadata: map[string]string{
			MetadataType:   string(event.Type),
			MetadataNoteID: strconv.FormatInt(event.Note.ID, 10),
		},
	}

	if err := f.topic.Send(ctx, msg); err != nil {
		f.log.Errorw("failed to forward note event", "type", event.Type, "note_id", event.Note.ID, "error", err)
		return
	}

	f.log.Debugw("note event forwarded", "type", event.Type, "note_id", event.Note.ID)
}

// Shutdown дожидается завершения пересылки и закрывает топик.
// Источник должен быть закрыт (или ctx из Start отменен) до вызова
func (f *Forwarder) Shutdown(ctx context.Context) error {
	select {
	case <-f.done:
	case <-ctx.Done():
		return fmt.Errorf("forwarder did not stop: %w", ctx.Err())
	}

	if err := f.topic.Shutdown(ctx); err != nil {
		return fmt.Errorf("topic.Shutdown: %w", err)
	}
	return nil
}
