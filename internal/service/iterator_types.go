package service

import (
	"context"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/segmentio/kafka-go"
)

// MessageIterator is the consumer side the Iterator reads from.
// *kafkaclient.KafkaConsumer satisfies it.
type MessageIterator interface {
	// Messages is closed when the consumer stops.
	Messages() <-chan kafka.Message
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// LoaderFunc loads and decodes the object a notification points at.
type LoaderFunc[T any] func(ctx context.Context, bucket, key string) (T, error)

// FetchedObject pairs a loaded object with the event and message it came from.
type FetchedObject[T any] struct {
	Data  T
	Event notification.Event

	msg kafka.Message
}
