// Package service turns storage notifications delivered over Kafka into
// loaded batch requests and runs them through the report aggregator.
package service

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/segmentio/kafka-go"
)

// Iterator reads MinIO bucket notifications from a MessageIterator and loads
// every created object they reference. It does not own the consumer; callers
// start and stop it.
type Iterator[T any] struct {
	msgIterator MessageIterator
	loader      LoaderFunc[T]
}

func NewIterator[T any](iterator MessageIterator, loader LoaderFunc[T]) *Iterator[T] {
	return &Iterator[T]{
		msgIterator: iterator,
		loader:      loader,
	}
}

// Objects streams loaded objects until the message channel closes or ctx is
// done. Undecodable messages and messages that reference nothing loadable are
// committed and skipped so they are not redelivered. Offsets for emitted
// objects are committed by Commit once the caller has handled them.
func (it *Iterator[T]) Objects(ctx context.Context) <-chan *FetchedObject[T] {
	out := make(chan *FetchedObject[T])
	go func() {
		defer close(out)

		for msg := range it.msgIterator.Messages() {
			var info notification.Info
			if err := json.Unmarshal(msg.Value, &info); err != nil {
				log.Printf("Error unmarshalling notification at offset %d: %v", msg.Offset, err)
				it.commit(ctx, msg)
				continue
			}

			emitted := 0
			for _, event := range info.Records {
				if !strings.HasPrefix(event.EventName, "s3:ObjectCreated") {
					continue
				}
				key, err := url.QueryUnescape(event.S3.Object.Key)
				if err != nil {
					log.Printf("Error decoding object key %q: %v", event.S3.Object.Key, err)
					continue
				}
				data, err := it.loader(ctx, event.S3.Bucket.Name, key)
				if err != nil {
					log.Printf("Error loading object %s/%s: %v", event.S3.Bucket.Name, key, err)
					continue
				}
				select {
				case out <- &FetchedObject[T]{Data: data, Event: event, msg: msg}:
					emitted++
				case <-ctx.Done():
					return
				}
			}
			if emitted == 0 {
				it.commit(ctx, msg)
			}
		}
	}()
	return out
}

// Commit acknowledges the message obj was loaded from.
func (it *Iterator[T]) Commit(ctx context.Context, obj *FetchedObject[T]) {
	it.commit(ctx, obj.msg)
}

func (it *Iterator[T]) commit(ctx context.Context, msg kafka.Message) {
	if err := it.msgIterator.CommitOffset(ctx, msg); err != nil {
		log.Printf("Failed to commit offset %d: %v", msg.Offset, err)
	}
}
