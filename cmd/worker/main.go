package main

import (
	"context"
	"flag"
	"log"
	"os"

	"scout/internal/aggregator"
	"scout/internal/app"
	"scout/internal/config"
	"scout/internal/env"
	"scout/internal/models"
	"scout/internal/service"
	"scout/internal/storage"
	"scout/pkg/graceful"
	"scout/pkg/kafkaclient"
)

func main() {
	submit := flag.String("submit", "", "upload the batch request in this JSON file and exit")
	flag.Parse()
	os.Exit(run(*submit))
}

func run(submit string) int {
	env.LoadEnv()
	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	batchCfg, err := config.LoadBatch()
	if err != nil {
		log.Printf("Initialization failed: %v", err)
		return 1
	}
	s3Service, err := storage.NewS3Service(batchCfg)
	if err != nil {
		log.Print(err)
		return 1
	}
	if err := s3Service.CreateBucket(ctx, ""); err != nil {
		log.Print(err)
		return 1
	}

	if submit != "" {
		if err := submitBatch(ctx, s3Service, submit); err != nil {
			log.Print(err)
			return 1
		}
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Initialization failed: %v", err)
		return 1
	}

	ledger, err := storage.NewLedger(ctx, batchCfg.DatabaseURL)
	if err != nil {
		log.Print(err)
		return 1
	}
	defer ledger.Close()

	producer := kafkaclient.NewProducer(batchCfg.KafkaReportTopic, batchCfg.KafkaBroker)
	defer func() {
		if err := producer.Close(); err != nil {
			log.Printf("Failed to close producer: %v", err)
		}
	}()

	processor := service.NewBatchProcessor(func(kind models.Variant) (service.Runner, error) {
		v, err := aggregator.ForKind(kind)
		if err != nil {
			return nil, err
		}
		agg, err := app.Build(cfg, v)
		if err != nil {
			return nil, err
		}
		return agg, nil
	}, producer, ledger)

	log.Printf("Connecting to Kafka broker: %s on topic: %s with group ID: %s",
		batchCfg.KafkaBroker, batchCfg.KafkaTopic, batchCfg.KafkaGroupID)
	consumer := kafkaclient.NewKafkaConsumer(batchCfg.KafkaTopic, batchCfg.KafkaGroupID, batchCfg.KafkaBroker)
	consumer.StartConsuming(ctx)

	iterator := service.NewIterator(consumer, s3Service.GetBatch)
	for obj := range iterator.Objects(ctx) {
		if _, err := processor.Process(ctx, obj.Data); err != nil {
			log.Printf("Batch %s not processed: %v", obj.Data.ID, err)
			if ctx.Err() != nil {
				break
			}
		}
		iterator.Commit(ctx, obj)
	}

	consumer.Stop()
	log.Println("Worker finished, application exiting.")
	return 0
}

func submitBatch(ctx context.Context, s3Service *storage.S3Service, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := storage.DecodeBatch(f)
	if err != nil {
		return err
	}
	key, err := s3Service.StoreBatch(ctx, *b)
	if err != nil {
		return err
	}
	log.Printf("Submitted batch %s as %s/%s", b.ID, s3Service.Bucket(), key)
	return nil
}
