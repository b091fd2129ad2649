package config

import "scout/internal/env"

// Batch holds the settings the worker needs on top of Config.
type Batch struct {
	KafkaBroker      string `env:"KAFKA_BROKER" validate:"required"`
	KafkaTopic       string `env:"KAFKA_TOPIC" validate:"required"`
	KafkaGroupID     string `env:"KAFKA_GROUP_ID" validate:"required"`
	KafkaReportTopic string `env:"KAFKA_REPORT_TOPIC" validate:"required"`
	MinioEndpoint    string `env:"MINIO_ENDPOINT" validate:"required"`
	MinioAccessKey   string `env:"MINIO_ACCESS_KEY" validate:"required"`
	MinioSecretKey   string `env:"MINIO_SECRET_KEY" validate:"required"`
	MinioUseSSL      bool   `env:"MINIO_USE_SSL"`
	BucketName       string `env:"BATCH_BUCKET_NAME" validate:"required"`
	// DatabaseURL is optional; the run ledger is disabled without it.
	DatabaseURL string `env:"DATABASE_URL"`
}

func LoadBatch() (*Batch, error) {
	var b Batch
	fields := map[string]*string{
		"KAFKA_BROKER":       &b.KafkaBroker,
		"KAFKA_TOPIC":        &b.KafkaTopic,
		"KAFKA_GROUP_ID":     &b.KafkaGroupID,
		"KAFKA_REPORT_TOPIC": &b.KafkaReportTopic,
		"MINIO_ENDPOINT":     &b.MinioEndpoint,
		"MINIO_ACCESS_KEY":   &b.MinioAccessKey,
		"MINIO_SECRET_KEY":   &b.MinioSecretKey,
		"BATCH_BUCKET_NAME":  &b.BucketName,
		"DATABASE_URL":       &b.DatabaseURL,
	}
	for key, dst := range fields {
		if val, ok := env.Lookup(key); ok {
			*dst = val
		}
	}
	if val, ok := env.Lookup("MINIO_USE_SSL"); ok {
		b.MinioUseSSL = val == "true"
	}
	if err := validate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}
