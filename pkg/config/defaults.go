package config

import "time"

const (
	StorageBackendFile  = "file"
	StorageBackendMongo = "mongo"

	DefaultStorageBackend = StorageBackendFile
	DefaultSnapshotPath   = "surgery_schedules.json"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "orsched"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSeedOnEmpty = true

	DefaultKafkaEnabled      = false
	DefaultKafkaBrokers      = "localhost:9092"
	DefaultKafkaTopic        = "surgery-schedule-snapshots"
	DefaultKafkaMaxAttempts  = 3
	DefaultKafkaBatchTimeout = 100 * time.Millisecond
	DefaultKafkaCompression  = "snappy"
)
