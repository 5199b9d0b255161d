package config

const (
	EnvStorageBackend = "STORAGE_BACKEND"
	EnvSnapshotPath   = "SNAPSHOT_PATH"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvSeedOnEmpty = "SEED_ON_EMPTY"

	EnvKafkaEnabled      = "KAFKA_ENABLED"
	EnvKafkaBrokers      = "KAFKA_BROKERS"
	EnvKafkaTopic        = "KAFKA_TOPIC"
	EnvKafkaMaxAttempts  = "KAFKA_MAX_ATTEMPTS"
	EnvKafkaBatchTimeout = "KAFKA_BATCH_TIMEOUT"
	EnvKafkaCompression  = "KAFKA_COMPRESSION"
)
