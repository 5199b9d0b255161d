package main

import (
	"context"
	"math/rand"
	"time"

	"orsched/internal/notify"
	"orsched/internal/schedule/handler"
	"orsched/internal/schedule/store"
	"orsched/internal/schedule/validator"
	"orsched/internal/seed"
	"orsched/internal/storage"
	"orsched/pkg/app"
	"orsched/pkg/config"
	"orsched/pkg/kafka"
	"orsched/pkg/model"
)

const ServiceName = "scheduler"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Scheduler service")

	scheduleStore := initStore(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewScheduleHandler(scheduleStore, cfg.Log),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)

	if cfg.KafkaEnabled {
		notifier, producer := initNotifier(cfg, scheduleStore)
		serverApp.OnShutdown(func() {
			notifier.Stop()
			if err := producer.Close(); err != nil {
				cfg.Log.Warn("Failed to close Kafka producer", "error", err)
			}
		})
	}
	serverApp.OnShutdown(scheduleStore.Close)

	serverApp.Run()
}

func initStore(cfg *config.Config) *store.Store {
	var snapshots storage.SnapshotStorage
	switch cfg.StorageBackend {
	case config.StorageBackendMongo:
		cfg.SetMongo()
		snapshots = storage.NewMongoStorage(cfg.Client.Mongo, cfg.MongoDatabaseName,
			cfg.RequestTimeout, cfg.RequestTimeout)
	default:
		snapshots = storage.NewFileStorage(cfg.SnapshotPath)
	}

	scheduleStore := store.New(snapshots, validator.NewBookingValidator(cfg.Log), cfg.Log)

	var seedData []model.Booking
	if cfg.SeedOnEmpty {
		seedData = seed.Generate(time.Now(), rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()
	if err := scheduleStore.Load(ctx, seedData); err != nil {
		cfg.Log.Fatal("Failed to load booking snapshot", "error", err)
	}

	cfg.Log.Info("Schedule store initialized", "backend", cfg.StorageBackend)
	return scheduleStore
}

func initNotifier(cfg *config.Config, scheduleStore *store.Store) (*notify.SnapshotNotifier, *kafka.Producer) {
	producer, err := kafka.NewProducer(kafka.ProducerOptions{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaTopic,
		MaxAttempts:  cfg.KafkaMaxAttempts,
		BatchTimeout: cfg.KafkaBatchTimeout,
		Compression:  cfg.KafkaCompression,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	notifier := notify.NewSnapshotNotifier(scheduleStore, producer, cfg.Log)
	cfg.Log.Info("Snapshot notifier started", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	return notifier, producer
}
