// Package notify fans booking state changes out to external systems.
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"orsched/internal/schedule/store"
	"orsched/pkg/kafka"
	"orsched/pkg/logger"
)

const publishTimeout = 10 * time.Second

// SnapshotNotifier publishes the full booking set to a Kafka topic on every
// commit. Consumers receive whole snapshots, not deltas, so a missed message
// never leaves them with a partial view.
type SnapshotNotifier struct {
	producer *kafka.Producer
	sub      *store.Subscription
	log      *logger.Logger
	wg       sync.WaitGroup
}

// NewSnapshotNotifier subscribes to the store and starts the publishing
// loop. Stop must be called before the producer is closed.
func NewSnapshotNotifier(s *store.Store, producer *kafka.Producer, log *logger.Logger) *SnapshotNotifier {
	n := &SnapshotNotifier{
		producer: producer,
		sub:      s.Subscribe(),
		log:      log,
	}

	n.wg.Add(1)
	go n.run()
	return n
}

func (n *SnapshotNotifier) run() {
	defer n.wg.Done()

	for snapshot := range n.sub.Updates() {
		payload, err := json.Marshal(snapshot)
		if err != nil {
			n.log.Error("Failed to marshal booking snapshot", "error", err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err = n.producer.Publish(ctx, kafka.Message{
			Key:   "schedules",
			Value: payload,
		})
		cancel()
		if err != nil {
			n.log.Error("Failed to publish booking snapshot",
				"topic", n.producer.Topic(),
				"bookings", len(snapshot),
				"error", err,
			)
			continue
		}

		n.log.Debug("Published booking snapshot",
			"topic", n.producer.Topic(),
			"bookings", len(snapshot),
		)
	}
}

// Stop closes the subscription and waits for the in-flight publish to
// finish. The producer itself is left open for the caller to close.
func (n *SnapshotNotifier) Stop() {
	n.sub.Close()
	n.wg.Wait()
}
