package kafka

import "time"

// Message is the unit published to the change-feed topic.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}
