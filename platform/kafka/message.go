package kafka

import "time"

// Message — обёртка над сообщением Kafka, не зависящая от клиента.
type Message struct {
	Headers        map[string][]byte
	Timestamp      time.Time
	BlockTimestamp time.Time

	Key       []byte
	Value     []byte
	Topic     string
	Partition int32
	Offset    int64
}

func (m Message) Header(key string) string {
	return string(m.Headers[key])
}

type Header struct {
	Key   string
	Value string
}
