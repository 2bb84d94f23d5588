package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

var (
	nc *nats.Conn
	js nats.JetStreamContext
)

// Lifecycle event subjects published by the photo handlers.
const (
	SubjectPhotoCommitted = "photos.committed"
	SubjectPhotoUpdated   = "photos.updated"
	SubjectPhotoDeleted   = "photos.deleted"
	SubjectPhotoRestored  = "photos.restored"
)

// ConnectNATS connects to NATS and initializes JetStream and streams.
// It returns the underlying Conn and JetStreamContext for advanced usage.
func ConnectNATS(url string) (*nats.Conn, nats.JetStreamContext, error) {
	if nc != nil && nc.IsConnected() {
		return nc, js, nil
	}

	opts := []nats.Option{
		nats.Name("lastshoot"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("[NATS] disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("[NATS] reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Println("[NATS] connection closed")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, nil, err
	}
	nc = conn

	jsCtx, err := nc.JetStream()
	if err != nil {
		nc.Close()
		nc = nil
		return nil, nil, err
	}
	js = jsCtx

	// Ensure the stream exists (idempotent)
	if err := ensureStream(); err != nil {
		log.Printf("[NATS] warning: failed to ensure stream: %v", err)
	}

	log.Println("[NATS] connected and JetStream initialized")
	return nc, js, nil
}

func ensureStream() error {
	_, err := js.StreamInfo("photo-events")
	if err == nil {
		return nil
	}

	streamCfg := &nats.StreamConfig{
		Name:     "photo-events",
		Subjects: []string{"photos.*"},
		Storage:  nats.FileStorage,
		MaxAge:   30 * 24 * time.Hour,
	}

	_, err = js.AddStream(streamCfg)
	return err
}

// PublishEvent publishes a lifecycle event via JetStream. Callers treat a
// failure as a warning: events are advisory, the photo row is the source
// of truth.
func PublishEvent(subject string, payload interface{}) error {
	if js == nil {
		return errors.New("jetstream not initialized")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	// The message ID is derived from the event content, so JetStream
	// deduplicates a retried publish of the same event.
	_, err = js.Publish(subject, data, nats.MsgId(eventMsgID(subject, data)))
	if err != nil {
		log.Printf("[NATS] publish failed subject=%s err=%v", subject, err)
		return err
	}
	return nil
}

func eventMsgID(subject string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(subject))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// CloseNATS closes the connection
func CloseNATS() {
	if nc != nil && nc.IsConnected() {
		nc.Close()
	}
}
