package worker

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var errSubscriptionClosed = errors.New("clipboard subscription closed")

// ClipboardSink receives text published on the shared clipboard.
type ClipboardSink interface {
	ClipboardUpdated(text string)
}

// ClipboardRelay subscribes to the clipboard channel and forwards every
// copied report to the sink, so sessions on other instances see it too.
type ClipboardRelay struct {
	rdb     *redis.Client
	channel string
	sink    ClipboardSink
	log     zerolog.Logger
}

// NewClipboardRelay creates a new ClipboardRelay.
func NewClipboardRelay(rdb *redis.Client, channel string, sink ClipboardSink, log zerolog.Logger) *ClipboardRelay {
	return &ClipboardRelay{
		rdb:     rdb,
		channel: channel,
		sink:    sink,
		log:     log.With().Str("component", "clipboard_relay").Logger(),
	}
}

// Start runs the relay until ctx is cancelled. Call in a goroutine.
func (w *ClipboardRelay) Start(ctx context.Context) {
	w.log.Info().Str("channel", w.channel).Msg("Worker started")

	for {
		if err := w.subscribe(ctx); err != nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("Subscription lost, retrying in 5s")
			select {
			case <-ctx.Done():
			case <-time.After(5 * time.Second):
				continue
			}
		}
		if ctx.Err() != nil {
			w.log.Info().Msg("Worker stopped")
			return
		}
	}
}

func (w *ClipboardRelay) subscribe(ctx context.Context) error {
	sub := w.rdb.Subscribe(ctx, w.channel)
	defer sub.Close()

	// Receive confirms the subscription before messages are read.
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	return w.relay(ctx, sub.Channel())
}

// relay forwards messages until ctx ends or msgs is closed.
func (w *ClipboardRelay) relay(ctx context.Context, msgs <-chan *redis.Message) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errSubscriptionClosed
			}
			w.log.Debug().Int("bytes", len(msg.Payload)).Msg("Clipboard updated")
			w.sink.ClipboardUpdated(msg.Payload)
		}
	}
}
