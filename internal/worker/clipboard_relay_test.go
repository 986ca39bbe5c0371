package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type sinkFunc func(string)

func (f sinkFunc) ClipboardUpdated(text string) { f(text) }

func TestRelayForwardsPayloads(t *testing.T) {
	var got []string
	w := NewClipboardRelay(nil, "rollcall:clipboard", sinkFunc(func(s string) { got = append(got, s) }), zerolog.Nop())

	msgs := make(chan *redis.Message, 2)
	msgs <- &redis.Message{Channel: "rollcall:clipboard", Payload: "first"}
	msgs <- &redis.Message{Channel: "rollcall:clipboard", Payload: "second"}
	close(msgs)

	err := w.relay(context.Background(), msgs)
	if !errors.Is(err, errSubscriptionClosed) {
		t.Fatalf("expected errSubscriptionClosed when the channel closes, got %v", err)
	}
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("unexpected relayed payloads %v", got)
	}
}

func TestRelayStopsOnCancel(t *testing.T) {
	w := NewClipboardRelay(nil, "c", sinkFunc(func(string) { t.Fatal("unexpected payload") }), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := w.relay(ctx, make(chan *redis.Message)); err != nil {
		t.Fatalf("expected nil on cancel, got %v", err)
	}
}
