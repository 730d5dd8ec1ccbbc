package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/polesk/storebot/internal/adapter/chat"
	"github.com/polesk/storebot/internal/bot"
	testhelpers "github.com/polesk/storebot/internal/test"
)

type handlerStub struct {
	mu      sync.Mutex
	events  []chat.Event
	replies map[string]bot.Reply
	done    chan struct{}
}

func newHandlerStub(expect int) *handlerStub {
	return &handlerStub{
		replies: make(map[string]bot.Reply),
		done:    make(chan struct{}, expect),
	}
}

func (h *handlerStub) HandleEvent(_ context.Context, event chat.Event) bot.Reply {
	h.mu.Lock()
	h.events = append(h.events, event)
	reply := h.replies[event.Text]
	h.mu.Unlock()
	h.done <- struct{}{}
	return reply
}

func (h *handlerStub) seen() []chat.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]chat.Event(nil), h.events...)
}

func waitFor(t *testing.T, ch chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestEventPumpDispatchesEventsInOrder(t *testing.T) {
	platform := testhelpers.NewPlatformStub()
	handler := newHandlerStub(3)

	pump := NewEventPump(platform, handler, time.Second, discardLogger())
	pump.Start(context.Background())
	defer pump.Stop()

	platform.Queue <- chat.EventPage{Cursor: "c1", Events: []chat.Event{
		{Type: chat.EventTypeMessage, ChannelID: "input", UserID: "u1", Text: "first"},
		{Type: chat.EventTypeMessage, ChannelID: "input", UserID: "u1", Text: "second"},
	}}
	platform.Queue <- chat.EventPage{Cursor: "c2", Events: []chat.Event{
		{Type: chat.EventTypeButton, ChannelID: "store", UserID: "u2", Code: "p_1", Text: "third"},
	}}

	waitFor(t, handler.done, 3)

	events := handler.seen()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i, want := range []string{"first", "second", "third"} {
		if events[i].Text != want {
			t.Errorf("event %d: expected %q, got %q", i, want, events[i].Text)
		}
	}
}

func TestEventPumpSendsNonEmptyReplies(t *testing.T) {
	platform := testhelpers.NewPlatformStub()
	handler := newHandlerStub(2)
	handler.replies["order please"] = bot.Reply{Text: "Order #1 placed."}

	pump := NewEventPump(platform, handler, time.Second, discardLogger())
	pump.Start(context.Background())
	defer pump.Stop()

	platform.Queue <- chat.EventPage{Events: []chat.Event{
		{Type: chat.EventTypeMessage, ChannelID: "input", UserID: "u1", Text: "order please"},
		{Type: chat.EventTypeMessage, ChannelID: "input", UserID: "u1", Text: "chatter"},
	}}

	waitFor(t, handler.done, 2)
	pump.Stop()

	messages := platform.Messages("input")
	if len(messages) != 1 {
		t.Fatalf("expected exactly one reply message, got %d", len(messages))
	}
	if messages[0].Content != "Order #1 placed." {
		t.Errorf("unexpected reply: %q", messages[0].Content)
	}
}

type failingSource struct {
	mu    sync.Mutex
	calls int
	errs  chan struct{}
}

func (f *failingSource) PollEvents(ctx context.Context, _ string, _ time.Duration) (*chat.EventPage, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	select {
	case f.errs <- struct{}{}:
	default:
	}
	return nil, errors.New("feed unavailable")
}

func (f *failingSource) SendMessage(context.Context, string, string) (*chat.Message, error) {
	return nil, nil
}

func TestEventPumpSurvivesPollFailures(t *testing.T) {
	source := &failingSource{errs: make(chan struct{}, 1)}
	pump := NewEventPump(source, newHandlerStub(0), time.Second, discardLogger())
	pump.Start(context.Background())

	select {
	case <-source.errs:
	case <-time.After(2 * time.Second):
		t.Fatal("poll loop never reached the source")
	}

	pump.Stop()

	source.mu.Lock()
	calls := source.calls
	source.mu.Unlock()
	if calls == 0 {
		t.Fatal("expected at least one poll attempt")
	}
}

func TestEventPumpStopIsIdempotent(t *testing.T) {
	platform := testhelpers.NewPlatformStub()
	pump := NewEventPump(platform, newHandlerStub(0), time.Second, discardLogger())
	pump.Start(context.Background())
	pump.Stop()
	pump.Stop()
}

func TestNewEventPumpDefaultsPollTimeout(t *testing.T) {
	pump := NewEventPump(testhelpers.NewPlatformStub(), newHandlerStub(0), 0, discardLogger())
	if pump.pollTimeout != 30*time.Second {
		t.Fatalf("expected default poll timeout, got %v", pump.pollTimeout)
	}
}
