package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polesk/storebot/internal/adapter/chat"
	"github.com/polesk/storebot/internal/bot"
)

// EventHandler dispatches one inbound event and returns the reply owed to
// the acting user.
type EventHandler interface {
	HandleEvent(ctx context.Context, event chat.Event) bot.Reply
}

// EventSource is the subset of the chat platform the pump reads from and
// replies through.
type EventSource interface {
	PollEvents(ctx context.Context, cursor string, timeout time.Duration) (*chat.EventPage, error)
	SendMessage(ctx context.Context, channelID, text string) (*chat.Message, error)
}

const pollErrorBackoff = time.Second

// EventPump long-polls the platform event feed and hands each event to the
// handler, one at a time. Events are dispatched sequentially on a single
// goroutine, so one handler's suspension never interleaves with another's
// on this path.
type EventPump struct {
	source      EventSource
	handler     EventHandler
	pollTimeout time.Duration
	logger      *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewEventPump constructs the event pump.
func NewEventPump(source EventSource, handler EventHandler, pollTimeout time.Duration, logger *slog.Logger) *EventPump {
	if pollTimeout <= 0 {
		pollTimeout = 30 * time.Second
	}
	return &EventPump{
		source:      source,
		handler:     handler,
		pollTimeout: pollTimeout,
		logger:      logger,
	}
}

// Start launches the poll loop.
func (p *EventPump) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.run(runCtx)
}

// Stop terminates the poll loop and waits for the in-flight handler to
// finish. Once a handler begins it runs to completion or failure.
func (p *EventPump) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *EventPump) run(ctx context.Context) {
	defer p.wg.Done()

	var cursor string
	for {
		page, err := p.source.PollEvents(ctx, cursor, p.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if !errors.Is(err, context.DeadlineExceeded) {
				p.logger.Error("event poll failed", slog.String("error", err.Error()))
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(pollErrorBackoff):
			}
			continue
		}

		cursor = page.Cursor
		for _, event := range page.Events {
			if ctx.Err() != nil {
				return
			}
			p.dispatch(ctx, event)
		}
	}
}

func (p *EventPump) dispatch(ctx context.Context, event chat.Event) {
	reply := p.handler.HandleEvent(ctx, event)
	if reply.Text == "" {
		return
	}
	if _, err := p.source.SendMessage(ctx, event.ChannelID, reply.Text); err != nil {
		p.logger.Error("send reply failed",
			slog.String("channel", event.ChannelID),
			slog.String("error", err.Error()),
		)
	}
}
