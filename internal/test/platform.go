package test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/polesk/storebot/internal/adapter/chat"
)

// PlatformStub is an in-memory chat.Platform for tests: channels hold
// ordered message lists, pins and button rows are recorded, and the event
// feed is driven through the Queue channel.
type PlatformStub struct {
	mu sync.Mutex

	Identity  chat.Identity
	WhoAmIErr error

	Admins map[string]bool

	SendErr  error
	EditErr  error
	PinErr   error
	FetchErr error

	Queue chan chat.EventPage

	channels map[string][]chat.Message
	buttons  map[string][]chat.Button
	pins     []string
	nextID   int
}

// NewPlatformStub constructs an empty platform stub.
func NewPlatformStub() *PlatformStub {
	return &PlatformStub{
		Identity: chat.Identity{ID: "bot", Name: "storebot"},
		Admins:   make(map[string]bool),
		Queue:    make(chan chat.EventPage, 16),
		channels: make(map[string][]chat.Message),
		buttons:  make(map[string][]chat.Button),
	}
}

func (s *PlatformStub) WhoAmI(context.Context) (*chat.Identity, error) {
	if s.WhoAmIErr != nil {
		return nil, s.WhoAmIErr
	}
	identity := s.Identity
	return &identity, nil
}

func (s *PlatformStub) SendMessage(_ context.Context, channelID, text string) (*chat.Message, error) {
	return s.append(channelID, text, nil)
}

func (s *PlatformStub) SendButtons(_ context.Context, channelID, text string, buttons []chat.Button) (*chat.Message, error) {
	return s.append(channelID, text, buttons)
}

func (s *PlatformStub) append(channelID, text string, buttons []chat.Button) (*chat.Message, error) {
	if s.SendErr != nil {
		return nil, s.SendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	message := chat.Message{
		ID:        fmt.Sprintf("m%d", s.nextID),
		ChannelID: channelID,
		Author:    s.Identity.ID,
		Content:   text,
	}
	s.channels[channelID] = append(s.channels[channelID], message)
	if buttons != nil {
		s.buttons[message.ID] = buttons
	}
	return &message, nil
}

func (s *PlatformStub) EditMessage(_ context.Context, channelID, messageID, text string) error {
	if s.EditErr != nil {
		return s.EditErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	messages := s.channels[channelID]
	for i := range messages {
		if messages[i].ID == messageID {
			messages[i].Content = text
			return nil
		}
	}
	return &chat.PlatformError{StatusCode: http.StatusNotFound, Code: "message_not_found"}
}

func (s *PlatformStub) PinMessage(_ context.Context, _, messageID string) error {
	if s.PinErr != nil {
		return s.PinErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pins = append(s.pins, messageID)
	return nil
}

func (s *PlatformStub) RecentMessages(_ context.Context, channelID string, limit int) ([]chat.Message, error) {
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	messages := s.channels[channelID]
	if len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	recent := make([]chat.Message, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		recent = append(recent, messages[i])
	}
	return recent, nil
}

func (s *PlatformStub) HasAdministrator(_ context.Context, _, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Admins[userID], nil
}

func (s *PlatformStub) PollEvents(ctx context.Context, _ string, _ time.Duration) (*chat.EventPage, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case page := <-s.Queue:
		return &page, nil
	}
}

// Messages returns the channel's messages in send order.
func (s *PlatformStub) Messages(channelID string) []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chat.Message(nil), s.channels[channelID]...)
}

// Buttons returns the button row attached to a message.
func (s *PlatformStub) Buttons(messageID string) []chat.Button {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chat.Button(nil), s.buttons[messageID]...)
}

// Pinned reports whether a message was pinned.
func (s *PlatformStub) Pinned(messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.pins {
		if id == messageID {
			return true
		}
	}
	return false
}

// Seed places a raw message into a channel, bypassing the send path.
func (s *PlatformStub) Seed(channelID, content string) chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	message := chat.Message{
		ID:        fmt.Sprintf("m%d", s.nextID),
		ChannelID: channelID,
		Author:    "seed",
		Content:   content,
	}
	s.channels[channelID] = append(s.channels[channelID], message)
	return message
}
