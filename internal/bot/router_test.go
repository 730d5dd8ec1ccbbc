package bot

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/polesk/storebot/internal/adapter/chat"
	domainErrors "github.com/polesk/storebot/internal/domain/errors"
	"github.com/polesk/storebot/internal/domain/model"
)

type facadeStub struct {
	inputChannel string
	platformAdm  map[string]bool

	submitted    []string
	submitErr    error
	updates      []string
	updateResult *model.UpdateResult
	updateErr    error
	addedAdmins  []string
	setInput     []string
	setStore     []string
	menuPosted   []string
	menuErr      error
}

func (s *facadeStub) Submit(_ context.Context, requester, channelID, descriptionOrKey string) (*model.OrderHandle, error) {
	s.submitted = append(s.submitted, requester+"|"+channelID+"|"+descriptionOrKey)
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return &model.OrderHandle{ID: 1, Requester: requester, Description: descriptionOrKey}, nil
}

func (s *facadeStub) UpdateStatus(_ context.Context, actor string, orderID int64, codeOrName string) (*model.UpdateResult, error) {
	s.updates = append(s.updates, actor+"|"+codeOrName)
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if s.updateResult != nil {
		return s.updateResult, nil
	}
	return &model.UpdateResult{OrderID: orderID, Status: model.OrderStatusCompleted}, nil
}

func (s *facadeStub) SetInputChannel(channelID string) { s.setInput = append(s.setInput, channelID) }
func (s *facadeStub) SetStoreChannel(channelID string) { s.setStore = append(s.setStore, channelID) }

func (s *facadeStub) AddAdmin(mentions []string) (string, error) {
	if len(mentions) == 0 {
		return "", domainErrors.ErrMentionMissing
	}
	s.addedAdmins = append(s.addedAdmins, mentions[0])
	return mentions[0], nil
}

func (s *facadeStub) InputChannel() string { return s.inputChannel }

func (s *facadeStub) PostPresetMenu(_ context.Context, channelID string) error {
	s.menuPosted = append(s.menuPosted, channelID)
	return s.menuErr
}

func (s *facadeStub) IsPlatformAdmin(_ context.Context, _, userID string) (bool, error) {
	return s.platformAdm[userID], nil
}

func newTestRouter(stub *facadeStub) *Router {
	return NewRouter(stub, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func messageEvent(channelID, userID, text string) chat.Event {
	return chat.Event{Type: chat.EventTypeMessage, ChannelID: channelID, UserID: userID, Text: text}
}

func TestRouterIgnoresBotEvents(t *testing.T) {
	stub := &facadeStub{inputChannel: "input"}
	router := newTestRouter(stub)

	event := messageEvent("input", "bot", "order please")
	event.Bot = true

	if reply := router.HandleEvent(context.Background(), event); reply.Text != "" {
		t.Fatalf("expected no reply, got %q", reply.Text)
	}
	if len(stub.submitted) != 0 {
		t.Fatal("bot events must not create orders")
	}
}

func TestRouterHelp(t *testing.T) {
	router := newTestRouter(&facadeStub{})

	reply := router.HandleEvent(context.Background(), messageEvent("any", "u1", "!help"))
	if !strings.Contains(reply.Text, "!setinput") || !strings.Contains(reply.Text, "!status") {
		t.Fatalf("unexpected help text %q", reply.Text)
	}
}

func TestRouterSetChannelsRequireAdministrator(t *testing.T) {
	stub := &facadeStub{platformAdm: map[string]bool{"boss": true}}
	router := newTestRouter(stub)

	reply := router.HandleEvent(context.Background(), messageEvent("chan-a", "pleb", "!setinput"))
	if len(stub.setInput) != 0 {
		t.Fatal("non-administrator must not set channels")
	}
	if !reply.Ephemeral || !strings.Contains(reply.Text, "administrator") {
		t.Fatalf("unexpected reply %+v", reply)
	}

	reply = router.HandleEvent(context.Background(), messageEvent("chan-a", "boss", "!setinput"))
	if len(stub.setInput) != 1 || stub.setInput[0] != "chan-a" {
		t.Fatalf("expected input channel chan-a, got %v", stub.setInput)
	}
	if reply.Text == "" {
		t.Fatal("expected confirmation reply")
	}

	router.HandleEvent(context.Background(), messageEvent("chan-b", "boss", "!setstore"))
	if len(stub.setStore) != 1 || stub.setStore[0] != "chan-b" {
		t.Fatalf("expected store channel chan-b, got %v", stub.setStore)
	}
}

func TestRouterAddAdmin(t *testing.T) {
	stub := &facadeStub{platformAdm: map[string]bool{"boss": true}}
	router := newTestRouter(stub)

	event := messageEvent("chan", "boss", "!addadmin")
	reply := router.HandleEvent(context.Background(), event)
	if !strings.Contains(reply.Text, "Mention") {
		t.Fatalf("expected mention-missing reply, got %q", reply.Text)
	}

	event.Mentions = []string{"u7"}
	reply = router.HandleEvent(context.Background(), event)
	if len(stub.addedAdmins) != 1 || stub.addedAdmins[0] != "u7" {
		t.Fatalf("expected u7 added, got %v", stub.addedAdmins)
	}
	if !strings.Contains(reply.Text, "u7") {
		t.Fatalf("unexpected reply %q", reply.Text)
	}
}

func TestRouterPostButtonsRequiresInputChannel(t *testing.T) {
	stub := &facadeStub{}
	router := newTestRouter(stub)

	reply := router.HandleEvent(context.Background(), messageEvent("chan", "u1", "!postbuttons"))
	if len(stub.menuPosted) != 0 {
		t.Fatal("menu must not be posted before input channel is set")
	}
	if !strings.Contains(reply.Text, "input channel") {
		t.Fatalf("unexpected reply %q", reply.Text)
	}

	stub.inputChannel = "input"
	router.HandleEvent(context.Background(), messageEvent("chan", "u1", "!postbuttons"))
	if len(stub.menuPosted) != 1 || stub.menuPosted[0] != "chan" {
		t.Fatalf("expected menu in chan, got %v", stub.menuPosted)
	}
}

func TestRouterStatusCommand(t *testing.T) {
	stub := &facadeStub{}
	router := newTestRouter(stub)

	reply := router.HandleEvent(context.Background(), messageEvent("chan", "admin", "!status nonsense"))
	if !strings.Contains(reply.Text, "Usage") {
		t.Fatalf("expected usage reply, got %q", reply.Text)
	}

	reply = router.HandleEvent(context.Background(), messageEvent("chan", "admin", "!status 12 done"))
	if len(stub.updates) != 1 || stub.updates[0] != "admin|done" {
		t.Fatalf("unexpected updates %v", stub.updates)
	}
	if !strings.Contains(reply.Text, "Order #12") || !strings.Contains(reply.Text, "Completed") {
		t.Fatalf("unexpected reply %q", reply.Text)
	}
}

func TestRouterStatusCommandErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", domainErrors.ErrUnauthorized, "admins"},
		{"unknown status", domainErrors.ErrUnknownStatus, "Unknown status"},
		{"not found", domainErrors.ErrOrderNotFound, "not found"},
		{"platform down", domainErrors.ErrPlatformUnavailable, "unavailable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &facadeStub{updateErr: tc.err}
			router := newTestRouter(stub)

			reply := router.HandleEvent(context.Background(), messageEvent("chan", "u1", "!status 3 done"))
			if !strings.Contains(reply.Text, tc.want) {
				t.Fatalf("expected %q in reply, got %q", tc.want, reply.Text)
			}
		})
	}
}

func TestRouterInputChannelMessageCreatesOrder(t *testing.T) {
	stub := &facadeStub{inputChannel: "input"}
	router := newTestRouter(stub)

	reply := router.HandleEvent(context.Background(), messageEvent("input", "u1", "I want 500 diamonds"))
	if len(stub.submitted) != 1 || stub.submitted[0] != "u1|input|I want 500 diamonds" {
		t.Fatalf("unexpected submissions %v", stub.submitted)
	}
	if reply.Text != "" {
		t.Fatalf("submit acks through the platform, reply must be empty, got %q", reply.Text)
	}

	router.HandleEvent(context.Background(), messageEvent("other", "u1", "I want 500 diamonds"))
	if len(stub.submitted) != 1 {
		t.Fatal("messages outside the input channel must not create orders")
	}
}

func TestRouterInputChannelNotConfigured(t *testing.T) {
	stub := &facadeStub{inputChannel: "input", submitErr: domainErrors.ErrNotConfigured}
	router := newTestRouter(stub)

	reply := router.HandleEvent(context.Background(), messageEvent("input", "u1", "order"))
	if !strings.Contains(reply.Text, "not set up") {
		t.Fatalf("unexpected reply %q", reply.Text)
	}
}

func TestRouterPresetButton(t *testing.T) {
	stub := &facadeStub{}
	router := newTestRouter(stub)

	event := chat.Event{Type: chat.EventTypeButton, ChannelID: "input", UserID: "u1", Code: "210"}
	reply := router.HandleEvent(context.Background(), event)
	if len(stub.submitted) != 1 || stub.submitted[0] != "u1|input|210" {
		t.Fatalf("unexpected submissions %v", stub.submitted)
	}
	if reply.Text != "" {
		t.Fatalf("expected empty reply, got %q", reply.Text)
	}
}

func TestRouterStatusButton(t *testing.T) {
	stub := &facadeStub{updateResult: &model.UpdateResult{OrderID: 4, Status: model.OrderStatusProcessing}}
	router := newTestRouter(stub)

	event := chat.Event{Type: chat.EventTypeButton, ChannelID: "store", UserID: "admin", Code: "p_4"}
	reply := router.HandleEvent(context.Background(), event)
	if len(stub.updates) != 1 || stub.updates[0] != "admin|p" {
		t.Fatalf("unexpected updates %v", stub.updates)
	}
	if !reply.Ephemeral || !strings.Contains(reply.Text, "Order #4") || !strings.Contains(reply.Text, "Processing") {
		t.Fatalf("unexpected reply %+v", reply)
	}
}

func TestRouterMalformedButtonCode(t *testing.T) {
	stub := &facadeStub{}
	router := newTestRouter(stub)

	event := chat.Event{Type: chat.EventTypeButton, ChannelID: "store", UserID: "admin", Code: "p_oops"}
	reply := router.HandleEvent(context.Background(), event)
	if reply.Text != "" {
		t.Fatalf("expected no reply for malformed code, got %q", reply.Text)
	}
	if len(stub.updates) != 0 {
		t.Fatal("malformed codes must not reach the facade")
	}
}

func TestRouterUnauthorizedButtonIsEphemeral(t *testing.T) {
	stub := &facadeStub{updateErr: domainErrors.ErrUnauthorized}
	router := newTestRouter(stub)

	event := chat.Event{Type: chat.EventTypeButton, ChannelID: "store", UserID: "pleb", Code: "d_2"}
	reply := router.HandleEvent(context.Background(), event)
	if !reply.Ephemeral {
		t.Fatal("unauthorized reply must be ephemeral")
	}
}
