package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/polesk/storebot/internal/adapter/chat"
	domainErrors "github.com/polesk/storebot/internal/domain/errors"
	"github.com/polesk/storebot/internal/domain/model"
)

// Facade describes the core operations the router dispatches to.
type Facade interface {
	Submit(ctx context.Context, requester, channelID, descriptionOrKey string) (*model.OrderHandle, error)
	UpdateStatus(ctx context.Context, actor string, orderID int64, codeOrName string) (*model.UpdateResult, error)
	SetInputChannel(channelID string)
	SetStoreChannel(channelID string)
	AddAdmin(mentions []string) (string, error)
	InputChannel() string
	PostPresetMenu(ctx context.Context, channelID string) error
	IsPlatformAdmin(ctx context.Context, channelID, userID string) (bool, error)
}

// Reply is the router's answer to the acting user. An empty Text means no
// reply is owed. Ephemeral replies should only be visible to the actor on
// surfaces that support it.
type Reply struct {
	Text      string
	Ephemeral bool
}

const (
	cmdHelp        = "!help"
	cmdSetInput    = "!setinput"
	cmdSetStore    = "!setstore"
	cmdAddAdmin    = "!addadmin"
	cmdPostButtons = "!postbuttons"
	cmdStatus      = "!status"
)

const helpText = "Commands:\n" +
	"`!setinput` - set the order input channel\n" +
	"`!setstore` - set the order log channel\n" +
	"`!addadmin @user` - allow a user to update orders\n" +
	"`!postbuttons` - post the preset order menu\n" +
	"`!status <id> <processing|done|cancel>` - update an order"

// Router classifies inbound events and dispatches them to the facade. All
// taxonomy failures are recovered here and turned into a reply to the
// acting user; nothing that happens in a handler is fatal to the process.
type Router struct {
	facade Facade
	logger *slog.Logger
}

// NewRouter constructs Router.
func NewRouter(facade Facade, logger *slog.Logger) *Router {
	return &Router{facade: facade, logger: logger}
}

// HandleEvent dispatches one inbound event and returns the reply owed to
// the acting user. Bot-authored events are ignored.
func (r *Router) HandleEvent(ctx context.Context, event chat.Event) Reply {
	if event.Bot {
		return Reply{}
	}

	switch event.Type {
	case chat.EventTypeMessage:
		return r.handleMessage(ctx, event)
	case chat.EventTypeButton:
		return r.handleButton(ctx, event)
	default:
		return Reply{}
	}
}

func (r *Router) handleMessage(ctx context.Context, event chat.Event) Reply {
	content := strings.TrimSpace(event.Text)

	switch {
	case content == cmdHelp:
		return Reply{Text: helpText}

	case content == cmdSetInput:
		return r.requireAdministrator(ctx, event, func() Reply {
			r.facade.SetInputChannel(event.ChannelID)
			return Reply{Text: "Order input channel set."}
		})

	case content == cmdSetStore:
		return r.requireAdministrator(ctx, event, func() Reply {
			r.facade.SetStoreChannel(event.ChannelID)
			return Reply{Text: "Order log channel set."}
		})

	case strings.HasPrefix(content, cmdAddAdmin):
		return r.requireAdministrator(ctx, event, func() Reply {
			userID, err := r.facade.AddAdmin(event.Mentions)
			if err != nil {
				return r.errorReply(err, 0)
			}
			return Reply{Text: fmt.Sprintf("<@%s> can now update orders.", userID)}
		})

	case content == cmdPostButtons:
		if r.facade.InputChannel() == "" {
			return Reply{Text: "Set the input channel first."}
		}
		if err := r.facade.PostPresetMenu(ctx, event.ChannelID); err != nil {
			return r.errorReply(err, 0)
		}
		return Reply{}

	case strings.HasPrefix(content, cmdStatus):
		return r.handleStatusCommand(ctx, event, content)

	case event.ChannelID == r.facade.InputChannel() && content != "":
		if _, err := r.facade.Submit(ctx, event.UserID, event.ChannelID, content); err != nil {
			return r.errorReply(err, 0)
		}
		// Submit already acknowledged the requester.
		return Reply{}
	}

	return Reply{}
}

func (r *Router) handleStatusCommand(ctx context.Context, event chat.Event, content string) Reply {
	fields := strings.Fields(content)
	if len(fields) != 3 {
		return Reply{Text: "Usage: `!status <id> <processing|done|cancel>`"}
	}

	orderID, err := strconv.ParseInt(strings.TrimPrefix(fields[1], "#"), 10, 64)
	if err != nil {
		return Reply{Text: "Usage: `!status <id> <processing|done|cancel>`"}
	}

	result, err := r.facade.UpdateStatus(ctx, event.UserID, orderID, fields[2])
	if err != nil {
		return r.errorReply(err, orderID)
	}
	return Reply{Text: fmt.Sprintf("Order #%d updated to **%s**", result.OrderID, result.Status), Ephemeral: true}
}

func (r *Router) handleButton(ctx context.Context, event chat.Event) Reply {
	code, rest, isStatus := strings.Cut(event.Code, "_")
	if !isStatus {
		// Bare preset key: order submission.
		if _, err := r.facade.Submit(ctx, event.UserID, event.ChannelID, event.Code); err != nil {
			return r.errorReply(err, 0)
		}
		return Reply{}
	}

	orderID, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		r.logger.Warn("malformed button code", slog.String("code", event.Code))
		return Reply{}
	}

	result, err := r.facade.UpdateStatus(ctx, event.UserID, orderID, code)
	if err != nil {
		return r.errorReply(err, orderID)
	}
	return Reply{Text: fmt.Sprintf("Order #%d updated to **%s**", result.OrderID, result.Status), Ephemeral: true}
}

func (r *Router) requireAdministrator(ctx context.Context, event chat.Event, action func() Reply) Reply {
	ok, err := r.facade.IsPlatformAdmin(ctx, event.ChannelID, event.UserID)
	if err != nil {
		return r.errorReply(fmt.Errorf("%w: permission lookup: %v", domainErrors.ErrPlatformUnavailable, err), 0)
	}
	if !ok {
		return Reply{Text: "Only an administrator can do this.", Ephemeral: true}
	}
	return action()
}

func (r *Router) errorReply(err error, orderID int64) Reply {
	switch {
	case errors.Is(err, domainErrors.ErrNotConfigured):
		return Reply{Text: "Order system is not set up yet."}
	case errors.Is(err, domainErrors.ErrUnauthorized):
		return Reply{Text: "Only admins can update orders.", Ephemeral: true}
	case errors.Is(err, domainErrors.ErrUnknownStatus):
		return Reply{Text: "Unknown status. Use processing, done or cancel."}
	case errors.Is(err, domainErrors.ErrOrderNotFound):
		return Reply{Text: fmt.Sprintf("Order #%d was not found in recent history.", orderID), Ephemeral: true}
	case errors.Is(err, domainErrors.ErrMentionMissing):
		return Reply{Text: "Mention a user to add."}
	default:
		r.logger.Error("event handling failed", slog.String("error", err.Error()))
		return Reply{Text: "The chat platform is unavailable right now, try again.", Ephemeral: true}
	}
}
