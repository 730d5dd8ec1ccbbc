package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polesk/storebot/internal/adapter/chat"
	domainErrors "github.com/polesk/storebot/internal/domain/errors"
	"github.com/polesk/storebot/internal/domain/model"
)

// LifecycleUseCase creates orders: it mints identifiers, renders the
// canonical record into the store channel, and acknowledges the requester.
type LifecycleUseCase struct {
	settings *model.Settings
	catalog  *model.Catalog
	index    *model.OrderIndex
	platform chat.Platform
	logger   *slog.Logger
}

// NewLifecycleUseCase constructs LifecycleUseCase.
func NewLifecycleUseCase(settings *model.Settings, catalog *model.Catalog, index *model.OrderIndex, platform chat.Platform, logger *slog.Logger) *LifecycleUseCase {
	return &LifecycleUseCase{
		settings: settings,
		catalog:  catalog,
		index:    index,
		platform: platform,
		logger:   logger,
	}
}

// Submit creates a new order for requester. descriptionOrKey is either a
// preset catalog key or free-form order text; channelID is where the
// acknowledgment reply goes. The store channel must be configured before
// any side effect happens, including the counter step.
func (u *LifecycleUseCase) Submit(ctx context.Context, requester, channelID, descriptionOrKey string) (*model.OrderHandle, error) {
	storeChannel := u.settings.StoreChannel()
	if storeChannel == "" {
		return nil, domainErrors.ErrNotConfigured
	}

	id := u.settings.NextOrderID()
	description := u.catalog.Resolve(descriptionOrKey)

	// Advisory only: the ack is never read back or edited.
	if _, err := u.platform.SendMessage(ctx, channelID, model.RenderAck(id, description)); err != nil {
		return nil, fmt.Errorf("%w: send acknowledgment: %v", domainErrors.ErrPlatformUnavailable, err)
	}

	record, err := u.platform.SendButtons(ctx, storeChannel, model.RenderRecord(id, requester, description), statusButtons(id))
	if err != nil {
		return nil, fmt.Errorf("%w: send order record: %v", domainErrors.ErrPlatformUnavailable, err)
	}

	if err := u.platform.PinMessage(ctx, storeChannel, record.ID); err != nil {
		u.logger.Warn("pin order record failed",
			slog.Int64("order", id),
			slog.String("error", err.Error()),
		)
	}

	u.index.Record(id, record.ID)

	return &model.OrderHandle{
		ID:          id,
		Requester:   requester,
		Description: description,
		MessageID:   record.ID,
	}, nil
}

// PostPresetMenu sends the preset selector widget to a channel.
func (u *LifecycleUseCase) PostPresetMenu(ctx context.Context, channelID string) error {
	presets := u.catalog.Presets()
	buttons := make([]chat.Button, 0, len(presets))
	for _, p := range presets {
		style := chat.ButtonStylePrimary
		if p.Key == "custom" {
			style = chat.ButtonStyleSecondary
		}
		buttons = append(buttons, chat.Button{Code: p.Key, Label: p.Label, Style: style})
	}

	if _, err := u.platform.SendButtons(ctx, channelID, "Select your pack:", buttons); err != nil {
		return fmt.Errorf("%w: post preset menu: %v", domainErrors.ErrPlatformUnavailable, err)
	}
	return nil
}

func statusButtons(orderID int64) []chat.Button {
	return []chat.Button{
		{Code: fmt.Sprintf("p_%d", orderID), Label: "Processing", Style: chat.ButtonStylePrimary},
		{Code: fmt.Sprintf("d_%d", orderID), Label: "Done", Style: chat.ButtonStyleSuccess},
		{Code: fmt.Sprintf("c_%d", orderID), Label: "Cancel", Style: chat.ButtonStyleDanger},
	}
}
