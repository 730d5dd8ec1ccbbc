package app

import (
	"context"

	"github.com/polesk/storebot/internal/adapter/chat"
	"github.com/polesk/storebot/internal/domain/model"
	"github.com/polesk/storebot/internal/usecase"
)

// StoreFacade aggregates the core order operations behind one surface.
// Both front ends go through it: the text-command router fed by the event
// pump, and the button-interaction webhook.
type StoreFacade struct {
	settings  *usecase.SettingsUseCase
	lifecycle *usecase.LifecycleUseCase
	status    *usecase.StatusUseCase
	platform  chat.Platform
}

// NewStoreFacade constructs StoreFacade.
func NewStoreFacade(settings *usecase.SettingsUseCase, lifecycle *usecase.LifecycleUseCase, status *usecase.StatusUseCase, platform chat.Platform) *StoreFacade {
	return &StoreFacade{settings: settings, lifecycle: lifecycle, status: status, platform: platform}
}

// Submit creates a new order.
func (f *StoreFacade) Submit(ctx context.Context, requester, channelID, descriptionOrKey string) (*model.OrderHandle, error) {
	return f.lifecycle.Submit(ctx, requester, channelID, descriptionOrKey)
}

// UpdateStatus transitions an order's status on behalf of actor.
func (f *StoreFacade) UpdateStatus(ctx context.Context, actor string, orderID int64, codeOrName string) (*model.UpdateResult, error) {
	return f.status.UpdateStatus(ctx, actor, orderID, codeOrName)
}

// SetInputChannel designates the order submission channel.
func (f *StoreFacade) SetInputChannel(channelID string) {
	f.settings.SetInputChannel(channelID)
}

// SetStoreChannel designates the order log channel.
func (f *StoreFacade) SetStoreChannel(channelID string) {
	f.settings.SetStoreChannel(channelID)
}

// AddAdmin grants status-update rights to the first mentioned user.
func (f *StoreFacade) AddAdmin(mentions []string) (string, error) {
	return f.settings.AddAdmin(mentions)
}

// InputChannel returns the designated input channel, empty when unset.
func (f *StoreFacade) InputChannel() string {
	return f.settings.InputChannel()
}

// PostPresetMenu sends the preset selector widget to a channel.
func (f *StoreFacade) PostPresetMenu(ctx context.Context, channelID string) error {
	return f.lifecycle.PostPresetMenu(ctx, channelID)
}

// IsPlatformAdmin reports whether a user holds the platform administrator
// permission in a channel.
func (f *StoreFacade) IsPlatformAdmin(ctx context.Context, channelID, userID string) (bool, error) {
	return f.platform.HasAdministrator(ctx, channelID, userID)
}
