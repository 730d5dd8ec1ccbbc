package usecase

import (
	domainErrors "github.com/polesk/storebot/internal/domain/errors"
	"github.com/polesk/storebot/internal/domain/model"
)

// SettingsUseCase mutates the process-wide bot configuration.
type SettingsUseCase struct {
	settings *model.Settings
}

// NewSettingsUseCase constructs SettingsUseCase.
func NewSettingsUseCase(settings *model.Settings) *SettingsUseCase {
	return &SettingsUseCase{settings: settings}
}

// SetInputChannel designates channelID as the order submission channel.
func (u *SettingsUseCase) SetInputChannel(channelID string) {
	u.settings.SetInputChannel(channelID)
}

// SetStoreChannel designates channelID as the order log channel.
func (u *SettingsUseCase) SetStoreChannel(channelID string) {
	u.settings.SetStoreChannel(channelID)
}

// AddAdmin grants status-update rights to the first mentioned user and
// returns its identity. Fails when no user was mentioned.
func (u *SettingsUseCase) AddAdmin(mentions []string) (string, error) {
	if len(mentions) == 0 {
		return "", domainErrors.ErrMentionMissing
	}
	u.settings.AddAdmin(mentions[0])
	return mentions[0], nil
}

// InputChannel returns the designated input channel, empty when unset.
func (u *SettingsUseCase) InputChannel() string {
	return u.settings.InputChannel()
}
