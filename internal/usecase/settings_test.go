package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/polesk/storebot/internal/domain/errors"
	"github.com/polesk/storebot/internal/domain/model"
)

func TestSettingsUseCaseChannels(t *testing.T) {
	settings := model.NewSettings()
	uc := NewSettingsUseCase(settings)

	uc.SetInputChannel("input")
	uc.SetStoreChannel("store")

	if uc.InputChannel() != "input" {
		t.Fatalf("unexpected input channel %q", uc.InputChannel())
	}
	if settings.StoreChannel() != "store" {
		t.Fatalf("unexpected store channel %q", settings.StoreChannel())
	}
}

func TestSettingsUseCaseAddAdmin(t *testing.T) {
	settings := model.NewSettings()
	uc := NewSettingsUseCase(settings)

	if _, err := uc.AddAdmin(nil); !errors.Is(err, domainErrors.ErrMentionMissing) {
		t.Fatalf("expected ErrMentionMissing, got %v", err)
	}

	userID, err := uc.AddAdmin([]string{"u5", "u6"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "u5" {
		t.Fatalf("expected first mention, got %q", userID)
	}
	if !settings.IsAdmin("u5") {
		t.Fatal("expected u5 to be admin")
	}
	if settings.IsAdmin("u6") {
		t.Fatal("only the first mention is added")
	}
}
