package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polesk/storebot/internal/adapter/chat"
	domainErrors "github.com/polesk/storebot/internal/domain/errors"
	"github.com/polesk/storebot/internal/domain/model"
)

// StatusUseCase locates an order's canonical record among recent store
// channel history and rewrites its status token in place.
type StatusUseCase struct {
	settings     *model.Settings
	index        *model.OrderIndex
	platform     chat.Platform
	historyLimit int
	logger       *slog.Logger
}

// NewStatusUseCase constructs StatusUseCase. historyLimit bounds the
// recent-history window scanned per update; records older than the window
// are unreachable.
func NewStatusUseCase(settings *model.Settings, index *model.OrderIndex, platform chat.Platform, historyLimit int, logger *slog.Logger) *StatusUseCase {
	if historyLimit <= 0 {
		historyLimit = 100
	}
	return &StatusUseCase{
		settings:     settings,
		index:        index,
		platform:     platform,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// UpdateStatus transitions an order to the status named by codeOrName on
// behalf of actor. Any status is reachable from any other; only the label
// itself is validated. The rewrite touches exactly the status token, every
// other byte of the record is preserved.
func (u *StatusUseCase) UpdateStatus(ctx context.Context, actor string, orderID int64, codeOrName string) (*model.UpdateResult, error) {
	if !u.settings.IsAdmin(actor) {
		return nil, domainErrors.ErrUnauthorized
	}

	status, ok := model.CanonicalStatus(codeOrName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domainErrors.ErrUnknownStatus, codeOrName)
	}

	storeChannel := u.settings.StoreChannel()
	if storeChannel == "" {
		return nil, domainErrors.ErrNotConfigured
	}

	window, err := u.platform.RecentMessages(ctx, storeChannel, u.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch history: %v", domainErrors.ErrPlatformUnavailable, err)
	}

	target := u.locate(window, orderID)
	if target == nil {
		return nil, fmt.Errorf("%w: order %d", domainErrors.ErrOrderNotFound, orderID)
	}

	updated, ok := model.RewriteStatus(target.Content, status)
	if !ok {
		// Record carries the marker but no status token; leave it untouched.
		u.logger.Warn("order record has no status token",
			slog.Int64("order", orderID),
			slog.String("message", target.ID),
		)
		return nil, fmt.Errorf("%w: order %d", domainErrors.ErrOrderNotFound, orderID)
	}

	if err := u.platform.EditMessage(ctx, storeChannel, target.ID, updated); err != nil {
		if chat.IsNotFound(err) {
			return nil, fmt.Errorf("%w: order %d", domainErrors.ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("%w: edit record: %v", domainErrors.ErrPlatformUnavailable, err)
	}

	return &model.UpdateResult{OrderID: orderID, Status: status}, nil
}

// locate picks the order's record out of the fetched window: first by the
// backing message id recorded at creation, then by the textual marker. The
// index never widens the window; an order whose record has scrolled out of
// the recent history stays unreachable.
func (u *StatusUseCase) locate(window []chat.Message, orderID int64) *chat.Message {
	if messageID, ok := u.index.MessageID(orderID); ok {
		for i := range window {
			if window[i].ID == messageID {
				return &window[i]
			}
		}
	}
	for i := range window {
		if model.ContainsOrderMarker(window[i].Content, orderID) {
			return &window[i]
		}
	}
	return nil
}
