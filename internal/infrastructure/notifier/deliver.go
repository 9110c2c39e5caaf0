package notifier

import (
	"context"
	"errors"
	"log/slog"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/metrics"
)

// Deliver sends n and swallows the outcome: skips are logged at debug,
// failures at warn and counted. attrs are extra log key/value pairs.
func Deliver(ctx context.Context, messenger domain.Messenger, m *metrics.CommissionMetrics, n domain.Notification, attrs ...any) {
	if messenger == nil {
		return
	}
	err := messenger.SendNotification(ctx, n)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotificationSkipped):
		slog.Debug("notification skipped", append(attrs, "kind", n.Kind, "user_id", n.UserID)...)
	default:
		slog.Warn("notification failed", append(attrs, "kind", n.Kind, "user_id", n.UserID, "error", err)...)
		if m != nil {
			m.RecordNotificationFailure(string(n.Kind))
		}
	}
}
