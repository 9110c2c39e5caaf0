package notifier

import (
	"context"
	"log/slog"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

// LogMessenger only records the intent. Used where no gateway is configured.
type LogMessenger struct{}

func NewLogMessenger() *LogMessenger {
	return &LogMessenger{}
}

func (LogMessenger) SendNotification(ctx context.Context, n domain.Notification) error {
	slog.InfoContext(ctx, "notification intent",
		"kind", n.Kind,
		"user_id", n.UserID,
		"recipient", n.Recipient,
		"message_length", len(n.Message),
	)
	return nil
}
