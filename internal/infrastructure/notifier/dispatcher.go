package notifier

import (
	"context"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
)

// Dispatcher fills in the fallback credential and skips notifications that
// have no recipient or no credential before handing them to a driver.
type Dispatcher struct {
	driver        domain.Messenger
	fallbackToken string
}

func NewDispatcher(driver domain.Messenger, fallbackToken string) *Dispatcher {
	return &Dispatcher{driver: driver, fallbackToken: fallbackToken}
}

func (d *Dispatcher) SendNotification(ctx context.Context, n domain.Notification) error {
	if n.Recipient == "" {
		return domain.ErrNotificationSkipped
	}
	if n.Credential == "" {
		n.Credential = d.fallbackToken
	}
	if n.Credential == "" {
		return domain.ErrNotificationSkipped
	}
	return d.driver.SendNotification(ctx, n)
}
