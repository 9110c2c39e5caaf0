package domain

import "context"

type NotificationKind string

const (
	NotificationNewSale       NotificationKind = "new_sale"
	NotificationPaymentReport NotificationKind = "payment_report"
)

type Notification struct {
	Kind       NotificationKind
	UserID     string
	Recipient  string
	Message    string
	Credential string
}

// Messenger delivers a rendered message. Delivery, retries and the provider
// protocol belong to the implementation.
type Messenger interface {
	SendNotification(ctx context.Context, n Notification) error
}
