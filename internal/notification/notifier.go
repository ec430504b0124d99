// Package notification delivers short out-of-band alerts to patients.
package notification

import "context"

// Notifier is the outbound alert surface. Delivery is best effort: a failed
// or skipped notification is logged by the caller, never propagated.
type Notifier interface {
	// Notify sends a short alert to a phone number. The key identifies the
	// triggering event so providers can suppress duplicates.
	Notify(ctx context.Context, key, phone, title, body string) error
}

// NoopNotifier silently drops every notification. Used when no SMS provider
// is configured, which stands in for the user never granting notification
// permission.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (n *NoopNotifier) Notify(ctx context.Context, key, phone, title, body string) error {
	return nil
}
