package notification

import "context"

// Service defines the notification service interface. Delivery is
// best-effort from the caller's perspective: a failed notification never
// fails the operation that produced it.
type Service interface {
	// Queue enqueues one notification for async persistence and SSE push.
	Queue(ctx context.Context, req CreateNotificationRequest) error

	// NotifyAdmins fans one message out to every admin and owner in the
	// company.
	NotifyAdmins(ctx context.Context, companyID string, notifType NotificationType, title, message string, data map[string]interface{}) error

	// List retrieves paginated notifications for a recipient.
	List(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)

	// MarkRead marks the given notifications read for a recipient; an empty
	// id set marks everything read.
	MarkRead(ctx context.Context, recipientID string, ids []string) error

	// Stop flushes queued notifications and stops the background workers.
	Stop()
}
