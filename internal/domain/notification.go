package domain

type NotificationType string

const (
	NotificationBookingRequested   NotificationType = "booking_requested"
	NotificationBookingApproved    NotificationType = "booking_approved"
	NotificationBookingRejected    NotificationType = "booking_rejected"
	NotificationExtensionRequested NotificationType = "extension_requested"
	NotificationExtensionApproved  NotificationType = "extension_approved"
	NotificationExtensionRejected  NotificationType = "extension_rejected"
	NotificationRentalCompleted    NotificationType = "rental_completed"
	NotificationEndDateReminder    NotificationType = "end_date_reminder"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Content   string           `json:"content"`
	RelatedID int64            `json:"related_id"`
	// Dedupe key so at-least-once delivery never shows a user duplicates.
	DedupeKey string `json:"dedupe_key"`
	IsRead    bool   `json:"is_read"`
	CreatedOn string `json:"created_on"`
}
