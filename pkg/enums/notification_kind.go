package enums

// NotificationKind labels the outbound message class for logging and metrics.
type NotificationKind string

const (
	NotificationKindOrderConfirmation NotificationKind = "order_confirmation"
	NotificationKindAdminAlert        NotificationKind = "admin_alert"
	NotificationKindStatusUpdate      NotificationKind = "status_update"
)
