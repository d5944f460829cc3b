package domain

// Notifier pushes fire-and-forget events to connected realtime clients.
// Delivery is best-effort: a user without an open connection, or with a
// full send buffer, silently misses the event.
type Notifier interface {
	NotifyUser(userID, event string, payload any)
	NotifyRole(role, event string, payload any)
}
