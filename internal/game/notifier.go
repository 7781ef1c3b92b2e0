package game

// Notifier delivers outbound events. The transport layer supplies it.
type Notifier interface {
	Broadcast(event string, payload any)
	BroadcastExcept(handle, event string, payload any)
	Send(handle, event string, payload any)
}
