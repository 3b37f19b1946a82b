package outbox

// Status values for outbox rows persisted alongside state changes. The relay
// worker reads pending rows and publishes them to the message bus.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
)
