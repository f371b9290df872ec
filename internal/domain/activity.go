package domain

import "time"

// ActivityEntry is an audit-log row describing something that happened to
// a seller's data ("order_received", "post_published", ...).
type ActivityEntry struct {
	ID          int64
	UserID      int64
	Action      string
	EntityType  string
	EntityID    int64
	Description string
	CreatedAt   time.Time
}
