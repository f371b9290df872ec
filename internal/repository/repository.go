package repository

import "errors"

// ErrNotFound is returned when a row does not exist or is not owned by the
// requesting user. Implementations wrap it so callers can errors.Is it.
var ErrNotFound = errors.New("not found")

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

// Page bounds list queries. The zero value means "first page, default size".
type Page struct {
	Limit  int
	Offset int
}

// Normalize applies defaults and caps so repositories never see an
// unbounded or negative range.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
