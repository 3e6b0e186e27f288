package resource

import "errors"

var (
	// ErrDataSource marks failures talking to an external API: unreachable,
	// non-success status, or a payload missing expected fields.
	ErrDataSource = errors.New("data source request failed")

	// ErrStore marks failures reading from or writing to the persistence store.
	ErrStore = errors.New("store operation failed")

	// ErrNotFound is returned by store lookups when no row matches. A miss is
	// not a failure; it triggers an external fetch.
	ErrNotFound = errors.New("no stored data for key")
)
