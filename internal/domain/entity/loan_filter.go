package entity

import "time"

// LoanFilter is a domain-level filter for querying loans.
// Used by the repository layer to avoid coupling with delivery DTOs.
// Non-nil fields are ANDed together; Date matches loans whose inclusive
// range contains it, not a stored field equality.
type LoanFilter struct {
	GameID   *int64
	ClientID *int64
	Date     *time.Time
	Page     int // zero-based page number
	Size     int // page size, must be > 0
}
