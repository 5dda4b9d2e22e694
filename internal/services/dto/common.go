package dto

import (
	"time"

	"chainwork_backend/internal/repositories"
)

// ListResponse is the standard paginated envelope:
// {items, pagination:{page,limit,total,pages}}.
type ListResponse struct {
	Items      interface{}             `json:"items"`
	Pagination repositories.Pagination `json:"pagination"`
}

// PageQuery binds the shared page/limit query parameters.
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Window tokens accepted by time-window filters.
var windowDurations = map[string]time.Duration{
	"1h":    time.Hour,
	"24h":   24 * time.Hour,
	"week":  7 * 24 * time.Hour,
	"month": 30 * 24 * time.Hour,
}

// ParseWindow maps an enumerated look-back token to its cutoff time.
// Unknown or empty tokens mean no cutoff.
func ParseWindow(token string, now time.Time) (*time.Time, bool) {
	if token == "" {
		return nil, true
	}
	d, ok := windowDurations[token]
	if !ok {
		return nil, false
	}
	cutoff := now.Add(-d)
	return &cutoff, true
}
