package models

import "time"

// Settings is the single settings row owned by a user. Values is never nil
// for a stored row; an empty payload decodes to an empty map.
type Settings struct {
	UserID    string
	Values    map[string]any
	UpdatedAt time.Time
}
