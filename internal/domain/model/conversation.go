package model

import "time"

// Conversation exists exactly once per match that reached shortlisted.
type Conversation struct {
	ID        string    `json:"id"`
	MatchID   int64     `json:"match_id"`
	CreatedAt time.Time `json:"created_at"`
}
