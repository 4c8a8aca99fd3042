package dto

import "time"

type ConversationResponse struct {
	ID        string    `json:"id"`
	MatchID   int64     `json:"match_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ConversationsResponse struct {
	Items []ConversationResponse `json:"items"`
}
