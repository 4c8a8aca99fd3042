package dto

import "time"

type MatchResponse struct {
	ID         int64     `json:"id"`
	CreatorID  int64     `json:"creator_id"`
	BrandID    int64     `json:"brand_id"`
	MatchScore float64   `json:"match_score"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type MatchesResponse struct {
	Items []MatchResponse `json:"items"`
}

type UpdateMatchStatusRequest struct {
	Status string `json:"status"`
}
